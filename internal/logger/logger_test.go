package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"pickpoint/internal/config"
)

func TestNewZapLog(t *testing.T) {
	l, err := NewZapLog(config.LoggerConfig{Level: "debug"})
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewZapLog(config.LoggerConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestRequestLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestLog(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "fine") })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "HTTP request", entries[0].Message)
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["code"])
	assert.Equal(t, "HTTP request failed", entries[1].Message)
}
