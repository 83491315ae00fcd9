package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickpoint/internal/auth"
	"pickpoint/internal/commission"
	"pickpoint/internal/domain"
	httpapi "pickpoint/internal/http"
	"pickpoint/internal/repository"
	"pickpoint/internal/service"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryStore()
	orders := repository.NewMemoryOrders(store)
	interns := repository.NewMemoryInterns(store)
	tx := repository.NewMemoryTx(store)
	srv := httpapi.NewServer(httpapi.Deps{
		Orders: service.NewOrderService(orders, interns, store, tx, commission.NewEngine(commission.DefaultRates())),
		Roster: service.NewRosterService(interns, tx),
		Ledger: service.NewLedgerService(store, tx),
		Gate:   auth.NewGate("654321", "secret", time.Hour),
	})
	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)
	return New(ts.URL, 5*time.Second)
}

func TestClient_Scenario(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.AddIntern(ctx, "Anna", "Smirnova")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	require.NoError(t, c.Login(ctx, "654321"))
	x, err := c.AddIntern(ctx, "Anna", "Smirnova")
	require.NoError(t, err)
	y, err := c.AddIntern(ctx, "Oleg", "Ivanov")
	require.NoError(t, err)

	items := []domain.OrderItem{{Name: "Kettle", Quantity: 1, UnitPrice: decimal.NewFromInt(1000)}}
	o, err := c.CreateOrder(ctx, "Maria", "", items)
	require.NoError(t, err)
	assert.True(t, o.TotalPrice.Equal(decimal.NewFromInt(1000)))

	found, err := c.FindByBarcode(ctx, o.Barcode)
	require.NoError(t, err)
	assert.Equal(t, o.ID, found.ID)

	_, err = c.Issue(ctx, o.ID, x.ID)
	require.NoError(t, err)
	bal, err := c.Balance(ctx)
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(50)), bal.String())

	returned, err := c.Return(ctx, o.ID, "wrong size", y.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusReturned, returned.Status)

	bal, err = c.Balance(ctx)
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(20)), bal.String())

	list, err := c.ListInterns(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Salary.IsZero())
	assert.True(t, list[1].Salary.Equal(decimal.NewFromInt(30)))

	paid, err := c.WithdrawSalary(ctx, y.ID)
	require.NoError(t, err)
	assert.True(t, paid.Equal(decimal.NewFromInt(30)))

	paid, err = c.WithdrawCurator(ctx)
	require.NoError(t, err)
	assert.True(t, paid.Equal(decimal.NewFromInt(20)))

	st, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Total: 1, Returned: 1}, st)
}

func TestClient_Errors(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.GetOrder(ctx, "missing")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)

	_, err = c.Issue(ctx, "missing", domain.CuratorID)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)

	assert.Error(t, c.Login(ctx, "000000"))
}
