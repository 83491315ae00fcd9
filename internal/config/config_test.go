package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickpoint/internal/commission"
)

func TestDefaultRatesMatchEngine(t *testing.T) {
	got := Default().Commission.Rates()
	want := commission.DefaultRates()
	assert.True(t, got.CuratorSolo.Equal(want.CuratorSolo))
	assert.True(t, got.CuratorAssist.Equal(want.CuratorAssist))
	assert.True(t, got.Intern.Equal(want.Intern))
	assert.True(t, got.AssistClawback.Equal(want.AssistClawback))
	assert.True(t, got.Bonus.Equal(want.Bonus))
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pickpoint.yaml")
	data := `
server:
  addr: ":8080"
  shutdown_timeout: 2s
storage:
  driver: sqlite
  dsn: /tmp/pp.db
commission:
  intern: 0.25
auth:
  access_code: "424242"
  token_ttl: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "424242", cfg.Auth.AccessCode)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Commission.Rates().Intern.Equal(decimal.RequireFromString("0.25")))
	// untouched keys keep defaults
	assert.True(t, cfg.Commission.Rates().CuratorSolo.Equal(decimal.RequireFromString("0.25")))
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PICKPOINT_ADDR", ":7000")
	t.Setenv("PICKPOINT_ACCESS_CODE", "111111")
	t.Setenv("PICKPOINT_KAFKA_BROKERS", "localhost:9092")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "111111", cfg.Auth.AccessCode)
	assert.Equal(t, "localhost:9092", cfg.Events.KafkaBrokers)
	assert.Equal(t, "pickpoint.orders", cfg.Events.Topic)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Auth.AccessCode = "12ab56"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Commission.Bonus = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Events = EventsConfig{KafkaBrokers: "localhost:9092"}
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Default().Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
