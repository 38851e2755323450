package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
env: test
grpc_server:
  port: "50052"
cache:
  price_ttl: 30s
pricing:
  max_rooms: 4
exchange:
  base: EUR
  rates:
    USD: 1.1
`)
	t.Setenv("HTTP_PORT", "9191")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "50052", cfg.GRPCServer.Port)
	assert.Equal(t, "9191", cfg.HTTPServer.Port)
	assert.Equal(t, 30*time.Second, cfg.Cache.PriceTTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.CampaignTTL)
	assert.Equal(t, 4, cfg.Pricing.MaxRooms)
	assert.Equal(t, 0.01, cfg.Pricing.ConsistencyTolerance)
	assert.Equal(t, 1.1, cfg.Exchange.Rates["USD"])
	assert.Equal(t, "localhost:9092", cfg.KafkaService.Broker())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "find config file")
}
