package cfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv сбрасывает переменные, которые могут быть заданы в окружении теста.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		ConfigFileEnv, "BACKEND_URL", "BACKEND_TIMEOUT", "PREVIEW_SAMPLE_SIZE", "REDUCTION_METHOD",
		"HTTP_PORT", "REDIS_ADDR", "PLOT_TTL", "POSTGRES_DB", "MINIO_ENDPOINT", "MINIO_USE_SSL",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Backend.BaseURL)
	assert.Zero(t, cfg.Backend.Timeout)
	assert.Equal(t, 500, cfg.Backend.DefaultSampleSize)
	assert.Equal(t, "FastICA", cfg.Backend.DefaultMethod)
	assert.Equal(t, "8090", cfg.Http.Port)
	assert.Equal(t, 24*time.Hour, cfg.Redis.PlotTTL)
	assert.Equal(t, "info", cfg.Log.Level)

	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Db.Enabled())
	assert.False(t, cfg.Minio.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoadFromTOMLWithEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "textlab.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"

[backend]
url = "http://textlab:9000/"
timeout = "30s"

[http]
port = "9999"

[redis]
addr = "redis:6379"

[kafka]
brokers = ["k1:9092", "k2:9092"]
`), 0o600))

	t.Setenv(ConfigFileEnv, path)
	t.Setenv("HTTP_PORT", "7000")

	cfg, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "http://textlab:9000", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "7000", cfg.Http.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "textlab.labels", cfg.Kafka.Topic)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PREVIEW_SAMPLE_SIZE", "many")

	_, err := Load(logger.NewNop())
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "absent.toml"))

	_, err := Load(logger.NewNop())
	assert.Error(t, err)
}

func TestPGDBCfgDSN(t *testing.T) {
	c := &PGDBCfg{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "labels", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=labels sslmode=disable", c.DSN())
	assert.True(t, c.Enabled())
}
