package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	AppConfig = Config{}
	t.Cleanup(viper.Reset)
}

func TestLoadConfigDefaults(t *testing.T) {
	resetConfig(t)

	require.NoError(t, LoadConfig(""))

	assert.Equal(t, "0.0.0.0", AppConfig.APIServerHost)
	assert.Equal(t, "8000", AppConfig.APIPort)
	assert.Equal(t, "0.0.0.0:8000", AppConfig.ListenAddr())
	assert.Equal(t, "info", AppConfig.LogLevel)
	assert.Equal(t, "1.28", AppConfig.DockerAPIVersion)
	assert.Equal(t, []string{"http://girder", "http://localhost:8001"}, AppConfig.AllowedOrigins())
	assert.Zero(t, AppConfig.LogsStreamTimeout)
	assert.Equal(t, 10*time.Second, AppConfig.ShutdownTimeout)
	assert.False(t, AppConfig.SystemMetricsEnabled)
	assert.Equal(t, "/", AppConfig.SystemMetricsDiskPath)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	resetConfig(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("LOGS_STREAM_TIMEOUT", "30m")
	t.Setenv("SYSTEM_METRICS_ENABLED", "true")
	t.Setenv("SYSTEM_METRICS_DISK_PATH", "/var/lib/docker")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,http://b.example")

	require.NoError(t, LoadConfig(""))

	assert.Equal(t, "9090", AppConfig.APIPort)
	assert.Equal(t, 30*time.Minute, AppConfig.LogsStreamTimeout)
	assert.True(t, AppConfig.SystemMetricsEnabled)
	assert.Equal(t, "/var/lib/docker", AppConfig.SystemMetricsDiskPath)
	assert.Equal(t, []string{"https://a.example", "http://b.example"}, AppConfig.AllowedOrigins())
}

func TestLoadConfigEnvFile(t *testing.T) {
	resetConfig(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=debug\nDOCKER_API_VERSION_PIN=1.41\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("DOCKER_API_VERSION_PIN")
	})

	require.NoError(t, LoadConfig(envFile))

	assert.Equal(t, "debug", AppConfig.LogLevel)
	assert.Equal(t, "1.41", AppConfig.DockerAPIVersion)
}

func TestLoadConfigMissingEnvFile(t *testing.T) {
	resetConfig(t)

	err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestValidate(t *testing.T) {
	valid := Config{APIPort: "8000", CORSAllowedOrigins: "http://girder"}
	assert.NoError(t, valid.Validate())

	badOrigin := valid
	badOrigin.CORSAllowedOrigins = "girder"
	assert.ErrorContains(t, badOrigin.Validate(), "invalid CORS origin")

	noPort := valid
	noPort.APIPort = " "
	assert.Error(t, noPort.Validate())

	negativeTimeout := valid
	negativeTimeout.LogsStreamTimeout = -time.Second
	assert.Error(t, negativeTimeout.Validate())
}
