// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the server settings read from the environment and the optional .env file.
type Config struct {
	APIServerHost string `mapstructure:"API_SERVER_HOST"`
	APIPort       string `mapstructure:"API_PORT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	GinMode       string `mapstructure:"GIN_MODE"`

	// Comma separated list, "nil" disables proxy trust entirely.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`

	// Comma separated list of origins allowed to call the API from a browser.
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Docker Engine API version used by the runtime client. Empty means negotiate with the daemon.
	DockerAPIVersion string `mapstructure:"DOCKER_API_VERSION_PIN"`

	// Upper bound for a single log stream. Zero leaves the stream open until EOF or disconnect.
	LogsStreamTimeout time.Duration `mapstructure:"LOGS_STREAM_TIMEOUT"`

	SystemMetricsEnabled bool `mapstructure:"SYSTEM_METRICS_ENABLED"`
	// Filesystem path whose usage /health/metrics reports, typically the Docker data root.
	SystemMetricsDiskPath string `mapstructure:"SYSTEM_METRICS_DISK_PATH"`

	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	TLSEnable   bool   `mapstructure:"TLS_ENABLE"`
	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`
}

// AppConfig is the process-wide configuration, populated by LoadConfig.
var AppConfig Config

var defaults = map[string]any{
	"API_SERVER_HOST":          "0.0.0.0",
	"API_PORT":                 "8000",
	"LOG_LEVEL":                "info",
	"GIN_MODE":                 "release",
	"TRUSTED_PROXIES":          "",
	"CORS_ALLOWED_ORIGINS":     "http://girder,http://localhost:8001",
	"DOCKER_API_VERSION_PIN":   "1.28",
	"LOGS_STREAM_TIMEOUT":      "0s",
	"SYSTEM_METRICS_ENABLED":   false,
	"SYSTEM_METRICS_DISK_PATH": "/",
	"SHUTDOWN_TIMEOUT":         "10s",
	"TLS_ENABLE":               false,
	"TLS_CERT_FILE":            "",
	"TLS_KEY_FILE":             "",
}

// LoadConfig reads envFile (if non-empty) into the process environment and then
// populates AppConfig from environment variables, falling back to defaults.
// Variables already present in the environment take precedence over the file.
// A missing envFile is reported as an error wrapping fs.ErrNotExist.
func LoadConfig(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("loading env file '%s': %w", envFile, err)
		}
	}

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	AppConfig = cfg
	return nil
}

// Validate checks values that would otherwise fail later at server start.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIPort) == "" {
		return fmt.Errorf("API_PORT must not be empty")
	}
	for _, origin := range c.AllowedOrigins() {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin '%s': must start with http:// or https://", origin)
		}
	}
	if c.LogsStreamTimeout < 0 {
		return fmt.Errorf("LOGS_STREAM_TIMEOUT must not be negative")
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must not be negative")
	}
	return nil
}

// AllowedOrigins returns the CORS allow-list with blanks removed.
func (c Config) AllowedOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ListenAddr is the host:port the HTTP server binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.APIServerHost, c.APIPort)
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
