// Package config holds the service configuration and the override chain
// that produces it: defaults -> optional TOML file -> environment
// variables -> CLI flags. The environment layer is the primary one in
// deployment; the file layer exists for local development where exporting
// nine variables gets old.
package config

import "time"

// Duration fallbacks for hand-built Configs that skipped Validate.
// Resolved configs never hit these because validation rejects
// unparseable durations.
const (
	fallbackRequestTimeout  = 60 * time.Second
	fallbackHTTPTimeout     = 30 * time.Second
	fallbackShutdownTimeout = 10 * time.Second
)

// Config is the fully merged service configuration. Fields mirror the
// environment variables that usually populate them. Once resolved it is
// treated as read-only; nothing mutates it after Resolve returns.
type Config struct {
	TenantID     string `toml:"tenant_id"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	Hostname     string `toml:"sharepoint_hostname"`
	SiteName     string `toml:"sharepoint_site_name"`
	FileID       string `toml:"schedule_file_id"`
	FileName     string `toml:"schedule_file_name"`
	Port         int    `toml:"port"`
	Environment  string `toml:"environment"`

	Logging LoggingConfig `toml:"logging"`
	Network NetworkConfig `toml:"network"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `toml:"log_level"`  // debug, info, warn, error
	Format string `toml:"log_format"` // auto, text, json
}

// NetworkConfig holds timeouts as duration strings ("60s", "2m").
// Strings rather than time.Duration so the TOML and env layers share one
// representation; the accessor methods parse them.
type NetworkConfig struct {
	RequestTimeout  string `toml:"request_timeout"`
	HTTPTimeout     string `toml:"http_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// CLIOverrides holds values from command-line flags.
// Pointer fields distinguish "not specified" from a zero value.
type CLIOverrides struct {
	ConfigPath string
	Port       *int
}

// RequestTimeout is the ceiling for one download request, pipeline
// included.
func (c *Config) RequestTimeout() time.Duration {
	return parseDurationOr(c.Network.RequestTimeout, fallbackRequestTimeout)
}

// HTTPTimeout is the per-call timeout for outbound HTTP.
func (c *Config) HTTPTimeout() time.Duration {
	return parseDurationOr(c.Network.HTTPTimeout, fallbackHTTPTimeout)
}

// ShutdownTimeout is how long graceful shutdown waits for in-flight
// requests.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDurationOr(c.Network.ShutdownTimeout, fallbackShutdownTimeout)
}

// Production reports whether the service runs with the production
// environment label. Error responses withhold internal detail in
// production.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func parseDurationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}
