package config

// DefaultPort is the listen port when neither PORT nor a config file
// sets one.
const DefaultPort = 3000

// Default values for optional settings. These are layer 0 of the override
// chain; the required credential fields have no defaults on purpose.
const (
	defaultSiteName        = "assemble"
	defaultFileName        = "AssembleSchedule.xlsx"
	defaultEnvironment     = "development"
	defaultLogLevel        = "info"
	defaultLogFormat       = "auto"
	defaultRequestTimeout  = "60s"
	defaultHTTPTimeout     = "30s"
	defaultShutdownTimeout = "10s"
)

// DefaultConfig returns a Config populated with all default values.
// It is the starting point for TOML decoding (unset fields keep their
// defaults) and the base when no config file is in play.
func DefaultConfig() *Config {
	return &Config{
		SiteName:    defaultSiteName,
		FileName:    defaultFileName,
		Port:        DefaultPort,
		Environment: defaultEnvironment,
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Network: NetworkConfig{
			RequestTimeout:  defaultRequestTimeout,
			HTTPTimeout:     defaultHTTPTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
	}
}
