package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names. The credential and SharePoint variables are
// the primary configuration surface; EnvConfig points at an optional TOML
// file underneath them.
const (
	EnvTenantID     = "TENANT_ID"
	EnvClientID     = "CLIENT_ID"
	EnvClientSecret = "CLIENT_SECRET"
	EnvHostname     = "SHAREPOINT_HOSTNAME"
	EnvSiteName     = "SHAREPOINT_SITE_NAME"
	EnvFileID       = "SCHEDULE_FILE_ID"
	EnvFileName     = "SCHEDULE_FILE_NAME"
	EnvPort         = "PORT"
	EnvAppEnv       = "APP_ENV"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFormat    = "LOG_FORMAT"
	EnvConfig       = "ASSEMBLE_DISPLAY_CONFIG"
)

// EnvOverrides holds raw environment variable values. Reading and applying
// are split so tests can build overrides without touching the process
// environment.
type EnvOverrides struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Hostname     string
	SiteName     string
	FileID       string
	FileName     string
	Port         string
	AppEnv       string
	LogLevel     string
	LogFormat    string
	ConfigPath   string
}

// ReadEnvOverrides reads the environment. It does not modify any Config.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		TenantID:     os.Getenv(EnvTenantID),
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		Hostname:     os.Getenv(EnvHostname),
		SiteName:     os.Getenv(EnvSiteName),
		FileID:       os.Getenv(EnvFileID),
		FileName:     os.Getenv(EnvFileName),
		Port:         os.Getenv(EnvPort),
		AppEnv:       os.Getenv(EnvAppEnv),
		LogLevel:     os.Getenv(EnvLogLevel),
		LogFormat:    os.Getenv(EnvLogFormat),
		ConfigPath:   os.Getenv(EnvConfig),
	}
}

// applyTo overlays the non-empty overrides onto cfg. Only PORT can fail:
// it must parse as an integer. Whether the result is a usable port is
// Validate's business.
func (e EnvOverrides) applyTo(cfg *Config) error {
	if e.TenantID != "" {
		cfg.TenantID = e.TenantID
	}

	if e.ClientID != "" {
		cfg.ClientID = e.ClientID
	}

	if e.ClientSecret != "" {
		cfg.ClientSecret = e.ClientSecret
	}

	if e.Hostname != "" {
		cfg.Hostname = e.Hostname
	}

	if e.SiteName != "" {
		cfg.SiteName = e.SiteName
	}

	if e.FileID != "" {
		cfg.FileID = e.FileID
	}

	if e.FileName != "" {
		cfg.FileName = e.FileName
	}

	if e.Port != "" {
		port, err := strconv.Atoi(e.Port)
		if err != nil {
			return fmt.Errorf("%s: not a number: %q", EnvPort, e.Port)
		}

		cfg.Port = port
	}

	if e.AppEnv != "" {
		cfg.Environment = e.AppEnv
	}

	if e.LogLevel != "" {
		cfg.Logging.Level = e.LogLevel
	}

	if e.LogFormat != "" {
		cfg.Logging.Format = e.LogFormat
	}

	return nil
}
