package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	minPort = 1
	maxPort = 65535
)

// MissingVarsError lists required configuration absent after the full
// override chain. Vars uses the environment variable spellings because
// that is where operators will go to fix it. The set is complete, not
// first-found, so one deploy fixes everything.
type MissingVarsError struct {
	Vars []string
}

func (e *MissingVarsError) Error() string {
	return "missing required configuration: " + strings.Join(e.Vars, ", ")
}

// Validate checks the merged configuration and returns all errors found.
// It accumulates rather than stopping at the first, so operators see a
// complete report and fix everything in one pass.
func Validate(cfg *Config) error {
	var errs []error

	if missing := missingRequired(cfg); len(missing) > 0 {
		errs = append(errs, &MissingVarsError{Vars: missing})
	}

	if cfg.Port < minPort || cfg.Port > maxPort {
		errs = append(errs, fmt.Errorf("port: must be between %d and %d, got %d",
			minPort, maxPort, cfg.Port))
	}

	if cfg.FileName == "" {
		errs = append(errs, errors.New("schedule_file_name: must not be empty"))
	}

	if strings.Contains(cfg.Hostname, "/") {
		errs = append(errs, fmt.Errorf(
			"sharepoint_hostname: must be a bare hostname like contoso.sharepoint.com, got %q",
			cfg.Hostname))
	}

	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateNetwork(&cfg.Network)...)

	return errors.Join(errs...)
}

// missingRequired returns the env-variable names of required fields that
// are empty, in documentation order.
func missingRequired(cfg *Config) []string {
	var missing []string

	required := []struct {
		name  string
		value string
	}{
		{EnvTenantID, cfg.TenantID},
		{EnvClientID, cfg.ClientID},
		{EnvClientSecret, cfg.ClientSecret},
		{EnvHostname, cfg.Hostname},
	}

	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}

	return missing
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"auto": true, "text": true, "json": true,
}

func validateLogging(l *LoggingConfig) []error {
	var errs []error

	if !validLogLevels[l.Level] {
		errs = append(errs, fmt.Errorf(
			"log_level: must be one of debug, info, warn, error; got %q", l.Level))
	}

	if !validLogFormats[l.Format] {
		errs = append(errs, fmt.Errorf(
			"log_format: must be one of auto, text, json; got %q", l.Format))
	}

	return errs
}

func validateNetwork(n *NetworkConfig) []error {
	var errs []error

	durations := []struct {
		name  string
		value string
	}{
		{"request_timeout", n.RequestTimeout},
		{"http_timeout", n.HTTPTimeout},
		{"shutdown_timeout", n.ShutdownTimeout},
	}

	for _, d := range durations {
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
			continue
		}

		if parsed <= 0 {
			errs = append(errs, fmt.Errorf("%s: must be positive, got %s", d.name, d.value))
		}
	}

	return errs
}
