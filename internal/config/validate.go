package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Every problem is reported
// at once.
func (c *Config) Validate() error {
	var errs []string

	switch c.Output.Format {
	case "auto", "json", "table":
	default:
		errs = append(errs, fmt.Sprintf("output.format must be auto, json or table (got %q)", c.Output.Format))
	}

	switch c.Sink.Driver {
	case "":
	case "sqlite", "postgres", "postgresql":
		if c.Sink.DSN == "" {
			errs = append(errs, "sink.dsn is required when sink.driver is set (or set XLINGEST_SINK_DSN)")
		}
	default:
		errs = append(errs, fmt.Sprintf("sink.driver must be sqlite or postgres (got %q)", c.Sink.Driver))
	}

	if c.Server.Addr == "" {
		errs = append(errs, "server.addr must be set")
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, "server.shutdown_timeout must not be negative")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level must be debug, info, warn or error (got %q)", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("logging.format must be text or json (got %q)", c.Logging.Format))
	}

	if len(errs) > 0 {
		return errors.New("invalid configuration:\n  - " + strings.Join(errs, "\n  - "))
	}
	return nil
}

// RequireSchema reports an error when no schema document is configured.
func (c *Config) RequireSchema() error {
	if c.Schema.Path == "" {
		return errors.New("schema.path is required. Pass --schema, set XLINGEST_SCHEMA or edit the config file")
	}
	return nil
}
