package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()

	var err error
	if c.Schema.Path, err = expandPath(c.Schema.Path); err != nil {
		return fmt.Errorf("schema.path: %w", err)
	}
	if c.Reader.BaseDir, err = expandPath(c.Reader.BaseDir); err != nil {
		return fmt.Errorf("reader.base_dir: %w", err)
	}
	if c.Reader.BaseDir == "" && c.Schema.Path != "" {
		c.Reader.BaseDir = filepath.Dir(c.Schema.Path)
	}

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = "auto"
	}
	c.Sink.Driver = strings.ToLower(strings.TrimSpace(c.Sink.Driver))
	// Only home-relative SQLite paths are rewritten; ":memory:", "file:" URIs
	// and plain paths reach the driver as written.
	if c.Sink.Driver == "sqlite" && strings.HasPrefix(c.Sink.DSN, "~") {
		if c.Sink.DSN, err = expandPath(c.Sink.DSN); err != nil {
			return fmt.Errorf("sink.dsn: %w", err)
		}
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	return nil
}

// applyEnv fills values from the environment. Environment variables win
// over the file so deployments can override a shared config.
func (c *Config) applyEnv() {
	envOverrides := []struct {
		key    string
		target *string
	}{
		{"XLINGEST_SCHEMA", &c.Schema.Path},
		{"XLINGEST_SINK_DRIVER", &c.Sink.Driver},
		{"XLINGEST_SINK_DSN", &c.Sink.DSN},
		{"XLINGEST_ADDR", &c.Server.Addr},
		{"LOG_LEVEL", &c.Logging.Level},
		{"LOG_FORMAT", &c.Logging.Format},
	}
	for _, e := range envOverrides {
		if value, ok := os.LookupEnv(e.key); ok && value != "" {
			*e.target = value
		}
	}
}
