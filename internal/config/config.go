// Package config loads the xlingest application configuration from TOML,
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ukaji3/xlingest-go/pkg/xlingest"
)

// Schema locates the ingestion schema document.
type Schema struct {
	Path string `toml:"path"`
}

// Reader controls how worksheets are read and bound.
type Reader struct {
	FirstRowTitles  bool   `toml:"first_row_titles"`
	DropInvalidRows bool   `toml:"drop_invalid_rows"`
	BaseDir         string `toml:"base_dir"` // Default: directory of the schema file
}

// Output controls CLI rendering.
type Output struct {
	Format string `toml:"format"` // auto, json or table
	Pretty bool   `toml:"pretty"`
}

// Sink selects where results are persisted.
type Sink struct {
	Driver string `toml:"driver"` // "", sqlite or postgres
	DSN    string `toml:"dsn"`
}

// Server configures the HTTP API.
type Server struct {
	Addr            string `toml:"addr"`
	ShutdownTimeout int    `toml:"shutdown_timeout"` // seconds
}

// Logging configures log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the full application configuration.
type Config struct {
	Schema  Schema  `toml:"schema"`
	Reader  Reader  `toml:"reader"`
	Output  Output  `toml:"output"`
	Sink    Sink    `toml:"sink"`
	Server  Server  `toml:"server"`
	Logging Logging `toml:"logging"`
}

// Default returns the configuration used when no file sets a value.
func Default() Config {
	return Config{
		Reader:  Reader{FirstRowTitles: true},
		Output:  Output{Format: "auto"},
		Server:  Server{Addr: ":8080", ShutdownTimeout: 10},
		Logging: Logging{Level: "info", Format: "text"},
	}
}

// DefaultConfigPath returns the per-user configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/xlingest/config.toml")
}

// Load reads the configuration at path, applies environment fallbacks and
// validates the result. An empty path falls back to XLINGEST_CONFIG and then
// to DefaultConfigPath; only an explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ShutdownTimeout returns the server shutdown grace period.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeout) * time.Second
}

func resolveConfigPath(path string) (string, bool, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv("XLINGEST_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", false, err
		}
	}

	resolved, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(resolved); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return resolved, false, nil
		}
		return "", false, fmt.Errorf("config file: %w", err)
	}
	return resolved, true, nil
}

// expandPath resolves a configured path. Empty stays empty.
func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	return xlingest.ResolvePath(pathValue, "")
}
