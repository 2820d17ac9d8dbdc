package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"XLINGEST_CONFIG", "XLINGEST_SCHEMA", "XLINGEST_SINK_DRIVER", "XLINGEST_SINK_DSN",
		"XLINGEST_ADDR", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("HOME", t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.True(t, cfg.Reader.FirstRowTitles)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Sink.Driver)
	assert.Error(t, cfg.RequireSchema())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, `
[schema]
path = "`+filepath.Join(dir, "ingest.xml")+`"

[reader]
first_row_titles = false
drop_invalid_rows = true

[output]
format = "JSON"
pretty = true

[sink]
driver = "sqlite"
dsn = "`+filepath.Join(dir, "runs.db")+`"

[server]
addr = "127.0.0.1:9000"
shutdown_timeout = 3

[logging]
level = "DEBUG"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ingest.xml"), cfg.Schema.Path)
	assert.Equal(t, dir, cfg.Reader.BaseDir, "base dir defaults to the schema directory")
	assert.False(t, cfg.Reader.FirstRowTitles)
	assert.True(t, cfg.Reader.DropInvalidRows)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "sqlite", cfg.Sink.Driver)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, int64(3), int64(cfg.ShutdownTimeout().Seconds()))
	assert.NoError(t, cfg.RequireSchema())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[sink]
driver = "sqlite"
dsn = "/tmp/from-file.db"
`)
	t.Setenv("XLINGEST_SINK_DRIVER", "postgres")
	t.Setenv("XLINGEST_SINK_DSN", "postgres://localhost/xlingest")
	t.Setenv("XLINGEST_SCHEMA", "/etc/xlingest/ingest.xml")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Sink.Driver)
	assert.Equal(t, "postgres://localhost/xlingest", cfg.Sink.DSN)
	assert.Equal(t, "/etc/xlingest/ingest.xml", cfg.Schema.Path)
	assert.Equal(t, "/etc/xlingest", cfg.Reader.BaseDir)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "[schema]\nfile = \"x.xml\"\n"))
	assert.Error(t, err)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "yaml"
	cfg.Sink.Driver = "sqlite"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
	assert.Contains(t, err.Error(), "sink.dsn")
	assert.Contains(t, err.Error(), "logging.level")
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/schema.xml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "schema.xml"), got)

	got, err = expandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadSQLiteDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want func(home string) string
	}{
		{":memory:", func(string) string { return ":memory:" }},
		{"file:runs.db?_pragma=busy_timeout(5000)", func(string) string { return "file:runs.db?_pragma=busy_timeout(5000)" }},
		{"runs.db", func(string) string { return "runs.db" }},
		{"~/xlingest/runs.db", func(home string) string { return filepath.Join(home, "xlingest", "runs.db") }},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			clearEnv(t)
			home := os.Getenv("HOME")
			t.Setenv("XLINGEST_SINK_DRIVER", "sqlite")
			t.Setenv("XLINGEST_SINK_DSN", tt.dsn)

			cfg, err := Load("")
			require.NoError(t, err)
			assert.Equal(t, tt.want(home), cfg.Sink.DSN)
		})
	}
}

func TestExpandPathEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XLINGEST_DATA", dir)

	got, err := expandPath("$XLINGEST_DATA/schema.xml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "schema.xml"), got)
}
