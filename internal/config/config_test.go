package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OLIST_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/archive", cfg.Data.Dir)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "olist_consulting_deck.xlsx", cfg.Output.DeckFile)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "localhost:8090", cfg.Server.Addr)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	yaml := `
data:
  dir: /srv/olist/archive
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(configFile, []byte(yaml), 0644))

	t.Setenv("OLIST_CONFIG_FILE", configFile)
	t.Setenv("OLIST_LOGGING_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// File value survives where env is silent, env wins where set.
	assert.Equal(t, "/srv/olist/archive", cfg.Data.Dir)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Fields set by neither file nor env keep their defaults.
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "localhost:8090", cfg.Server.Addr)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		wantErr string
	}{
		{
			name:    "bad log level",
			env:     map[string]string{"OLIST_LOGGING_LEVEL": "verbose"},
			wantErr: "invalid log level",
		},
		{
			name:    "bad log format",
			env:     map[string]string{"OLIST_LOGGING_FORMAT": "xml"},
			wantErr: "invalid log format",
		},
		{
			name:    "bad log output",
			env:     map[string]string{"OLIST_LOGGING_OUTPUT": "syslog"},
			wantErr: "invalid log output",
		},
		{
			name:    "empty data dir",
			env:     map[string]string{"OLIST_DATA_DIR": "  "},
			wantErr: "data dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OLIST_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{}
	cfg.Data.Dir = "data/archive"
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")
	cfg.Output.DeckFile = "deck.xlsx"

	paths := NewPaths(cfg)
	assert.Equal(t, filepath.Join(cfg.Output.Dir, "charts"), paths.ChartsDir)
	assert.Equal(t, filepath.Join(cfg.Output.Dir, "reports"), paths.ReportsDir)
	assert.Equal(t, filepath.Join(cfg.Output.Dir, "reports", "deck.xlsx"), paths.DeckFile)
	assert.Equal(t, filepath.Join("data/archive", OrdersFile), paths.DatasetPath(OrdersFile))

	require.NoError(t, paths.EnsureOutputDirs())
	assert.DirExists(t, paths.ChartsDir)
	assert.DirExists(t, paths.ReportsDir)
}
