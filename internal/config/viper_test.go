package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STMT_LEDGER_LOG_LEVEL",
		"STMT_LEDGER_LOG_FORMAT",
		"STMT_LEDGER_CSV_DELIMITER",
		"STMT_LEDGER_OUTPUT_FORMAT",
		"STMT_LEDGER_TEMPLATES_DIR",
		"STMT_LEDGER_PARSE_DIALECT",
		"STMT_LEDGER_PARSE_PASSWORD",
	} {
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestInitializeConfigDefaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, "json", config.Output.Format)
	assert.Equal(t, "templates", config.Templates.Dir)
	assert.Equal(t, "auto", config.Parse.Dialect)
	assert.Equal(t, "", config.Parse.Password)
}

func TestInitializeConfigEnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("STMT_LEDGER_LOG_LEVEL", "debug")
	t.Setenv("STMT_LEDGER_LOG_FORMAT", "json")
	t.Setenv("STMT_LEDGER_CSV_DELIMITER", ";")
	t.Setenv("STMT_LEDGER_OUTPUT_FORMAT", "csv")
	t.Setenv("STMT_LEDGER_TEMPLATES_DIR", "/tmp/templates")
	t.Setenv("STMT_LEDGER_PARSE_DIALECT", "hdfc")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "csv", config.Output.Format)
	assert.Equal(t, "/tmp/templates", config.Templates.Dir)
	assert.Equal(t, "hdfc", config.Parse.Dialect)
}

func TestInitializeConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	content := `log:
  level: warn
  format: json
output:
  format: table
templates:
  dir: my-templates
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stmt-ledger.yaml"), []byte(content), 0600))
	chdir(t, dir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "table", config.Output.Format)
	assert.Equal(t, "my-templates", config.Templates.Dir)
	// Untouched keys keep their defaults.
	assert.Equal(t, ",", config.CSV.Delimiter)
}

func TestInitializeConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid log level", "STMT_LEDGER_LOG_LEVEL", "verbose"},
		{"invalid log format", "STMT_LEDGER_LOG_FORMAT", "xml"},
		{"multi-char delimiter", "STMT_LEDGER_CSV_DELIMITER", ";;"},
		{"unknown output format", "STMT_LEDGER_OUTPUT_FORMAT", "parquet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTestEnvVars(t)
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := InitializeConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "text"

	logger := ConfigureLogging(cfg)
	assert.NotNil(t, logger)
}
