package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Output struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"output" yaml:"output"`

	Templates struct {
		Dir string `mapstructure:"dir" yaml:"dir"`
	} `mapstructure:"templates" yaml:"templates"`

	Parse struct {
		Dialect  string `mapstructure:"dialect" yaml:"dialect"`
		Password string `mapstructure:"password" yaml:"-"` // never serialized
	} `mapstructure:"parse" yaml:"parse"`
}

// OutputFormats are the result renderings the reporter supports.
var OutputFormats = []string{"json", "csv", "table"}

// InitializeConfig loads the configuration hierarchy: defaults, then an
// optional stmt-ledger.yaml from the working directory, ./config, or the
// per-user config directory, then STMT_LEDGER_* environment overrides.
func InitializeConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("stmt-ledger")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("$HOME/.config/stmt-ledger")

	v.SetEnvPrefix("STMT_LEDGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
		// No config file is fine; defaults and env vars carry the run.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("output.format", "json")

	v.SetDefault("templates.dir", "templates")

	v.SetDefault("parse.dialect", "auto")
	v.SetDefault("parse.password", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}
	if !isOutputFormat(config.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of %s)",
			config.Output.Format, strings.Join(OutputFormats, ", "))
	}
	return nil
}

func isOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if format == f {
			return true
		}
	}
	return false
}
