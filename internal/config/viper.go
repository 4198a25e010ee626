package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Workspace struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"workspace" yaml:"workspace"`

	Attachment struct {
		// FallbackName is used when the container carried no usable
		// attachment name for re-injection.
		FallbackName string `mapstructure:"fallback_name" yaml:"fallback_name"`
	} `mapstructure:"attachment" yaml:"attachment"`

	PDF struct {
		// RelaxedValidation tolerates structurally sloppy PDFs, which
		// real-world invoice producers emit routinely.
		RelaxedValidation bool `mapstructure:"relaxed_validation" yaml:"relaxed_validation"`
	} `mapstructure:"pdf" yaml:"pdf"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then the optional config file, then FACTURX_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.facturx-edit")
	v.AddConfigPath(".facturx-edit")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FACTURX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A broken config file is worth a warning but not an abort;
			// defaults and env vars still apply.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
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

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("workspace.directory", "workspace")
	v.SetDefault("attachment.fallback_name", "factur-x.xml")
	v.SetDefault("pdf.relaxed_validation", true)
	v.SetDefault("csv.delimiter", ",")
}

// validateConfig rejects values the rest of the application cannot work with.
func validateConfig(c *Config) error {
	if _, err := logrus.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("unknown log level: %s", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %s", c.Log.Format)
	}
	if c.Workspace.Directory == "" {
		return fmt.Errorf("workspace directory must not be empty")
	}
	if c.Attachment.FallbackName == "" {
		return fmt.Errorf("attachment fallback name must not be empty")
	}
	if len([]rune(c.CSV.Delimiter)) != 1 {
		return fmt.Errorf("csv delimiter must be a single character: %q", c.CSV.Delimiter)
	}
	return nil
}
