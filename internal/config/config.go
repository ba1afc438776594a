// Package config loads catfilter settings from catfilter.yaml, CATFILTER_*
// environment variables and command line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/creasty/defaults"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CATFILTER_LOG_LEVEL.
const EnvPrefix = "CATFILTER"

// Config holds all application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Parser  ParserConfig  `mapstructure:"parser"`
	Segment SegmentConfig `mapstructure:"segment"`
	Output  OutputConfig  `mapstructure:"output"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type LogConfig struct {
	Level       string `mapstructure:"level" default:"warn"`
	Development bool   `mapstructure:"development"`
	Output      string `mapstructure:"output"` // log file, empty for stderr
}

type ParserConfig struct {
	Unquote bool     `mapstructure:"unquote"`
	Fields  []string `mapstructure:"fields"` // empty accepts any field
}

type SegmentConfig struct {
	BaseURL string   `mapstructure:"base_url"`
	Table   string   `mapstructure:"table" default:"products"`
	Columns []string `mapstructure:"columns"`
}

type OutputConfig struct {
	Columns []string `mapstructure:"columns" default:"[\"id\",\"title\",\"category\",\"on_sale\",\"price\",\"tags\",\"stock_status\"]"`
}

// flagKeys maps config keys to the command line flags that override them.
var flagKeys = map[string]string{
	"log.level":        "log-level",
	"log.output":       "log-output",
	"parser.unquote":   "unquote",
	"parser.fields":    "fields",
	"segment.base_url": "base-url",
	"segment.table":    "table",
	"segment.columns":  "columns",
	"output.columns":   "output-columns",
}

// envOnlyKeys are config keys without a command line flag.
var envOnlyKeys = []string{"log.development"}

// Load reads configuration. An explicit path must exist; without one,
// catfilter.yaml is looked up in the working directory and then in the
// user config directory, and a missing file just means defaults.
// Only flags the user actually set override file and environment values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("catfilter")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "catfilter"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	envKeys := append([]string(nil), envOnlyKeys...)
	for key := range flagKeys {
		envKeys = append(envKeys, key)
	}
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	if c.Segment.BaseURL != "" {
		u, err := url.Parse(c.Segment.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid segment base_url %q", c.Segment.BaseURL)
		}
	}

	if c.Segment.Table == "" {
		return fmt.Errorf("segment table must not be empty")
	}
	return nil
}
