// Package config loads the external LLM command settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds the settings read once at start-up. Treat it as read-only.
type Config struct {
	Command            string   `mapstructure:"command" toml:"command"`
	PromptFlag         string   `mapstructure:"prompt_flag" toml:"prompt_flag"`
	ModelFlag          string   `mapstructure:"model_flag" toml:"model_flag"`
	Model              string   `mapstructure:"model" toml:"model"`
	ExtraArgs          []string `mapstructure:"extra_args" toml:"extra_args"`
	CombinedPrompt     string   `mapstructure:"combined_prompt" toml:"combined_prompt,multiline"`
	PromptTemplateFile string   `mapstructure:"prompt_template_file" toml:"prompt_template_file"`
	TimeoutSeconds     int      `mapstructure:"timeout" toml:"timeout"`
	DiffLimit          int      `mapstructure:"diff_limit" toml:"diff_limit"`
	LogLevel           string   `mapstructure:"log_level" toml:"log_level"`
}

const (
	DefaultCommand        = "gemini"
	DefaultPromptFlag     = "-p"
	DefaultModelFlag      = "--model"
	DefaultModel          = "gemini-2.5-flash"
	DefaultTimeoutSeconds = 120
	DefaultDiffLimit      = 8000
	DefaultLogLevel       = "warn"
	DefaultConfigDir      = "git-auto-commit"
	DefaultConfigName     = "config"
	DefaultConfigType     = "toml"
	EnvPrefix             = "GAC"
)

// Default returns a Config with every field at its documented default.
func Default() *Config {
	return &Config{
		Command:        DefaultCommand,
		PromptFlag:     DefaultPromptFlag,
		ModelFlag:      DefaultModelFlag,
		Model:          DefaultModel,
		ExtraArgs:      []string{},
		CombinedPrompt: DefaultCombinedPrompt,
		TimeoutSeconds: DefaultTimeoutSeconds,
		DiffLimit:      DefaultDiffLimit,
		LogLevel:       DefaultLogLevel,
	}
}

// Timeout converts TimeoutSeconds; zero means no timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultPath returns <user config dir>/git-auto-commit/config.toml, where the
// user config dir is $XDG_CONFIG_HOME or $HOME/.config.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to find home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, DefaultConfigDir, DefaultConfigName+"."+DefaultConfigType), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType(DefaultConfigType)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("command", d.Command)
	v.SetDefault("prompt_flag", d.PromptFlag)
	v.SetDefault("model_flag", d.ModelFlag)
	v.SetDefault("model", d.Model)
	v.SetDefault("extra_args", d.ExtraArgs)
	v.SetDefault("combined_prompt", d.CombinedPrompt)
	v.SetDefault("prompt_template_file", "")
	v.SetDefault("timeout", d.TimeoutSeconds)
	v.SetDefault("diff_limit", d.DiffLimit)
	v.SetDefault("log_level", d.LogLevel)
	return v
}

// Load reads the TOML file at path. The returned Config is always usable: a
// missing file yields defaults with a nil error, an unreadable or malformed
// file yields defaults with an error, and individual fields that cannot be
// decoded keep their defaults and are reported in the joined error.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return fromViper(newViper()), fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return fromViper(newViper()), fmt.Errorf("failed to access config file %s: %w", path, err)
		}
	}

	return decode(v)
}

func fromViper(v *viper.Viper) *Config {
	cfg, _ := decode(v)
	return cfg
}

func decode(v *viper.Viper) (*Config, error) {
	d := Default()
	var errs []error

	cfg := &Config{
		Command:            stringField(v, "command", d.Command, &errs),
		PromptFlag:         stringField(v, "prompt_flag", d.PromptFlag, &errs),
		ModelFlag:          stringField(v, "model_flag", d.ModelFlag, &errs),
		Model:              stringField(v, "model", d.Model, &errs),
		ExtraArgs:          sliceField(v, "extra_args", d.ExtraArgs, &errs),
		CombinedPrompt:     stringField(v, "combined_prompt", d.CombinedPrompt, &errs),
		PromptTemplateFile: stringField(v, "prompt_template_file", "", &errs),
		TimeoutSeconds:     intField(v, "timeout", d.TimeoutSeconds, &errs),
		DiffLimit:          intField(v, "diff_limit", d.DiffLimit, &errs),
		LogLevel:           stringField(v, "log_level", d.LogLevel, &errs),
	}

	if cfg.DiffLimit <= 0 {
		errs = append(errs, fmt.Errorf("invalid diff_limit %d, using %d", cfg.DiffLimit, d.DiffLimit))
		cfg.DiffLimit = d.DiffLimit
	}
	if cfg.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("invalid timeout %d, using %d", cfg.TimeoutSeconds, d.TimeoutSeconds))
		cfg.TimeoutSeconds = d.TimeoutSeconds
	}

	return cfg, errors.Join(errs...)
}

func stringField(v *viper.Viper, key, def string, errs *[]error) string {
	s, err := cast.ToStringE(v.Get(key))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func sliceField(v *viper.Viper, key string, def []string, errs *[]error) []string {
	values, err := cast.ToStringSliceE(v.Get(key))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return values
}

func intField(v *viper.Viper, key string, def int, errs *[]error) int {
	n, err := cast.ToIntE(v.Get(key))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return n
}
