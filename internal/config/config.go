// Package config loads wordbook settings from flags, environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. WORDBOOK_DAILY_GOAL.
const EnvPrefix = "WORDBOOK"

// Config is the effective configuration.
type Config struct {
	DB        string          `mapstructure:"db" json:"db"`
	DailyGoal int             `mapstructure:"daily_goal" json:"daily_goal"`
	Dictation DictationConfig `mapstructure:"dictation" json:"dictation"`
	AI        AIConfig        `mapstructure:"ai" json:"ai"`
	Log       LogConfig       `mapstructure:"log" json:"log"`
}

// DictationConfig holds dictation session settings.
type DictationConfig struct {
	Count int     `mapstructure:"count" json:"count"`
	Rate  float64 `mapstructure:"rate" json:"rate"` // audio playback-rate hint
}

// AIConfig holds the word extraction endpoint settings.
type AIConfig struct {
	APIKey  string `mapstructure:"api_key" json:"-"`
	BaseURL string `mapstructure:"base_url" json:"base_url"`
	Model   string `mapstructure:"model" json:"model"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
}

// Enabled reports whether an API key is configured.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// Dir returns the default data directory, ~/.wordbook.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".wordbook")
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("db", filepath.Join(Dir(), "wordbook.db"))
	v.SetDefault("daily_goal", 20)
	v.SetDefault("dictation.count", 20)
	v.SetDefault("dictation.rate", 1.0)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("log.level", "warn")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the result. An empty path
// looks for config.yaml in the data directory; a missing file there is not
// an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		slog.Debug("config file loaded", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// LogLevel maps the configured level name to a slog level. Unknown names
// fall back to warn.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}
