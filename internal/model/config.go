package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds the location of the diary database.
type DatabaseConfig struct {
	// Path is the SQLite file. ":memory:" keeps everything in RAM.
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds CLI rendering preferences.
type DisplayConfig struct {
	// DefaultSort is used when a command is not given --sort.
	DefaultSort string `mapstructure:"default_sort" yaml:"default_sort"`

	// DateFormat is a Go time layout used when printing entry dates.
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
}

// ReminderConfig controls the "no entry today" nudge.
type ReminderConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Reminder ReminderConfig `mapstructure:"reminder" yaml:"reminder"`
}

// ConfigDir returns ~/.config/diary, or the working directory when the home
// directory cannot be determined.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "diary")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/diary/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultDatabasePath returns ~/.config/diary/diary.db.
func DefaultDatabasePath() string {
	return filepath.Join(ConfigDir(), "diary.db")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{
			Path: DefaultDatabasePath(),
		},
		Display: DisplayConfig{
			DefaultSort: string(DefaultSort),
			DateFormat:  "Mon Jan 2, 2006 15:04",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Log: LogConfig{
			Level: "info",
		},
		Reminder: ReminderConfig{
			Enabled: true,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
// Environment variables prefixed with DIARY_ override file values
// (e.g. DIARY_DATABASE_PATH).
func LoadConfig(path string) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("diary")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("display.default_sort", def.Display.DefaultSort)
	v.SetDefault("display.date_format", def.Display.DateFormat)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("reminder.enabled", def.Reminder.Enabled)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !os.IsNotExist(err) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Normalize values the rest of the app relies on.
	cfg.Display.DefaultSort = string(ParseSortType(cfg.Display.DefaultSort))
	if cfg.Display.DateFormat == "" {
		cfg.Display.DateFormat = def.Display.DateFormat
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("display", cfg.Display)
	v.Set("server", cfg.Server)
	v.Set("log", cfg.Log)
	v.Set("reminder", cfg.Reminder)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
