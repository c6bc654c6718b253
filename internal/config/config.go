// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Config represents the compositor configuration
type Config struct {
	// Input device configuration
	Input InputConfig `mapstructure:"input"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// InputConfig contains the input device tunables. The struct is a
// snapshot: it is never mutated after load, and a reload replaces it
// wholesale (holders must not cache individual fields across a reload
// boundary).
type InputConfig struct {
	MouseCursorSpeed          float64 `mapstructure:"mouse_cursor_speed"`
	TouchpadCursorSpeed       float64 `mapstructure:"touchpad_cursor_speed"`
	TapToClick                bool    `mapstructure:"tap_to_click"`
	ClickMethod               string  `mapstructure:"click_method"`  // "default", "none", "button-areas", "clickfinger"
	ScrollMethod              string  `mapstructure:"scroll_method"` // "default", "none", "two-finger", "edge", "on-button-down"
	DisableWhileTyping        bool    `mapstructure:"disable_while_typing"`
	DisableTouchpadWhileMouse bool    `mapstructure:"disable_touchpad_while_mouse"`
	NaturalScroll             bool    `mapstructure:"natural_scroll"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	FileLogging bool   `mapstructure:"file_logging"` // Enable/disable file logging
	LogLevel    string `mapstructure:"log_level"`    // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Input: InputConfig{
			MouseCursorSpeed:          0,
			TouchpadCursorSpeed:       0,
			TapToClick:                true,
			ClickMethod:               "default",
			ScrollMethod:              "default",
			DisableWhileTyping:        false,
			DisableTouchpadWhileMouse: false,
			NaturalScroll:             false,
		},
		Logging: LoggingConfig{
			FileLogging: false,
			LogLevel:    "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string

	reloadMu sync.Mutex
	onReload []func(*Config)
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("drift")
	viper.SetConfigType("toml")

	// If a specific path is set, use only that
	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		viper.AddConfigPath("/etc/drift") // System config directory

		if home := os.Getenv("HOME"); home != "" {
			viper.AddConfigPath(filepath.Join(home, ".config", "drift"))
		}

		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("input.mouse_cursor_speed", DefaultConfig.Input.MouseCursorSpeed)
	viper.SetDefault("input.touchpad_cursor_speed", DefaultConfig.Input.TouchpadCursorSpeed)
	viper.SetDefault("input.tap_to_click", DefaultConfig.Input.TapToClick)
	viper.SetDefault("input.click_method", DefaultConfig.Input.ClickMethod)
	viper.SetDefault("input.scroll_method", DefaultConfig.Input.ScrollMethod)
	viper.SetDefault("input.disable_while_typing", DefaultConfig.Input.DisableWhileTyping)
	viper.SetDefault("input.disable_touchpad_while_mouse", DefaultConfig.Input.DisableTouchpadWhileMouse)
	viper.SetDefault("input.natural_scroll", DefaultConfig.Input.NaturalScroll)

	viper.SetDefault("logging.file_logging", DefaultConfig.Logging.FileLogging)
	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	return unmarshal()
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// OnReload registers a callback invoked after every successful Reload
// with the new configuration. Callbacks run synchronously, in
// registration order, before Reload returns.
func OnReload(fn func(*Config)) {
	reloadMu.Lock()
	defer reloadMu.Unlock()
	onReload = append(onReload, fn)
}

// Reload re-reads the configuration file, replaces the snapshot and
// notifies every registered callback exactly once. The old snapshot
// stays in place if the re-read fails.
func Reload() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reloading config file: %w", err)
		}
	}

	if err := unmarshal(); err != nil {
		return err
	}

	reloadMu.Lock()
	callbacks := make([]func(*Config), len(onReload))
	copy(callbacks, onReload)
	reloadMu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "/etc/drift/drift.toml"
	}
	return filepath.Join(home, ".config", "drift", "drift.toml")
}

func unmarshal() error {
	next := &Config{}
	if err := viper.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	cfg = next
	return nil
}
