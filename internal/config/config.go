package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Log     LogConfig     `yaml:"log"`
	Fixture FixtureConfig `yaml:"fixture"`
	UI      UIConfig      `yaml:"ui"`
}

// APIConfig holds users API settings. A zero Timeout leaves requests
// unbounded.
type APIConfig struct {
	Endpoint string
	Key      string
	Timeout  time.Duration
}

// LogConfig holds zap settings.
type LogConfig struct {
	Path  string
	Level string
}

// FixtureConfig holds settings for the local users API fixture.
type FixtureConfig struct {
	Addr string
	Data string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	StartScreen string `mapstructure:"start_screen" yaml:"start_screen"`
}

const (
	ScreenArticle  = "article"
	ScreenFacebook = "facebook"
)

// Load reads configuration from file and env. Env var overrides use prefix CARDFRIENDS_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.endpoint", "https://reqres.in/api/users")
	v.SetDefault("api.key", "")
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("log.path", filepath.Join(homeDir(), ".local", "state", "cardfriends", "cardfriends.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("fixture.addr", "127.0.0.1:8089")
	v.SetDefault("fixture.data", "")
	v.SetDefault("ui.start_screen", ScreenArticle)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CARDFRIENDS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "cardfriends"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CARDFRIENDS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit path that cannot be read is an error; a missing default file is not
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values viper cannot type-check.
func (c Config) Validate() error {
	switch c.UI.StartScreen {
	case ScreenArticle, ScreenFacebook:
	default:
		return fmt.Errorf("ui.start_screen: unknown screen %q", c.UI.StartScreen)
	}
	if strings.TrimSpace(c.API.Endpoint) == "" {
		return fmt.Errorf("api.endpoint: must not be empty")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout: must not be negative")
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("CARDFRIENDS_CONFIG")
	if path == "" {
		path = filepath.Join(homeDir(), ".config", "cardfriends", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.endpoint", cfg.API.Endpoint)
	v.Set("api.key", cfg.API.Key)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("fixture.addr", cfg.Fixture.Addr)
	v.Set("fixture.data", cfg.Fixture.Data)
	v.Set("ui.start_screen", cfg.UI.StartScreen)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}
