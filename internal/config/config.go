package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	UI     UIConfig
	Log    LogConfig
}

// ServerConfig points at the dashboard service.
type ServerConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// AuthConfig holds login settings. The password is better supplied through
// the env override (FINSIGHT_AUTH_PASSWORD) than the config file.
type AuthConfig struct {
	Username string
	Password string
	TokenEnv string `mapstructure:"token_env"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	DateFormat     string `mapstructure:"date_format"`
}

// LogConfig holds the debug log destination; the terminal belongs to the TUI.
type LogConfig struct {
	Path string
}

// Load reads configuration from file and env. Env var overrides use prefix FINSIGHT_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.base_url", "http://localhost:8000/api")
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("auth.username", "")
	v.SetDefault("auth.password", "")
	v.SetDefault("auth.token_env", "FINSIGHT_TOKEN")
	v.SetDefault("ui.currency_symbol", "₹")
	v.SetDefault("ui.date_format", "02/01/2006")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "finsight", "finsight.log"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FINSIGHT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "finsight"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FINSIGHT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
