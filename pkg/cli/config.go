// Package cli holds the pieces shared by the plugin's entry point: display
// configuration read from the environment, the keyring-backed token store, and
// the interactive login prompt.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/therippa/tesla-bitbar/pkg/menu"
	"github.com/therippa/tesla-bitbar/pkg/owner"
	"github.com/therippa/tesla-bitbar/pkg/status"
)

// Config is the display and transport configuration, constructed once at
// startup and threaded through aggregator and renderer calls. Menu hosts pass
// settings through the environment; an optional config.env file fills in
// anything the host doesn't set.
type Config struct {
	// DarkMode is set by the menu host and selects the text color token.
	DarkMode bool `env:"BitBarDarkMode"`
	// TempUnit is "F" for Fahrenheit; anything else displays Celsius.
	TempUnit string `env:"TESLA_TEMP_UNIT" envDefault:"F"`
	// Emoji selects iconographic labels over plain text ones.
	Emoji bool `env:"TESLA_EMOJI" envDefault:"true"`
	// VehicleNames overrides display names, e.g. "Model 3:Daily Driver".
	VehicleNames map[string]string `env:"TESLA_VEHICLE_NAMES"`

	ProxyURL      string `env:"TESLA_PROXY_URL"`
	ProxyUser     string `env:"TESLA_PROXY_USER"`
	ProxyPassword string `env:"TESLA_PROXY_PASSWORD"`
}

// LoadConfig reads the optional config.env file and then the environment.
func LoadConfig() (Config, error) {
	if home, err := os.UserHomeDir(); err == nil {
		// Missing file is the normal case.
		_ = godotenv.Load(filepath.Join(home, ".config", "tesla-bitbar", "config.env"))
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Color returns the text color token for the host's current appearance.
func (c Config) Color() string {
	if c.DarkMode {
		return "white"
	}
	return "black"
}

// Unit returns the configured temperature display unit.
func (c Config) Unit() status.Unit {
	return status.ParseUnit(c.TempUnit)
}

// Proxy returns the transport proxy configuration, nil when unset.
func (c Config) Proxy() *owner.ProxyConfig {
	if c.ProxyURL == "" {
		return nil
	}
	return &owner.ProxyConfig{URL: c.ProxyURL, User: c.ProxyUser, Password: c.ProxyPassword}
}

// MenuOptions bundles the renderer's inputs for this invocation.
func (c Config) MenuOptions(exe string) menu.Options {
	return menu.Options{
		Exe:   exe,
		Color: c.Color(),
		Emoji: c.Emoji,
		Unit:  c.Unit(),
		Names: c.VehicleNames,
	}
}
