package cli

import (
	"testing"

	"github.com/therippa/tesla-bitbar/pkg/status"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Color() != "black" {
		t.Errorf("color = %q, want black in light mode", cfg.Color())
	}
	if cfg.Unit() != status.UnitFahrenheit {
		t.Errorf("unit = %v, want Fahrenheit by default", cfg.Unit())
	}
	if !cfg.Emoji {
		t.Error("emoji should default to on")
	}
	if cfg.Proxy() != nil {
		t.Error("proxy should default to nil")
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("BitBarDarkMode", "true")
	t.Setenv("TESLA_TEMP_UNIT", "C")
	t.Setenv("TESLA_EMOJI", "false")
	t.Setenv("TESLA_VEHICLE_NAMES", "Nikola:Daily Driver,Edison:Track Car")
	t.Setenv("TESLA_PROXY_URL", "http://proxy.example.com:8080")
	t.Setenv("TESLA_PROXY_USER", "u")
	t.Setenv("TESLA_PROXY_PASSWORD", "p")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Color() != "white" {
		t.Errorf("color = %q, want white in dark mode", cfg.Color())
	}
	if cfg.Unit() != status.UnitCelsius {
		t.Errorf("unit = %v, want Celsius", cfg.Unit())
	}
	if cfg.Emoji {
		t.Error("emoji should be off")
	}
	if got := cfg.VehicleNames["Nikola"]; got != "Daily Driver" {
		t.Errorf("name override = %q", got)
	}
	proxy := cfg.Proxy()
	if proxy == nil || proxy.URL != "http://proxy.example.com:8080" || proxy.User != "u" {
		t.Errorf("proxy = %+v", proxy)
	}
}

func TestMenuOptions(t *testing.T) {
	t.Setenv("BitBarDarkMode", "true")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	opts := cfg.MenuOptions("/plugins/tesla-bitbar")
	if opts.Exe != "/plugins/tesla-bitbar" {
		t.Errorf("exe = %q", opts.Exe)
	}
	if opts.Color != "white" {
		t.Errorf("color = %q", opts.Color)
	}
}
