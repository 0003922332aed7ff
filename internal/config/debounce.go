package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Debounce modes. Never allows unlimited summons, Once allows a given
// player+mob pair a single summon ever, TimeWindow allows one per rolling
// window.
const (
	DebounceNever      = "never"
	DebounceOnce       = "once"
	DebounceTimeWindow = "time_window"
)

type DebounceConfig struct {
	Mode          string `env:"SUMMON_DEBOUNCE_MODE" envDefault:"time_window"`
	WindowSeconds int    `env:"SUMMON_DEBOUNCE_WINDOW_SECONDS" envDefault:"60"`

	// Strict controls how a blocked summon is surfaced: true returns an
	// explicit rejection, false fakes success while skipping the action.
	Strict bool `env:"SUMMON_DEBOUNCE_STRICT" envDefault:"true"`
}

func LoadDebounce() (DebounceConfig, error) {
	var cfg DebounceConfig
	if err := env.Parse(&cfg); err != nil {
		return DebounceConfig{}, err
	}
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	switch cfg.Mode {
	case DebounceNever, DebounceOnce, DebounceTimeWindow:
	default:
		return DebounceConfig{}, fmt.Errorf("invalid SUMMON_DEBOUNCE_MODE %q: must be never, once, or time_window", cfg.Mode)
	}
	if cfg.WindowSeconds < 1 {
		return DebounceConfig{}, fmt.Errorf("SUMMON_DEBOUNCE_WINDOW_SECONDS must be >= 1, got %d", cfg.WindowSeconds)
	}
	return cfg, nil
}

// Summary returns a human-readable description of the active policy for
// startup logs.
func (c DebounceConfig) Summary() string {
	switch c.Mode {
	case DebounceNever:
		return "debouncing disabled - all summons allowed"
	case DebounceOnce:
		return "one-time only - each player may summon a given mob once ever"
	case DebounceTimeWindow:
		suffix := " (strict - duplicates rejected)"
		if !c.Strict {
			suffix = " (silent - duplicates fake success)"
		}
		return fmt.Sprintf("time window - one summon per player per mob per %ds%s", c.WindowSeconds, suffix)
	}
	return "unknown mode"
}
