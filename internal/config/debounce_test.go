package config

import "testing"

func TestLoadDebounceDefaults(t *testing.T) {
	cfg, err := LoadDebounce()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != DebounceTimeWindow {
		t.Fatalf("mode = %q, want time_window", cfg.Mode)
	}
	if cfg.WindowSeconds != 60 {
		t.Fatalf("window = %d, want 60", cfg.WindowSeconds)
	}
	if !cfg.Strict {
		t.Fatal("strict should default to true")
	}
}

func TestLoadDebounceNormalizesMode(t *testing.T) {
	t.Setenv("SUMMON_DEBOUNCE_MODE", " ONCE ")
	cfg, err := LoadDebounce()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != DebounceOnce {
		t.Fatalf("mode = %q, want once", cfg.Mode)
	}
}

func TestLoadDebounceRejectsUnknownMode(t *testing.T) {
	t.Setenv("SUMMON_DEBOUNCE_MODE", "sometimes")
	if _, err := LoadDebounce(); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestLoadDebounceRejectsZeroWindow(t *testing.T) {
	t.Setenv("SUMMON_DEBOUNCE_WINDOW_SECONDS", "0")
	if _, err := LoadDebounce(); err == nil {
		t.Fatal("expected error for zero window")
	}
}

func TestDebounceSummary(t *testing.T) {
	tests := []struct {
		name string
		cfg  DebounceConfig
		want string
	}{
		{"never", DebounceConfig{Mode: DebounceNever}, "debouncing disabled - all summons allowed"},
		{"once", DebounceConfig{Mode: DebounceOnce}, "one-time only - each player may summon a given mob once ever"},
		{"window strict", DebounceConfig{Mode: DebounceTimeWindow, WindowSeconds: 60, Strict: true}, "time window - one summon per player per mob per 60s (strict - duplicates rejected)"},
		{"window silent", DebounceConfig{Mode: DebounceTimeWindow, WindowSeconds: 300, Strict: false}, "time window - one summon per player per mob per 300s (silent - duplicates fake success)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Summary(); got != tt.want {
				t.Fatalf("summary = %q, want %q", got, tt.want)
			}
		})
	}
}
