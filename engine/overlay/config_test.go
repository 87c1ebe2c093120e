package overlay

import (
	"errors"
	"testing"

	"github.com/hubastard/grove/engine/ui"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"zero", Config{}, true},
		{"default", DefaultConfig(), true},
		{"locked", Config{HiDpi: "locked", Scale: 1.5}, true},
		{"unknown mode", Config{HiDpi: "retina"}, false},
		{"tiny scale", Config{Scale: 0.1}, false},
		{"negative font", Config{FontSize: -3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestConfigFlags(t *testing.T) {
	cfg := Config{Docking: true, KeyboardNav: true}
	want := ui.ConfigDockingEnable | ui.ConfigNavEnableKeyboard
	if got := cfg.flags(); got != want {
		t.Fatalf("flags() = %b, want %b", got, want)
	}
	if got := New(Config{}).Config(); got != DefaultConfig() {
		t.Fatalf("normalized config = %+v", got)
	}
}
