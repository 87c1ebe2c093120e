package overlay

import (
	"errors"
	"fmt"

	"github.com/agext/levenshtein"
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/ui"
)

// ErrInvalidConfig is returned for configurations that fail validation.
var ErrInvalidConfig = errors.New("invalid overlay config")

// Config is fixed when the plugin is constructed. It decodes from an HCL
// "overlay" block.
type Config struct {
	// Target is the render target the UI draws onto.
	Target string `hcl:"target,optional"`
	// Docking is passed through to the UI context as a feature flag.
	Docking     bool `hcl:"docking,optional"`
	KeyboardNav bool `hcl:"keyboard_nav,optional"`
	// NoCursorChange stops the UI from changing the mouse cursor.
	NoCursorChange bool `hcl:"no_cursor_change,optional"`
	// HiDpi is one of "default", "rounded" or "locked".
	HiDpi string `hcl:"hidpi,optional"`
	// Scale is the factor used by the "locked" mode.
	Scale    float64 `hcl:"scale,optional"`
	FontSize float64 `hcl:"font_size,optional"`
}

func DefaultConfig() Config {
	return Config{
		Target:   string(core.TargetMain),
		HiDpi:    HiDpiDefault.String(),
		Scale:    1,
		FontSize: 13,
	}
}

// Normalize fills zero fields with defaults.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.Target == "" {
		c.Target = def.Target
	}
	if c.HiDpi == "" {
		c.HiDpi = def.HiDpi
	}
	if c.Scale == 0 {
		c.Scale = def.Scale
	}
	if c.FontSize == 0 {
		c.FontSize = def.FontSize
	}
	return c
}

// Validate reports the first invalid field. Zero fields take defaults.
func (c Config) Validate() error {
	c = c.Normalize()
	if _, err := c.hiDpiMode(); err != nil {
		return err
	}
	if c.Scale < 0.25 || c.Scale > 8 {
		return fmt.Errorf("%w: scale %g out of range [0.25, 8]", ErrInvalidConfig, c.Scale)
	}
	if c.FontSize < 4 || c.FontSize > 128 {
		return fmt.Errorf("%w: font_size %g out of range [4, 128]", ErrInvalidConfig, c.FontSize)
	}
	return nil
}

func (c Config) hiDpiMode() (HiDpiMode, error) {
	for i, name := range hiDpiNames {
		if c.HiDpi == name {
			return HiDpiMode(i), nil
		}
	}
	for _, name := range hiDpiNames {
		if levenshtein.Distance(c.HiDpi, name, nil) < 3 {
			return 0, fmt.Errorf("%w: unknown hidpi mode %q, did you mean %q?", ErrInvalidConfig, c.HiDpi, name)
		}
	}
	return 0, fmt.Errorf("%w: unknown hidpi mode %q", ErrInvalidConfig, c.HiDpi)
}

func (c Config) flags() ui.ConfigFlags {
	var f ui.ConfigFlags
	if c.Docking {
		f |= ui.ConfigDockingEnable
	}
	if c.KeyboardNav {
		f |= ui.ConfigNavEnableKeyboard
	}
	if c.NoCursorChange {
		f |= ui.ConfigNoMouseCursorChange
	}
	return f
}
