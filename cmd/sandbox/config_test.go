package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/grove/engine/overlay"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.hcl")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, defaultConfig()); diff != "" {
		t.Fatalf("Diff (-got +want):\n%s", diff)
	}
}

func TestLoadConfigBlocks(t *testing.T) {
	path := writeConfig(t, `
window {
  width  = 640
  height = 360
}
overlay {
  hidpi = "locked"
  scale = 2
}
`)
	cfg, err := loadConfig([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	def := defaultConfig()
	if cfg.Window.Width != 640 || cfg.Window.Title != def.Window.Title || cfg.Window.ClearColor != def.Window.ClearColor {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Overlay.HiDpi != "locked" || cfg.Overlay.Scale != 2 {
		t.Errorf("overlay = %+v", cfg.Overlay)
	}
}

func TestLoadConfigOverlayDefaults(t *testing.T) {
	path := writeConfig(t, `overlay { docking = true }`)
	cfg, err := loadConfig([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	want := overlay.DefaultConfig()
	want.Docking = true
	if diff := cmp.Diff(cfg.Overlay, want); diff != "" {
		t.Fatalf("Diff (-got +want):\n%s", diff)
	}
}

func TestLoadConfigRejectsBadOverlay(t *testing.T) {
	path := writeConfig(t, `overlay { hidpi = "rounde" }`)
	_, err := loadConfig([]string{path})
	if !errors.Is(err, overlay.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestBuiltinAssets(t *testing.T) {
	w, h, _, err := assetLoader("").PNG("player.png")
	if err != nil {
		t.Fatal(err)
	}
	if w != 64 || h != 32 {
		t.Errorf("player.png is %dx%d, want 64x32", w, h)
	}
}
