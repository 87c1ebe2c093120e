package main

import (
	"embed"
	"io/fs"

	"github.com/hubastard/grove/engine/assets"
	"github.com/hubastard/grove/engine/colors"
	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/overlay"
	"github.com/hubastard/grove/engine/settings"
)

//go:embed assets
var builtin embed.FS

type config struct {
	Window  core.Config
	Overlay overlay.Config
}

type configFile struct {
	Window  *core.Config    `hcl:"window,block"`
	Overlay *overlay.Config `hcl:"overlay,block"`
}

func defaultConfig() config {
	return config{
		Window: core.Config{
			Title:      "grove sandbox",
			Width:      1280,
			Height:     720,
			VSync:      true,
			ClearColor: colors.DarkGray,
		},
		Overlay: overlay.DefaultConfig(),
	}
}

// loadConfig merges the given files over the defaults. Blocks replace the
// default block; window attributes left out of a block stay zero and
// overlay attributes take the overlay defaults.
func loadConfig(paths []string) (config, error) {
	cfg := defaultConfig()
	if len(paths) == 0 {
		return cfg, nil
	}
	var f configFile
	if err := (&settings.Loader{}).LoadFiles(&f, paths...); err != nil {
		return cfg, err
	}
	if f.Window != nil {
		bg := cfg.Window.ClearColor
		cfg.Window = *f.Window
		cfg.Window.ClearColor = bg
		if cfg.Window.Title == "" {
			cfg.Window.Title = defaultConfig().Window.Title
		}
	}
	if f.Overlay != nil {
		cfg.Overlay = f.Overlay.Normalize()
	}
	if err := cfg.Overlay.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func assetLoader(dir string) assets.Loader {
	if dir != "" {
		return assets.Dir(dir)
	}
	sub, err := fs.Sub(builtin, "assets")
	if err != nil {
		panic(err)
	}
	return assets.Loader{FS: sub}
}
