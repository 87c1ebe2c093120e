package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/hubastard/grove/engine/core"
	glbackend "github.com/hubastard/grove/engine/gfx/gl"
	"github.com/hubastard/grove/engine/platform"
)

type options struct {
	configs []string
	assets  string
	verbose int
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:           "sandbox",
		Short:         "2D sandbox with a debug overlay",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringSliceVarP(&opts.configs, "config", "c", nil, "HCL config files, merged in name order")
	cmd.Flags().StringVar(&opts.assets, "assets", "", "asset directory (default: built-in assets)")
	cmd.Flags().CountVarP(&opts.verbose, "verbose", "v", "log more; repeat for trace output")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sandbox:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := loadConfig(opts.configs)
	if err != nil {
		return err
	}
	log := core.NewLogger(core.LogInfo+core.LogLevel(opts.verbose), os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &App{overlayCfg: cfg.Overlay, assets: assetLoader(opts.assets)}
	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg, log)
	}
	return core.Run(ctx, app, cfg.Window, log, newWindow, newRenderer)
}
