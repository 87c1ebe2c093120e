// Command inputprobe shows, in a terminal, which input events the overlay
// captures and which it forwards to the application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/hubastard/grove/engine/core"
	"github.com/hubastard/grove/engine/overlay"
	"github.com/hubastard/grove/engine/platform/tty"
)

type options struct {
	logFile string
	verbose int
	fps     int
	history int
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:           "inputprobe",
		Short:         "Inspect overlay input capture in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVar(&opts.logFile, "log", "", "write the engine log to this file")
	cmd.Flags().CountVarP(&opts.verbose, "verbose", "v", "log more; repeat for trace output")
	cmd.Flags().IntVar(&opts.fps, "fps", tty.DefaultFrameRate, "frames per second")
	cmd.Flags().IntVar(&opts.history, "history", 12, "events kept per scheme")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "inputprobe:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// The terminal owns stdout and stderr while the probe runs.
	var out io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.Create(opts.logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	log := core.NewLogger(core.LogInfo+core.LogLevel(opts.verbose), out)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := core.Config{Title: "grove inputprobe", TickHz: opts.fps}
	ocfg := overlay.DefaultConfig()
	ocfg.FontSize = tty.CellH

	app := &App{overlayCfg: ocfg, history: opts.history}
	newWindow := func(cfg core.Config) (core.Window, error) {
		term, err := tty.New(cfg)
		if err != nil {
			return nil, err
		}
		term.SetFrameRate(opts.fps)
		app.term = term
		return term, nil
	}
	newRenderer := func(win core.Window, _ core.Config) (core.Renderer, error) {
		return app.term, nil
	}
	return core.Run(ctx, app, cfg, log, newWindow, newRenderer)
}
