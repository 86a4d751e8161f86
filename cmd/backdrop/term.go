package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/backdrop/config"
	"github.com/plus3/backdrop/frame"
	"github.com/plus3/backdrop/particle"
	"github.com/plus3/backdrop/render/termsurface"
	"github.com/plus3/backdrop/scene"
)

var termLogFile string

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Render into the terminal",
	RunE:  runTerm,
}

func init() {
	termCmd.Flags().StringVar(&termLogFile, "log-file", "", "write logs to this file while the terminal is in use")
}

// terminalLogger keeps log output off the screen tcell is drawing on.
func terminalLogger() (*zap.Logger, error) {
	if termLogFile == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{termLogFile}
	cfg.ErrorOutputPaths = []string{termLogFile}
	return cfg.Build()
}

func runTerm(cmd *cobra.Command, args []string) error {
	f, err := loadFile()
	if err != nil {
		return err
	}
	cfg, err := sceneConfig(cmd, f)
	if err != nil {
		return err
	}

	log, err := terminalLogger()
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = log.Sync() }()
	// Package helpers log through the global logger.
	logger = log

	screen, err := termsurface.OpenScreen()
	if err != nil {
		return err
	}

	surface := termsurface.New(screen, termsurface.ThemeBackground(cfg.Theme))
	w, h := surface.PixelSize()
	cfg.Viewport = particle.Viewport{Width: float64(w), Height: float64(h)}

	sc, err := scene.New(cfg, surface, sceneOptions(cmd, f)...)
	if err != nil {
		screen.Fini()
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The watcher must not keep the group alive once the host has returned.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if configPath != "" {
		watcher, err := config.NewWatcher(configPath, reloadHandler(cmd, sc), logger.Named("config"))
		if err != nil {
			screen.Fini()
			return err
		}
		g.Go(func() error { return watcher.Run(ctx) })
	}

	host := termsurface.NewHost(screen, surface, sc, logger.Named("term"))
	g.Go(func() error {
		defer cancel()
		return host.Run(ctx, frame.NewFPSTicker(frameRate(cmd, f)))
	})

	logger.Debug("terminal started", zap.Int("cols_px", w), zap.Int("rows_px", h))
	return g.Wait()
}
