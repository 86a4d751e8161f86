package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plus3/backdrop/config"
	"github.com/plus3/backdrop/debugui"
	"github.com/plus3/backdrop/particle"
	"github.com/plus3/backdrop/render/ebitensurface"
	"github.com/plus3/backdrop/scene"
)

var (
	windowWidth  int
	windowHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Render into a desktop window",
	RunE:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&windowWidth, "width", 1280, "window width")
	windowCmd.Flags().IntVar(&windowHeight, "height", 720, "window height")
}

func runWindow(cmd *cobra.Command, args []string) error {
	f, err := loadFile()
	if err != nil {
		return err
	}
	cfg, err := sceneConfig(cmd, f)
	if err != nil {
		return err
	}
	cfg.Viewport = particle.Viewport{Width: float64(windowWidth), Height: float64(windowHeight)}

	var backend *debugui.Backend
	if debug {
		// The ImGui context has to exist before the first frame runs.
		backend = debugui.NewBackend("backdrop", windowWidth, windowHeight)
	}

	surface := ebitensurface.New(ebitensurface.ThemeBackground(cfg.Theme))
	sc, err := scene.New(cfg, surface, sceneOptions(cmd, f)...)
	if err != nil {
		return err
	}

	host := ebitensurface.NewHost(sc, surface, logger.Named("window"))
	if backend != nil {
		sc.Scheduler().Register(debugui.NewStatsWindow(sc.Scheduler(), sc.Field(), 120))
		host.SetOverlay(backend)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if configPath != "" {
		w, err := config.NewWatcher(configPath, reloadHandler(cmd, sc), logger.Named("config"))
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Warn("config watcher stopped", zap.Error(err))
			}
		}()
	}

	logger.Info("starting window",
		zap.Int("particles", cfg.Particles.Count),
		zap.String("theme", string(cfg.Theme)),
		zap.Bool("debug", debug))

	return ebitensurface.Run(host, ebitensurface.WindowOptions{
		Title:      "backdrop",
		Width:      windowWidth,
		Height:     windowHeight,
		HideCursor: cfg.ShowCursor,
		FPS:        frameRate(cmd, f),
	})
}
