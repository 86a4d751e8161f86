package debugui_test

import (
	"github.com/plus3/backdrop/debugui"
	"github.com/plus3/backdrop/particle"
	"github.com/plus3/backdrop/render/ebitensurface"
	"github.com/plus3/backdrop/scene"
)

// Example draws the stats window over the particle background.
func Example() {
	// Create the ImGui context before any frame runs
	backend := debugui.NewBackend("backdrop debug", 1280, 720)

	cfg := scene.DefaultConfig()
	cfg.Viewport = particle.Viewport{Width: 1280, Height: 720}
	surface := ebitensurface.New(ebitensurface.ThemeBackground(cfg.Theme))

	sc, err := scene.New(cfg, surface)
	if err != nil {
		panic(err)
	}

	// Registered last so its deferred window is drawn over the scene
	sc.Scheduler().Register(debugui.NewStatsWindow(sc.Scheduler(), sc.Field(), 120))

	host := ebitensurface.NewHost(sc, surface, nil)
	host.SetOverlay(backend)

	if err := ebitensurface.Run(host, ebitensurface.WindowOptions{
		Title:  "backdrop debug",
		Width:  1280,
		Height: 720,
	}); err != nil {
		panic(err)
	}
}
