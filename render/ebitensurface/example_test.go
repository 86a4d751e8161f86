package ebitensurface_test

import (
	"github.com/plus3/backdrop/render/ebitensurface"
	"github.com/plus3/backdrop/scene"
)

// Example opens a resizable window with the particle background. Press T to
// switch themes and Q or Escape to quit.
func Example() {
	cfg := scene.DefaultConfig()
	surface := ebitensurface.New(ebitensurface.ThemeBackground(cfg.Theme))

	sc, err := scene.New(cfg, surface)
	if err != nil {
		panic(err)
	}

	host := ebitensurface.NewHost(sc, surface, nil)
	if err := ebitensurface.Run(host, ebitensurface.WindowOptions{
		Title:      "backdrop",
		Width:      1280,
		Height:     720,
		HideCursor: true,
	}); err != nil {
		panic(err)
	}
}
