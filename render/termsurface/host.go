package termsurface

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/backdrop/frame"
	"github.com/plus3/backdrop/particle"
	"github.com/plus3/backdrop/scene"
)

var (
	DarkBackground  = color.NRGBA{0x11, 0x18, 0x27, 0xff}
	LightBackground = color.NRGBA{0xff, 0xff, 0xff, 0xff}
)

// ThemeBackground returns the terminal background for a theme.
func ThemeBackground(theme particle.Theme) color.NRGBA {
	if theme == particle.ThemeLight {
		return LightBackground
	}
	return DarkBackground
}

// OpenScreen acquires and initializes the terminal. An error here means the
// scene must not start.
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("termsurface: open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("termsurface: init terminal: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	return screen, nil
}

// Host pumps terminal events and frame ticks into a scene. Events and frames
// are handled on a single goroutine; a second goroutine only blocks in
// PollEvent and forwards what it reads.
type Host struct {
	screen  tcell.Screen
	surface *Surface
	scene   *scene.Scene
	log     *zap.Logger
	theme   particle.Theme
	pressed bool
}

func NewHost(screen tcell.Screen, surface *Surface, sc *scene.Scene, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{
		screen:  screen,
		surface: surface,
		scene:   sc,
		log:     log,
		theme:   sc.Theme(),
	}
}

// Run blocks until the user quits or ctx is cancelled. The scene is stopped
// and the terminal restored before Run returns.
func (h *Host) Run(ctx context.Context, ticker frame.Ticker) error {
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})

	g.Go(func() error {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-quit:
				return nil
			}
		}
	})

	g.Go(func() error {
		defer func() {
			h.scene.Stop()
			close(quit)
			// Fini makes PollEvent return nil, releasing the reader.
			h.screen.Fini()
		}()
		defer ticker.Stop()

		var last time.Time
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				if !h.handle(ev) {
					h.log.Debug("quit requested")
					return nil
				}
			case now := <-ticker.C():
				dt := 0.0
				if !last.IsZero() {
					dt = now.Sub(last).Seconds()
				}
				last = now
				if h.scene.Once(dt) {
					h.surface.Show()
				}
			}
		}
	})

	return g.Wait()
}

// handle applies one terminal event. It returns false when the user asked to
// quit.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 't' || ev.Rune() == 'T'):
			h.toggleTheme()
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := h.surface.CellCenter(col, row)
		h.scene.PointerMoved(x, y)

		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed != h.pressed {
			h.pressed = pressed
			h.scene.PointerButton(pressed)
		}

	case *tcell.EventFocus:
		if ev.Focused {
			h.scene.PointerEntered()
		} else {
			h.scene.PointerLeft()
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.surface.Resize(cols, rows)
		h.screen.Sync()
		w, ht := h.surface.PixelSize()
		h.scene.Resized(w, ht)
		h.log.Debug("terminal resized", zap.Int("cols", cols), zap.Int("rows", rows))
	}
	return true
}

func (h *Host) toggleTheme() {
	next := particle.ThemeLight
	if h.theme == particle.ThemeLight {
		next = particle.ThemeDark
	}
	h.theme = next
	h.surface.Background = ThemeBackground(next)
	h.scene.SetTheme(next)
}
