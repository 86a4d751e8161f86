package ebitensurface

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/plus3/backdrop/particle"
	"github.com/plus3/backdrop/scene"
)

var (
	DarkBackground  = color.NRGBA{0x11, 0x18, 0x27, 0xff}
	LightBackground = color.NRGBA{0xff, 0xff, 0xff, 0xff}
)

// ThemeBackground returns the page color behind the particles.
func ThemeBackground(theme particle.Theme) color.Color {
	if theme == particle.ThemeLight {
		return LightBackground
	}
	return DarkBackground
}

// Overlay is drawn over the scene once per frame. The Dear ImGui debug
// backend implements it.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	WantCaptureMouse() bool
}

// Host implements ebiten.Game for a scene. Ebitengine calls Update, Draw and
// Layout on one goroutine, which is also the scene's frame goroutine.
type Host struct {
	scene   *scene.Scene
	surface *Surface
	overlay Overlay
	log     *zap.Logger

	theme         particle.Theme
	width, height int
	pointerX      int
	pointerY      int
	pointerInside bool
	pressed       bool
	lastDraw      time.Time
}

func NewHost(sc *scene.Scene, surface *Surface, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{
		scene:   sc,
		surface: surface,
		log:     log,
		theme:   sc.Theme(),
	}
}

// SetOverlay installs a debug overlay.
func (h *Host) SetOverlay(o Overlay) {
	h.overlay = o
}

func (h *Host) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		h.scene.Stop()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		h.toggleTheme()
	}

	if h.overlay != nil && h.overlay.WantCaptureMouse() {
		return nil
	}

	mx, my := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && mx >= 0 && my >= 0 && mx < h.width && my < h.height
	if inside && !h.pointerInside {
		h.scene.PointerEntered()
	}
	switch {
	case inside && (!h.pointerInside || mx != h.pointerX || my != h.pointerY):
		h.scene.PointerMoved(float64(mx), float64(my))
	case !inside && h.pointerInside:
		h.scene.PointerLeft()
	}
	h.pointerX, h.pointerY, h.pointerInside = mx, my, inside

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if pressed != h.pressed {
		h.scene.PointerButton(pressed)
		h.pressed = pressed
	}
	return nil
}

func (h *Host) toggleTheme() {
	next := particle.ThemeLight
	if h.theme == particle.ThemeLight {
		next = particle.ThemeDark
	}
	h.theme = next
	h.surface.Background = ThemeBackground(next)
	h.scene.SetTheme(next)
	h.log.Debug("theme toggled", zap.String("theme", string(next)))
}

func (h *Host) Draw(screen *ebiten.Image) {
	now := time.Now()
	dt := 0.0
	if !h.lastDraw.IsZero() {
		dt = now.Sub(h.lastDraw).Seconds()
	}
	h.lastDraw = now

	if h.overlay != nil {
		h.overlay.BeginFrame()
	}

	h.surface.SetTarget(screen)
	h.scene.Once(dt)
	h.surface.SetTarget(nil)

	if h.overlay != nil {
		h.overlay.EndFrame()
		h.overlay.Draw(screen)
	}
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		h.width, h.height = outsideWidth, outsideHeight
		h.scene.Resized(outsideWidth, outsideHeight)
		h.log.Debug("viewport resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
	}
	if h.overlay != nil {
		h.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// WindowOptions configures the window opened by Run.
type WindowOptions struct {
	Title         string
	Width, Height int
	// HideCursor hides the system pointer while the custom cursor is drawn.
	HideCursor bool
	FPS        int
}

// Run opens the window and blocks until it is closed.
func Run(h *Host, opts WindowOptions) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.HideCursor {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	if opts.FPS > 0 {
		ebiten.SetTPS(opts.FPS)
	}

	err := ebiten.RunGame(h)
	h.scene.Stop()
	return err
}
