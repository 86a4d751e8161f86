// Package debugui draws a Dear ImGui window with frame timings, per-system
// scheduler statistics and particle field counters on top of the scene.
package debugui

import (
	"fmt"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/backdrop/frame"
	"github.com/plus3/backdrop/particle"
)

// Backend adapts the cimgui-go Ebitengine backend to the window host's
// overlay hooks.
type Backend struct {
	backend *ebitenbackend.EbitenBackend
}

// NewBackend creates the ImGui context and the window it renders into.
func NewBackend(title string, width, height int) *Backend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Backend{backend: b}
}

func (b *Backend) BeginFrame() { b.backend.BeginFrame() }

func (b *Backend) EndFrame() { b.backend.EndFrame() }

func (b *Backend) Draw(screen *ebiten.Image) { b.backend.Draw(screen) }

func (b *Backend) Layout(width, height int) { b.backend.Layout(width, height) }

func (b *Backend) WantCaptureMouse() bool {
	return imgui.CurrentIO().WantCaptureMouse()
}

// StatsWindow is a frame system; it records the frame time and defers its
// ImGui calls until every other system of the frame has run.
type StatsWindow struct {
	Scheduler *frame.Scheduler
	Field     *particle.Field
	history   *FrameHistory
}

func NewStatsWindow(scheduler *frame.Scheduler, field *particle.Field, historyFrames int) *StatsWindow {
	return &StatsWindow{
		Scheduler: scheduler,
		Field:     field,
		history:   NewFrameHistory(historyFrames),
	}
}

func (w *StatsWindow) Execute(f *frame.Frame) {
	w.history.Add(f.DeltaTime)
	f.Commands.Defer(w.render)
}

func (w *StatsWindow) render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 320), imgui.CondOnce)

	if !imgui.BeginV("Backdrop", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := w.history.Average()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", float64(avg.Microseconds())/1000.0, w.history.FPS()))
	imgui.PlotLinesFloatPtr("##frametime", &w.history.Samples()[0], int32(len(w.history.Samples())))

	if w.Field != nil {
		stats := w.Field.Stats()
		viewport := w.Field.Viewport()
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Particles: %d", stats.Particles))
		imgui.Text(fmt.Sprintf("Edges: %d", stats.Edges))
		imgui.Text(fmt.Sprintf("Viewport: %.0fx%.0f", viewport.Width, viewport.Height))
		imgui.Text(fmt.Sprintf("Reseeds: %d", stats.Reseeds))
	}

	if w.Scheduler != nil && imgui.TreeNodeStr("Systems") {
		stats := w.Scheduler.GetStats()
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStats", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Name")
			imgui.TableSetupColumn("Avg (ms)")
			imgui.TableSetupColumn("Min (ms)")
			imgui.TableSetupColumn("Max (ms)")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.AvgDuration.Microseconds())/1000.0))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.MinDuration.Microseconds())/1000.0))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.MaxDuration.Microseconds())/1000.0))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
