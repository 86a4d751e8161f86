package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plus3/backdrop/particle"
	"github.com/plus3/backdrop/render/recorder"
	"github.com/plus3/backdrop/scene"
)

var (
	benchDuration       time.Duration
	benchWidth          int
	benchHeight         int
	benchGCPauseMetrics bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Step the field headless and report frame timings",
	Long: `bench runs the particle field against a recording surface as fast as it
can for a fixed duration. The pairwise connect pass dominates the frame time
and grows with the square of --count.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().DurationVar(&benchDuration, "duration", 10*time.Second, "how long to run")
	benchCmd.Flags().IntVar(&benchWidth, "width", 1920, "viewport width")
	benchCmd.Flags().IntVar(&benchHeight, "height", 1080, "viewport height")
	benchCmd.Flags().BoolVar(&benchGCPauseMetrics, "gc-pause-metrics", false, "include GC pause metrics in the report")
}

func runBench(cmd *cobra.Command, args []string) error {
	f, err := loadFile()
	if err != nil {
		return err
	}
	cfg, err := sceneConfig(cmd, f)
	if err != nil {
		return err
	}
	cfg.ShowCursor = false
	cfg.Viewport = particle.Viewport{Width: float64(benchWidth), Height: float64(benchHeight)}

	rec := recorder.New()
	rec.Discard = true
	sc, err := scene.New(cfg, rec, sceneOptions(cmd, f)...)
	if err != nil {
		return err
	}
	defer sc.Stop()

	report := &Report{
		Duration:       benchDuration,
		Particles:      cfg.Particles.Count,
		MaxDistance:    cfg.Particles.MaxDistance,
		Connect:        cfg.Particles.Connect,
		Width:          benchWidth,
		Height:         benchHeight,
		GCPauseMetrics: benchGCPauseMetrics,
	}
	// The field holds the pointer at its centre so repulsion is exercised.
	sc.PointerMoved(float64(benchWidth)/2, float64(benchHeight)/2)

	runtime.ReadMemStats(&report.MemStatsStart)
	logger.Info("running bench", zap.Duration("duration", benchDuration), zap.Int("particles", report.Particles))

	ctx, cancel := context.WithTimeout(cmd.Context(), benchDuration)
	defer cancel()
	runBenchLoop(ctx, sc, report)

	report.Draws = rec.Total()
	report.Lines = rec.Count(recorder.KindStrokeLine)
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Fprintln(os.Stdout, "--- Backdrop Bench Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	return nil
}

func runBenchLoop(ctx context.Context, sc *scene.Scene, report *Report) {
	start := time.Now()
	last := start

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			dt := time.Since(last)
			last = time.Now()

			frameStart := time.Now()
			sc.Once(dt.Seconds())
			report.FrameTime.Add(time.Since(frameStart))
			report.TotalFrames++
		}
	}

	report.TotalTime = time.Since(start)
	report.Edges = sc.Field().Stats().Edges
}
