package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/backdrop/config"
	"github.com/plus3/backdrop/particle"
	"github.com/plus3/backdrop/scene"
)

var (
	configPath  string
	count       int
	maxDistance float64
	themeName   string
	noConnect   bool
	seed        uint64
	verbose     bool
	debug       bool
	fps         int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "backdrop",
	Short: "Animated particle background with a cursor follower",
	Long: `backdrop animates a field of drifting particles joined by proximity
lines. Particles bounce off the viewport edges and are pushed away by the
pointer. It renders into a desktop window or a terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML configuration file, reloaded on change")
	flags.IntVarP(&count, "count", "n", particle.DefaultCount, "number of particles")
	flags.Float64Var(&maxDistance, "max-distance", particle.DefaultMaxDistance, "maximum distance for a connecting line")
	flags.StringVar(&themeName, "theme", string(particle.ThemeDark), "color theme (dark or light)")
	flags.BoolVar(&noConnect, "no-connect", false, "do not draw connecting lines")
	flags.Uint64Var(&seed, "seed", 0, "random seed; 0 picks one")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&debug, "debug", false, "show the debug overlay (window only)")
	flags.IntVar(&fps, "fps", 60, "frames per second")

	rootCmd.AddCommand(windowCmd, termCmd, benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadFile reads --config, or returns an empty File when none was given.
func loadFile() (config.File, error) {
	if configPath == "" {
		return config.File{}, nil
	}
	return config.Load(configPath)
}

// sceneConfig merges the config file with the flags that were set explicitly.
func sceneConfig(cmd *cobra.Command, f config.File) (scene.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("theme") {
		f.Theme = themeName
	}
	cfg, err := f.SceneConfig()
	if err != nil {
		return scene.Config{}, err
	}
	cfg.Particles = applyParticleFlags(cmd, cfg.Particles)
	if err := cfg.Particles.Validate(); err != nil {
		return scene.Config{}, err
	}
	return cfg, nil
}

func applyParticleFlags(cmd *cobra.Command, cfg particle.Config) particle.Config {
	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Count = count
	}
	if flags.Changed("max-distance") {
		cfg.MaxDistance = maxDistance
	}
	if noConnect {
		cfg.Connect = false
	}
	return cfg.Normalize()
}

// frameRate prefers --fps when set, then the file, then the flag default.
func frameRate(cmd *cobra.Command, f config.File) int {
	if !cmd.Flags().Changed("fps") && f.FPS > 0 {
		return f.FPS
	}
	if fps <= 0 {
		return 60
	}
	return fps
}

func sceneOptions(cmd *cobra.Command, f config.File) []scene.Option {
	opts := []scene.Option{scene.WithLogger(logger)}
	if rng := random(cmd, f); rng != nil {
		opts = append(opts, scene.WithRand(rng))
	}
	return opts
}

func random(cmd *cobra.Command, f config.File) *rand.Rand {
	if cmd.Flags().Changed("seed") && seed != 0 {
		return particle.NewRand(seed)
	}
	if s, ok := f.Seed(); ok {
		return particle.NewRand(s)
	}
	return nil
}

// reloadHandler applies a changed config file to a running scene. The theme
// stays the one the scene shows, set by --theme or toggled at runtime.
func reloadHandler(cmd *cobra.Command, sc *scene.Scene) func(config.File) {
	return func(f config.File) {
		pcfg, err := f.ReloadParticleConfig()
		if err != nil {
			logger.Warn("ignoring invalid config", zap.Error(err))
			return
		}
		pcfg = applyParticleFlags(cmd, pcfg)
		logger.Info("config reloaded", zap.Int("count", pcfg.Count), zap.Float64("max_distance", pcfg.MaxDistance))
		sc.Reconfigure(pcfg)
	}
}
