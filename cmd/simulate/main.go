// cmd/simulate/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-rigid/pkg/config"
	"github.com/opd-ai/go-rigid/pkg/logging"
	"github.com/opd-ai/go-rigid/pkg/render"
	"github.com/opd-ai/go-rigid/pkg/world"
)

func main() {
	configPath := flag.String("config", "simulation.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	steps := flag.Int("steps", 0, "Override the number of steps")
	renderFrames := flag.Bool("render", false, "Draw frames to the terminal")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := logging.WithRunID(context.Background(), "")

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	// Load configuration
	var simConfig *config.SimulationConfig

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", *configPath,
		)
		simConfig = config.DefaultConfig()
	} else {
		simConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}

	// Apply environment variable overrides, then command line flags
	if err := applyOverrides(simConfig, *steps, *renderFrames); err != nil {
		logger.Error(ctx, "Failed to apply configuration overrides", err)
		os.Exit(1)
	}

	// The config may name its own log settings
	logger = logging.NewLoggerWithOptions(logging.Options{
		Level:  simConfig.Log.Level,
		Format: simConfig.Log.Format,
	})

	sim, err := world.NewSimulation(simConfig, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create simulation", err)
		os.Exit(1)
	}

	var renderer render.Renderer
	if simConfig.Render.Enabled {
		tr := render.NewTerminalRenderer(os.Stdout, simConfig.Render.Width, simConfig.Render.Height, simConfig.Render.Scale)
		tr.SetClearScreen(true)
		renderer = tr
	} else if logging.ParseLevel(simConfig.Log.Level) == slog.LevelDebug {
		renderer = render.NewLogRenderer(ctx, logger)
	}

	// Stop early on SIGINT or SIGTERM
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sim.Run(runCtx, renderer, simConfig.Render.Every); err != nil {
		logger.Error(ctx, "Simulation interrupted", err,
			"tick", sim.System.Tick(),
		)
		os.Exit(1)
	}

	logger.Info(ctx, "Simulation finished",
		"ticks", sim.System.Tick(),
		"elapsed", sim.System.Elapsed(),
		"kinetic_energy", sim.System.KineticEnergy(),
	)
}

// applyOverrides layers RIGID_* environment variables over the loaded config
// and the command line over both.
func applyOverrides(simConfig *config.SimulationConfig, steps int, renderFrames bool) error {
	if err := config.ApplyEnvironmentOverrides(simConfig); err != nil {
		return err
	}
	if steps > 0 {
		simConfig.Steps = steps
	}
	if renderFrames {
		simConfig.Render.Enabled = true
	}
	return simConfig.Validate()
}
