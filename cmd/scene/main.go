package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"steer-scene/internal/config"
	"steer-scene/internal/input"
	"steer-scene/internal/logger"
	"steer-scene/internal/metrics"
	"steer-scene/internal/render"
	"steer-scene/internal/scene"
	"steer-scene/internal/sim"
)

func init() {
	// raylib (OpenGL) must be driven from the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "scene config file (YAML)")
	dotenv := flag.String("env", ".env", "dotenv file loaded before reading the config")
	variant := flag.String("variant", "", "override the config variant (arrive, follow_path)")
	flag.Parse()

	if err := run(*dotenv, *configPath, *variant); err != nil {
		fmt.Fprintln(os.Stderr, "scene:", err)
		os.Exit(1)
	}
}

func run(dotenv, configPath, variant string) error {
	cfg, err := config.Resolve(dotenv, configPath)
	if err != nil {
		return err
	}
	if variant != "" {
		cfg.Variant = variant
	}

	log := logger.New(cfg.Log.Path, logger.ParseLevel(cfg.Log.Level))
	s, err := scene.Build(cfg)
	if err != nil {
		log.Errorf("config: %v", err)
		return err
	}
	log.Infof("scene: %s variant, vehicle at (%.2f, %.2f, %.2f)", cfg.Variant,
		s.Vehicle.Position.X(), s.Vehicle.Position.Y(), s.Vehicle.Position.Z())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Addr != "" {
		m = metrics.New()
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr, log); err != nil {
				log.Errorf("metrics: %v", err)
			}
		}()
	}

	queue := input.NewQueue()
	win := render.Open(cfg.Window, s.Background, queue)
	defer win.Close()

	loop := sim.NewLoop(s, sim.Options{
		Queue:    queue,
		Renderer: win,
		Log:      log,
		Metrics:  m,
	})
	return loop.Run(ctx, 0)
}
