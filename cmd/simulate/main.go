package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"steer-scene/internal/config"
	"steer-scene/internal/input"
	"steer-scene/internal/logger"
	"steer-scene/internal/metrics"
	"steer-scene/internal/scene"
	"steer-scene/internal/sim"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "scene config file (YAML)")
	dotenv := flag.String("env", ".env", "dotenv file loaded before reading the config")
	variant := flag.String("variant", "", "override the config variant (arrive, follow_path)")
	ticks := flag.Int("ticks", 600, "number of ticks to run")
	fps := flag.Int("fps", 60, "simulated frame rate")
	script := flag.String("script", "", "input script: one \"<tick> <click|move|resize> <a> <b>\" per line")
	every := flag.Int("every", 60, "log positions every N ticks (0 = only at the end)")
	flag.Parse()

	opts := options{ticks: *ticks, fps: *fps, every: *every, script: *script}
	if err := run(*dotenv, *configPath, *variant, opts); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

type options struct {
	ticks  int
	fps    int
	every  int
	script string
}

func run(dotenv, configPath, variant string, opts options) error {
	if opts.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", opts.fps)
	}
	cfg, err := config.Resolve(dotenv, configPath)
	if err != nil {
		return err
	}
	if variant != "" {
		cfg.Variant = variant
	}
	log := logger.New(cfg.Log.Path, logger.ParseLevel(cfg.Log.Level))

	var scheduled []input.Scheduled
	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			return err
		}
		scheduled, err = input.ParseScript(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", opts.script, err)
		}
	}

	s, err := scene.Build(cfg)
	if err != nil {
		log.Errorf("config: %v", err)
		return err
	}

	clock := sim.NewMockTime(time.Unix(0, 0))
	frame := time.Second / time.Duration(opts.fps)
	queue := input.NewQueue()
	next := 0
	renderer := &sim.HeadlessRenderer{
		MaxFrames: opts.ticks,
		OnRender: func(ctx *sim.Context) error {
			clock.Advance(frame)
			tick := int(ctx.Frame) + 1
			for next < len(scheduled) && scheduled[next].Tick <= tick {
				queue.Push(scheduled[next].Command)
				next++
			}
			if opts.every > 0 && int(ctx.Frame)%opts.every == 0 {
				logPositions(log, ctx)
			}
			return nil
		},
	}
	// commands scheduled for tick 0 go in before the first tick
	for next < len(scheduled) && scheduled[next].Tick == 0 {
		queue.Push(scheduled[next].Command)
		next++
	}

	loop := sim.NewLoop(s, sim.Options{
		Queue:    queue,
		Renderer: renderer,
		Time:     clock,
		Log:      log,
		Metrics:  metrics.New(),
	})
	if err := loop.Run(context.Background(), opts.ticks); err != nil {
		return err
	}
	logPositions(log, loop.Context())
	return nil
}

func logPositions(log *logger.Logger, ctx *sim.Context) {
	s := ctx.Scene
	v := s.Vehicle.Position
	line := fmt.Sprintf("t=%.3fs frame=%d vehicle=(%.3f, %.3f, %.3f) speed=%.3f camera.x=%.3f",
		ctx.Elapsed, ctx.Frame, v.X(), v.Y(), v.Z(), s.Vehicle.Speed(), s.Camera.Position.X())
	if s.Target != nil {
		t := s.Target.Position
		line += fmt.Sprintf(" target=(%.3f, %.3f, %.3f)", t.X(), t.Y(), t.Z())
	}
	if s.Path != nil {
		line += fmt.Sprintf(" waypoint=%d", s.Path.Index())
	}
	log.Infof("%s", line)
}
