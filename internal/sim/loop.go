// Package sim runs the frame loop: input, clock, tweens, entities, bobbing, render, metrics, in that order.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/chewxy/math32"

	"steer-scene/internal/camera"
	"steer-scene/internal/input"
	"steer-scene/internal/logger"
	"steer-scene/internal/metrics"
	"steer-scene/internal/scene"
	"steer-scene/internal/selection"
)

// Options are the loop's collaborators. Nil fields get defaults: a new queue, a headless renderer,
// the system clock, a discarding logger, and no metrics.
type Options struct {
	Queue    *input.Queue
	Renderer Renderer
	Time     TimeSource
	Log      *logger.Logger
	Metrics  *metrics.Metrics
}

// Loop owns the context and steps the scene once per Tick.
type Loop struct {
	ctx      *Context
	queue    *input.Queue
	dispatch *input.Dispatcher
	clock    *Clock
	renderer Renderer
	metrics  *metrics.Metrics
	log      *logger.Logger
}

func NewLoop(s *scene.Scene, opts Options) *Loop {
	if opts.Queue == nil {
		opts.Queue = input.NewQueue()
	}
	if opts.Renderer == nil {
		opts.Renderer = &HeadlessRenderer{}
	}
	if opts.Log == nil {
		opts.Log = logger.Discard()
	}
	l := &Loop{
		ctx: &Context{
			Scene:  s,
			Log:    opts.Log,
			Width:  s.Config.Window.Width,
			Height: s.Config.Window.Height,
		},
		queue:    opts.Queue,
		dispatch: input.NewDispatcher(),
		clock:    NewClock(opts.Time, s.Config.Loop.MaxDelta),
		renderer: opts.Renderer,
		metrics:  opts.Metrics,
		log:      opts.Log,
	}
	l.dispatch.Register(input.KindPointerMove, l.onPointerMove)
	l.dispatch.Register(input.KindClick, l.onClick)
	l.dispatch.Register(input.KindResize, l.onResize)

	s.Pan.OnStateChange = func(st camera.State) {
		l.log.Debugf("camera: pan %s", st)
		if l.metrics != nil {
			l.metrics.SetPanning(st == camera.Panning)
		}
	}
	if l.metrics != nil {
		l.metrics.SetEntities(s.Entities.Len())
	}
	return l
}

func (l *Loop) Context() *Context   { return l.ctx }
func (l *Loop) Queue() *input.Queue { return l.queue }
func (l *Loop) Clock() *Clock       { return l.clock }

// Tick runs one frame. Only renderer errors are returned; input errors are logged.
func (l *Loop) Tick() error {
	start := time.Now()
	s := l.ctx.Scene

	for _, cmd := range l.queue.Drain() {
		if err := l.dispatch.Dispatch(cmd); err != nil {
			l.log.Warnf("input: %v", err)
		}
	}

	l.ctx.Delta, l.ctx.Elapsed = l.clock.Update()
	s.Tweens.Advance(l.ctx.Elapsed)
	s.Entities.Update(l.ctx.Delta)

	if b := s.Config.Bobbing; b.Enabled && b.PeriodMs > 0 {
		s.VehicleProxy.Offset[1] = b.Amplitude * math32.Sin(bobPhase(l.ctx.Elapsed, b.PeriodMs))
	}

	if err := l.renderer.Render(l.ctx); err != nil {
		return fmt.Errorf("render frame %d: %w", l.ctx.Frame, err)
	}
	l.ctx.Frame++

	if l.metrics != nil {
		l.metrics.ObserveTick(time.Since(start))
	}
	return nil
}

// Run ticks until ctx is cancelled, the renderer asks to close, or frames ticks have run (0 = no limit).
// A cancelled context is not an error.
func (l *Loop) Run(ctx context.Context, frames int) error {
	l.log.Infof("loop: start (%s, %dx%d)", l.ctx.Scene.Config.Variant, l.ctx.Width, l.ctx.Height)
	defer func() { l.log.Infof("loop: stop after %d frames", l.ctx.Frame) }()
	for n := 0; frames == 0 || n < frames; n++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if l.renderer.ShouldClose() {
			return nil
		}
		if err := l.Tick(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) onPointerMove(cmd input.Command) error {
	m := cmd.(input.PointerMove)
	l.ctx.PointerPx[0], l.ctx.PointerPx[1] = m.X, m.Y
	l.ctx.Pointer = camera.PointerToNDC(m.X, m.Y, float32(l.ctx.Width), float32(l.ctx.Height))
	return nil
}

// onClick moves the target (arrive variant) and then gives the pan controller a chance at the same click.
func (l *Loop) onClick(cmd input.Command) error {
	c := cmd.(input.Click)
	s := l.ctx.Scene
	w, h := float32(l.ctx.Width), float32(l.ctx.Height)
	ndc := camera.PointerToNDC(c.X, c.Y, w, h)
	l.ctx.PointerPx[0], l.ctx.PointerPx[1] = c.X, c.Y
	l.ctx.Pointer = ndc

	if s.Selector != nil {
		pos, err := s.Selector.Select(ndc)
		l.ctx.LastClickErr = err
		switch {
		case err == nil:
			l.log.Infof("target: moved to (%.2f, %.2f, %.2f)", pos.X(), pos.Y(), pos.Z())
			l.countClick(metrics.ClickAccepted)
		case errors.Is(err, selection.ErrOutOfRange):
			l.log.Debugf("target: %v", err)
			l.countClick(metrics.ClickOutOfRange)
		case errors.Is(err, selection.ErrNoGroundHit):
			l.log.Debugf("target: %v", err)
			l.countClick(metrics.ClickNoHit)
		default:
			return err
		}
	}

	if dir := s.Pan.HandleClick(c.X, w); dir != camera.None {
		end, _ := s.Pan.Target()
		l.log.Infof("camera: pan %s to x=%.2f", dir, end)
		if l.metrics != nil {
			l.metrics.Pan(dir.String())
		}
	}
	return nil
}

func (l *Loop) onResize(cmd input.Command) error {
	r := cmd.(input.Resize)
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("resize to %dx%d ignored", r.Width, r.Height)
	}
	l.ctx.Width, l.ctx.Height = r.Width, r.Height
	l.ctx.Scene.Camera.SetAspect(float32(r.Width) / float32(r.Height))
	l.renderer.Resize(r.Width, r.Height)
	l.log.Debugf("viewport: %dx%d", r.Width, r.Height)
	return nil
}

func (l *Loop) countClick(result string) {
	if l.metrics != nil {
		l.metrics.Click(result)
	}
}

// bobPhase is elapsed*1000/periodMs reduced to [0, 2π) in float64 before narrowing.
func bobPhase(elapsed float64, periodMs float32) float32 {
	return float32(math.Mod(elapsed*1000/float64(periodMs), 2*math.Pi))
}
