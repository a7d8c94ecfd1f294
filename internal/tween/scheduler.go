// Package tween runs time-bounded interpolations of float32 fields, advanced once per frame.
package tween

// Tween interpolates *target from its value at creation to an end value over Duration seconds.
type Tween struct {
	target     *float32
	from, to   float32
	start      float64
	duration   float32
	ease       Ease
	relative   bool
	onUpdate   func()
	onComplete func()
	progress   float32
	done       bool
	killed     bool
}

// Option configures a tween at creation.
type Option func(*Tween)

// WithEase sets the easing curve (default power1.out).
func WithEase(e Ease) Option {
	return func(t *Tween) {
		if e != nil {
			t.ease = e
		}
	}
}

// Relative makes the end value an increment on the start value.
func Relative() Option {
	return func(t *Tween) { t.relative = true }
}

// OnUpdate runs after every value write, including the final one.
func OnUpdate(fn func()) Option {
	return func(t *Tween) { t.onUpdate = fn }
}

// OnComplete runs once when the tween reaches its end value. It does not run for killed tweens.
func OnComplete(fn func()) Option {
	return func(t *Tween) { t.onComplete = fn }
}

func (t *Tween) Done() bool        { return t.done }
func (t *Tween) Killed() bool      { return t.killed }
func (t *Tween) Progress() float32 { return t.progress }
func (t *Tween) End() float32      { return t.to }

// Kill stops the tween where it is. The target keeps its current value.
func (t *Tween) Kill() { t.killed = true }

func (t *Tween) apply(now float64) {
	p := float32(1)
	if t.duration > 0 {
		p = float32((now - t.start) / float64(t.duration))
	}
	if p < 0 {
		p = 0
	}
	if p >= 1 {
		p = 1
	}
	t.progress = p
	if p == 1 {
		*t.target = t.to
	} else {
		*t.target = t.from + (t.to-t.from)*t.ease(p)
	}
	if t.onUpdate != nil {
		t.onUpdate()
	}
	if p == 1 {
		t.done = true
		if t.onComplete != nil {
			t.onComplete()
		}
	}
}

// Scheduler holds the active tweens. Time is whatever monotonic seconds value the caller passes to Advance;
// it is float64 so long runs keep frame resolution. A new tween on a field replaces any in-flight tween on
// the same field.
type Scheduler struct {
	now    float64
	active []*Tween
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// To starts a tween of *target toward end over duration seconds, beginning at the scheduler's current time
// from the field's current value. A non-positive duration applies end immediately.
func (s *Scheduler) To(target *float32, end, duration float32, opts ...Option) *Tween {
	t := &Tween{
		target:   target,
		from:     *target,
		to:       end,
		start:    s.now,
		duration: duration,
		ease:     Power1Out,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.relative {
		t.to = t.from + end
	}
	for _, other := range s.active {
		if other.target == target && !other.done {
			other.killed = true
		}
	}
	if duration <= 0 {
		t.apply(s.now)
		return t
	}
	s.active = append(s.active, t)
	return t
}

// Advance moves the clock to now, writes interpolated values and retires finished or killed tweens.
// Tweens started from callbacks during Advance are stepped in the same call.
func (s *Scheduler) Advance(now float64) {
	s.now = now
	for i := 0; i < len(s.active); i++ {
		t := s.active[i]
		if t.killed || t.done {
			continue
		}
		t.apply(now)
	}
	kept := s.active[:0]
	for _, t := range s.active {
		if !t.killed && !t.done {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = kept
}

// Now returns the time passed to the last Advance.
func (s *Scheduler) Now() float64 { return s.now }

// Active returns the number of in-flight tweens.
func (s *Scheduler) Active() int {
	n := 0
	for _, t := range s.active {
		if !t.killed && !t.done {
			n++
		}
	}
	return n
}

// IsTweening reports whether target has an in-flight tween.
func (s *Scheduler) IsTweening(target *float32) bool {
	for _, t := range s.active {
		if t.target == target && !t.killed && !t.done {
			return true
		}
	}
	return false
}
