package camera

import (
	"steer-scene/internal/tween"
)

// State is the pan controller's state. It is Panning while a pan tween is in flight.
type State int

const (
	Idle State = iota
	Panning
)

func (s State) String() string {
	if s == Panning {
		return "panning"
	}
	return "idle"
}

// Direction is the outcome of a click for the pan controller.
type Direction int

const (
	None Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// PanSettings configures edge-band pans. EdgeFraction is the share of the viewport width on each side
// that triggers a pan; Shift is the distance moved along X.
type PanSettings struct {
	Enabled          bool
	EdgeFraction     float32
	Shift            float32
	ForwardDuration  float32
	BackwardDuration float32
	Ease             tween.Ease
}

// PanController moves the camera along X when a click lands near the left or right edge of the viewport.
// The move is a tween: it does not block the frame loop and a new pan replaces an in-flight one.
type PanController struct {
	cam      *Camera
	tweens   *tween.Scheduler
	settings PanSettings
	state    State
	active   *tween.Tween
	// OnStateChange, if set, is called on every Idle/Panning transition.
	OnStateChange func(State)
}

// NewPanController returns a controller in the Idle state.
func NewPanController(cam *Camera, tweens *tween.Scheduler, settings PanSettings) *PanController {
	if settings.Ease == nil {
		settings.Ease = tween.Power1Out
	}
	return &PanController{cam: cam, tweens: tweens, settings: settings}
}

// Classify reports which band, if any, pointerX falls in for a viewport of the given width.
func (p *PanController) Classify(pointerX, viewportWidth float32) Direction {
	if !p.settings.Enabled || viewportWidth <= 0 {
		return None
	}
	edge := viewportWidth * p.settings.EdgeFraction
	switch {
	case pointerX >= viewportWidth-edge:
		return Forward
	case pointerX <= edge:
		return Backward
	default:
		return None
	}
}

// HandleClick starts a pan when pointerX lies in an edge band. The pan ends at the camera's X at the time
// of the click plus (forward) or minus (backward) Shift. Returns the direction taken.
func (p *PanController) HandleClick(pointerX, viewportWidth float32) Direction {
	dir := p.Classify(pointerX, viewportWidth)
	var end, duration float32
	switch dir {
	case Forward:
		end = p.cam.Position[0] + p.settings.Shift
		duration = p.settings.ForwardDuration
	case Backward:
		end = p.cam.Position[0] - p.settings.Shift
		duration = p.settings.BackwardDuration
	default:
		return None
	}

	p.setState(Panning)
	p.active = p.tweens.To(&p.cam.Position[0], end, duration,
		tween.WithEase(p.settings.Ease),
		tween.OnUpdate(p.cam.UpdateProjectionMatrix),
		tween.OnComplete(func() {
			p.cam.UpdateProjectionMatrix()
			p.active = nil
			p.setState(Idle)
		}),
	)
	if p.active.Done() {
		p.active = nil
	}
	p.cam.UpdateProjectionMatrix()
	return dir
}

// State returns Panning while a pan is in flight, Idle otherwise.
func (p *PanController) State() State {
	return p.state
}

// Target returns the X value the in-flight pan is heading to, and false when idle.
func (p *PanController) Target() (float32, bool) {
	if p.active == nil {
		return 0, false
	}
	return p.active.End(), true
}

func (p *PanController) setState(s State) {
	if p.state == s {
		return
	}
	p.state = s
	if p.OnStateChange != nil {
		p.OnStateChange(s)
	}
}
