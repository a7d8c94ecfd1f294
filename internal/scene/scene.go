// Package scene builds the runtime scene from a config: camera, lights, pick surfaces, entities with
// their visual proxies, and the steering and interaction controllers wired to them.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"

	"steer-scene/internal/agent"
	"steer-scene/internal/camera"
	"steer-scene/internal/config"
	"steer-scene/internal/geom"
	"steer-scene/internal/selection"
	"steer-scene/internal/steering"
	"steer-scene/internal/tween"
)

// LightKind distinguishes the two light types the scene uses.
type LightKind int

const (
	AmbientLight LightKind = iota
	DirectionalLight
)

type Light struct {
	Kind      LightKind
	Color     [4]uint8
	Intensity float32
	Position  mgl32.Vec3
}

// Decor is a static sphere that can be hit by picks but never becomes a target.
type Decor struct {
	Name   string
	Center mgl32.Vec3
	Radius float32
	Color  [4]uint8
}

// PathLine is the drawn outline of a path.
type PathLine struct {
	Points []mgl32.Vec3
	Loop   bool
	Color  [4]uint8
}

// Scene is everything the frame loop and renderer operate on. Target, TargetProxy and Selector are nil in
// the follow-path variant; Path and PathLine are nil in the arrive variant.
type Scene struct {
	Config     config.Config
	Background [4]uint8

	Camera *camera.Camera
	Lights []Light
	Ground *geom.Plane
	Decor  []*Decor

	Entities     *agent.Manager
	Vehicle      *agent.Vehicle
	VehicleProxy *Proxy
	Target       *agent.Entity
	TargetProxy  *Proxy
	Steering     *steering.Manager
	Path         *steering.Path
	PathLine     *PathLine

	Tweens   *tween.Scheduler
	Pan      *camera.PanController
	Selector *selection.Selector

	pickables []geom.Pickable
}

func vec(a [3]float32) mgl32.Vec3 { return mgl32.Vec3(a) }

func colors(named map[string]string) (map[string][4]uint8, error) {
	out := make(map[string][4]uint8, len(named))
	for k, v := range named {
		c, err := config.ParseHexColor(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = c
	}
	return out, nil
}

// Build validates cfg and assembles the scene for its variant.
func Build(cfg config.Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	col, err := colors(map[string]string{
		"background":  cfg.Window.Background,
		"agent":       cfg.Agent.Color,
		"target":      cfg.Arrive.TargetColor,
		"path":        cfg.Path.Color,
		"ambient":     cfg.Lights.AmbientColor,
		"directional": cfg.Lights.DirectionalColor,
	})
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Config:     cfg,
		Background: col["background"],
		Entities:   agent.NewManager(),
		Tweens:     tween.NewScheduler(),
		Steering:   steering.NewManager(),
	}

	c := cfg.Camera
	aspect := float32(cfg.Window.Width) / float32(cfg.Window.Height)
	s.Camera = camera.New(vec(c.Position), vec(c.LookAt), vec(c.Up), c.Fov, aspect, c.Near, c.Far)

	s.Lights = []Light{
		{Kind: AmbientLight, Color: col["ambient"], Intensity: cfg.Lights.AmbientIntensity},
		{Kind: DirectionalLight, Color: col["directional"], Intensity: cfg.Lights.DirectionalIntensity, Position: vec(cfg.Lights.DirectionalPosition)},
	}

	s.Ground = &geom.Plane{Label: cfg.Ground.Name, Y: cfg.Ground.Y, Size: cfg.Ground.Size}
	s.pickables = append(s.pickables, s.Ground)
	for _, d := range cfg.Decor {
		dc, err := config.ParseHexColor(d.Color)
		if err != nil {
			return nil, fmt.Errorf("decor %s: %w", d.Name, err)
		}
		decor := &Decor{Name: d.Name, Center: vec(d.Position), Radius: d.Radius, Color: dc}
		s.Decor = append(s.Decor, decor)
		s.pickables = append(s.pickables, &geom.Sphere{Label: decor.Name, Center: &decor.Center, Radius: decor.Radius})
	}

	v, err := newVehicle(cfg.Agent)
	if err != nil {
		return nil, err
	}
	v.Steering = s.Steering
	s.Vehicle = v
	s.VehicleProxy = NewProxy(cfg.Agent.Name, MeshKind(cfg.Agent.Mesh), cfg.Agent.MeshSize, col["agent"])
	v.SetRenderComponent(s.VehicleProxy, agent.CopyWorldMatrix)
	s.pickables = append(s.pickables, bounds(&v.Entity, s.VehicleProxy))

	switch cfg.Variant {
	case config.VariantArrive:
		s.buildArrive(col["target"])
	case config.VariantFollowPath:
		s.buildFollowPath(col["path"])
	}
	s.Entities.Add(s.Vehicle)

	ease, ok := tween.ByName(cfg.Pan.Ease)
	if !ok {
		return nil, fmt.Errorf("%w: unknown pan ease %q", config.ErrInvalid, cfg.Pan.Ease)
	}
	s.Pan = camera.NewPanController(s.Camera, s.Tweens, camera.PanSettings{
		Enabled:          cfg.Pan.Enabled,
		EdgeFraction:     cfg.Pan.EdgeFraction,
		Shift:            cfg.Pan.Shift,
		ForwardDuration:  cfg.Pan.ForwardDuration,
		BackwardDuration: cfg.Pan.BackwardDuration,
		Ease:             ease,
	})

	// first sync so proxies are placed before the first tick
	s.Entities.Update(0)
	return s, nil
}

// newVehicle creates the vehicle and copies its kinematic limits from the agent config.
func newVehicle(ac config.AgentConfig) (*agent.Vehicle, error) {
	v := agent.NewVehicle(ac.Name, 0, 0, 1)
	if err := copier.Copy(v, &ac); err != nil {
		return nil, fmt.Errorf("copy agent config: %w", err)
	}
	v.Name = ac.Name
	v.Position = vec(ac.Position)
	v.Scale = vec(ac.Scale)
	return v, nil
}

func (s *Scene) buildArrive(targetColor [4]uint8) {
	cfg := s.Config
	s.Target = agent.NewEntity("target")
	s.Target.Position = vec(cfg.Arrive.Target)
	s.TargetProxy = NewProxy("target", MeshKind(cfg.Arrive.TargetMesh), cfg.Arrive.TargetSize, targetColor)
	s.Target.SetRenderComponent(s.TargetProxy, agent.CopyWorldMatrix)
	s.Entities.Add(s.Target)

	s.Steering.Add(steering.NewArrive(&s.Target.Position, cfg.Arrive.Deceleration, cfg.Arrive.Tolerance))

	s.Selector = selection.New(s.Camera, s.Target, selection.Settings{
		GroundName: cfg.Ground.Name,
		GroundY:    cfg.Ground.Y,
		MinX:       cfg.Selection.MinX,
		MaxX:       cfg.Selection.MaxX,
	}, s.pickables...)

	tb := bounds(s.Target, s.TargetProxy)
	s.pickables = append(s.pickables, tb)
	s.Selector.Add(tb)
}

func (s *Scene) buildFollowPath(pathColor [4]uint8) {
	cfg := s.Config.Path
	wp := make([]mgl32.Vec3, len(cfg.Waypoints))
	for i, w := range cfg.Waypoints {
		wp[i] = vec(w)
	}
	s.Path = steering.NewPath(cfg.Loop, wp...)
	s.PathLine = &PathLine{Points: s.Path.Waypoints(), Loop: cfg.Loop, Color: pathColor}

	s.Vehicle.Position = s.Path.Current()
	s.Steering.Add(steering.NewFollowPath(s.Path, cfg.NextWaypointDistance))
	s.Steering.Add(steering.NewOnPath(s.Path, cfg.OnPathRadius, cfg.PredictionFactor))
}

// Proxies returns every visual proxy in draw order.
func (s *Scene) Proxies() []*Proxy {
	out := []*Proxy{s.VehicleProxy}
	if s.TargetProxy != nil {
		out = append(out, s.TargetProxy)
	}
	return out
}

// Pickables returns the ground plane, decor spheres and proxy bounds.
func (s *Scene) Pickables() []geom.Pickable { return s.pickables }
