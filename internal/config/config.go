package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the scene config file, relative to the process working directory.
const DefaultPath = "config/arrive.yaml"

// Scene variants. Each selects a different behavior set for the vehicle.
const (
	VariantArrive     = "arrive"
	VariantFollowPath = "follow_path"
)

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config is the full scene description: window, camera, lights, agents and interaction tuning.
// Values not present in the YAML file keep their Default() value.
type Config struct {
	Variant   string          `yaml:"variant"`
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Lights    LightsConfig    `yaml:"lights"`
	Ground    GroundConfig    `yaml:"ground"`
	Selection SelectionConfig `yaml:"selection"`
	Pan       PanConfig       `yaml:"pan"`
	Agent     AgentConfig     `yaml:"agent"`
	Arrive    ArriveConfig    `yaml:"arrive"`
	Path      PathConfig      `yaml:"path"`
	Bobbing   BobbingConfig   `yaml:"bobbing"`
	Loop      LoopConfig      `yaml:"loop"`
	Decor     []DecorConfig   `yaml:"decor"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Log       LogConfig       `yaml:"log"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	TargetFPS  int    `yaml:"target_fps"`
	Resizable  bool   `yaml:"resizable"`
	ShowHUD    bool   `yaml:"show_hud"`
	ShowGrid   bool   `yaml:"show_grid"`
	Background string `yaml:"background"`
}

// CameraConfig describes a perspective camera. LookAt is only used once to fix the view direction;
// pans move Position and keep that direction.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	LookAt   [3]float32 `yaml:"look_at"`
	Up       [3]float32 `yaml:"up"`
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

type LightsConfig struct {
	AmbientColor         string     `yaml:"ambient_color"`
	AmbientIntensity     float32    `yaml:"ambient_intensity"`
	DirectionalColor     string     `yaml:"directional_color"`
	DirectionalIntensity float32    `yaml:"directional_intensity"`
	DirectionalPosition  [3]float32 `yaml:"directional_position"`
}

// GroundConfig is the invisible pick surface. Only hits on an object with this name can move the target.
type GroundConfig struct {
	Name string  `yaml:"name"`
	Size float32 `yaml:"size"`
	Y    float32 `yaml:"y"`
}

// SelectionConfig bounds the horizontal coordinate of accepted clicks.
type SelectionConfig struct {
	MinX float32 `yaml:"min_x"`
	MaxX float32 `yaml:"max_x"`
}

// PanConfig tunes the edge-band camera pan. EdgeFraction is the share of the viewport width, on each side,
// that triggers a pan.
type PanConfig struct {
	Enabled          bool    `yaml:"enabled"`
	EdgeFraction     float32 `yaml:"edge_fraction"`
	Shift            float32 `yaml:"shift"`
	ForwardDuration  float32 `yaml:"forward_duration"`
	BackwardDuration float32 `yaml:"backward_duration"`
	Ease             string  `yaml:"ease"`
}

// AgentConfig holds the vehicle's kinematic limits and its visual proxy.
type AgentConfig struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Scale    [3]float32 `yaml:"scale"`
	MaxSpeed float32    `yaml:"max_speed"`
	MaxForce float32    `yaml:"max_force"`
	Mass     float32    `yaml:"mass"`
	Mesh     string     `yaml:"mesh"`
	MeshSize float32    `yaml:"mesh_size"`
	Color    string     `yaml:"color"`
}

type ArriveConfig struct {
	Deceleration float32    `yaml:"deceleration"`
	Tolerance    float32    `yaml:"tolerance"`
	Target       [3]float32 `yaml:"target"`
	TargetMesh   string     `yaml:"target_mesh"`
	TargetSize   float32    `yaml:"target_size"`
	TargetColor  string     `yaml:"target_color"`
}

type PathConfig struct {
	Waypoints            [][3]float32 `yaml:"waypoints"`
	Loop                 bool         `yaml:"loop"`
	NextWaypointDistance float32      `yaml:"next_waypoint_distance"`
	OnPathRadius         float32      `yaml:"on_path_radius"`
	PredictionFactor     float32      `yaml:"prediction_factor"`
	Color                string       `yaml:"color"`
}

// BobbingConfig drives the decorative vertical offset: y = Amplitude * sin(elapsedMs / PeriodMs).
type BobbingConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Amplitude float32 `yaml:"amplitude"`
	PeriodMs  float32 `yaml:"period_ms"`
}

type LoopConfig struct {
	MaxDelta float32 `yaml:"max_delta"`
}

// DecorConfig is a static, pickable sphere that is never a valid target.
type DecorConfig struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Radius   float32    `yaml:"radius"`
	Color    string     `yaml:"color"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Default returns the click-to-arrive scene.
func Default() Config {
	return Config{
		Variant: VariantArrive,
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Title:      "steer-scene",
			TargetFPS:  60,
			Resizable:  true,
			ShowHUD:    true,
			ShowGrid:   false,
			Background: "#000000",
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 10, 0},
			LookAt:   [3]float32{0, 0, 0},
			Up:       [3]float32{0, 0, -1},
			Fov:      45,
			Near:     0.1,
			Far:      1000,
		},
		Lights: LightsConfig{
			AmbientColor:         "#333333",
			AmbientIntensity:     1,
			DirectionalColor:     "#FFFFFF",
			DirectionalIntensity: 1,
			DirectionalPosition:  [3]float32{0.25, 2, 2.25},
		},
		Ground: GroundConfig{
			Name: "plane",
			Size: 2500,
			Y:    0,
		},
		Selection: SelectionConfig{
			MinX: -5,
			MaxX: 50,
		},
		Pan: PanConfig{
			Enabled:          true,
			EdgeFraction:     0.2,
			Shift:            5,
			ForwardDuration:  2.2,
			BackwardDuration: 2,
			Ease:             "power1.out",
		},
		Agent: AgentConfig{
			Name:     "vehicle",
			Position: [3]float32{-3, 0, -3},
			Scale:    [3]float32{0.15, 0.15, 0.15},
			MaxSpeed: 500,
			MaxForce: 500,
			Mass:     0.1,
			Mesh:     "sphere",
			MeshSize: 3,
			Color:    "#FFEAFF",
		},
		Arrive: ArriveConfig{
			Deceleration: 0.5,
			Tolerance:    0,
			Target:       [3]float32{0, 0, 0},
			TargetMesh:   "cube",
			TargetSize:   0.33,
			TargetColor:  "#FFEA00",
		},
		Path: PathConfig{
			Waypoints: [][3]float32{
				{-4, 0, 4},
				{-6, 0, 0},
				{-4, 0, -4},
				{0, 0, 0},
				{4, 0, -4},
				{6, 0, 0},
				{4, 0, 4},
				{0, 0, 6},
			},
			Loop:                 true,
			NextWaypointDistance: 0.5,
			OnPathRadius:         0.2,
			PredictionFactor:     1,
			Color:                "#FF0000",
		},
		Bobbing: BobbingConfig{
			Enabled:   true,
			Amplitude: 0.05,
			PeriodMs:  500,
		},
		Loop: LoopConfig{
			MaxDelta: 0.1,
		},
		Decor: []DecorConfig{
			{Name: "backdrop", Position: [3]float32{-5, 0, 5}, Radius: 3, Color: "#FFEAFF"},
		},
		Log: LogConfig{
			Path:  "logs/scene.txt",
			Level: "info",
		},
	}
}

// Load reads the YAML scene file at path over Default(). A missing file is not an error: Default() is returned.
// A file that exists but does not decode is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating nothing but the file itself.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every section and returns all failures joined, each wrapping ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	switch c.Variant {
	case VariantArrive, VariantFollowPath:
	default:
		fail("variant %q (use %s or %s)", c.Variant, VariantArrive, VariantFollowPath)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		fail("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		fail("camera.fov %v must be in (0, 180)", c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		fail("camera near/far %v/%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Position == c.Camera.LookAt {
		fail("camera.look_at equals camera.position")
	}
	if c.Ground.Name == "" || c.Ground.Size <= 0 {
		fail("ground needs a name and a positive size")
	}
	if c.Selection.MinX >= c.Selection.MaxX {
		fail("selection.min_x %v must be below max_x %v", c.Selection.MinX, c.Selection.MaxX)
	}
	if c.Pan.EdgeFraction <= 0 || c.Pan.EdgeFraction > 0.5 {
		fail("pan.edge_fraction %v must be in (0, 0.5]", c.Pan.EdgeFraction)
	}
	if c.Pan.ForwardDuration <= 0 || c.Pan.BackwardDuration <= 0 {
		fail("pan durations must be positive")
	}
	if c.Agent.MaxSpeed <= 0 || c.Agent.MaxForce <= 0 || c.Agent.Mass <= 0 {
		fail("agent max_speed, max_force and mass must be positive")
	}
	if c.Arrive.Deceleration <= 0 || c.Arrive.Tolerance < 0 {
		fail("arrive.deceleration must be positive and tolerance non-negative")
	}
	if c.Variant == VariantFollowPath {
		if len(c.Path.Waypoints) < 2 {
			fail("path needs at least 2 waypoints, got %d", len(c.Path.Waypoints))
		}
		if c.Path.NextWaypointDistance <= 0 {
			fail("path.next_waypoint_distance must be positive")
		}
	}
	if c.Loop.MaxDelta <= 0 {
		fail("loop.max_delta must be positive")
	}
	for _, col := range []string{c.Agent.Color, c.Arrive.TargetColor, c.Path.Color, c.Lights.AmbientColor, c.Lights.DirectionalColor, c.Window.Background} {
		if _, err := ParseHexColor(col); err != nil {
			fail("%v", err)
		}
	}
	for _, d := range c.Decor {
		if d.Radius <= 0 {
			fail("decor %q radius must be positive", d.Name)
		}
		if d.Name == c.Ground.Name {
			fail("decor %q shadows the ground plane name", d.Name)
		}
	}
	return errors.Join(errs...)
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" into RGBA bytes.
func ParseHexColor(s string) ([4]uint8, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return [4]uint8{}, fmt.Errorf("color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		hex += "FF"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [4]uint8{}, fmt.Errorf("color %q: %w", s, err)
	}
	return [4]uint8{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}
