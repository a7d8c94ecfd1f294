// Package render draws the scene with raylib and turns window input into input commands.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"steer-scene/internal/config"
	"steer-scene/internal/input"
	"steer-scene/internal/scene"
	"steer-scene/internal/sim"
)

// Window is the raylib renderer. It implements sim.Renderer; after each frame it polls pointer and
// resize events into the queue so the loop sees them on the next tick.
type Window struct {
	queue    *input.Queue
	registry *Registry
	hud      *HUD
	showGrid bool

	background rl.Color
	camera     rl.Camera3D
	lastMouse  rl.Vector2
	width      int
	height     int
}

var _ sim.Renderer = (*Window)(nil)

// Open creates the window. Call Close when done. Must run on the main OS thread.
func Open(cfg config.WindowConfig, background [4]uint8, queue *input.Queue) *Window {
	flags := uint32(rl.FlagMsaa4xHint)
	if cfg.Resizable {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	rl.SetTargetFPS(int32(cfg.TargetFPS))

	return &Window{
		queue:      queue,
		registry:   NewRegistry(),
		hud:        NewHUD(cfg.ShowHUD),
		showGrid:   cfg.ShowGrid,
		background: toColor(background),
		width:      cfg.Width,
		height:     cfg.Height,
	}
}

// Close releases GPU resources and closes the window.
func (w *Window) Close() {
	w.registry.Unload()
	rl.CloseWindow()
}

func (w *Window) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Resize records the new viewport size. The OS window has already been resized by the user.
func (w *Window) Resize(width, height int) {
	w.width, w.height = width, height
}

// Render draws one frame: proxies, decor and path in 3D, then the HUD. It then polls input for the next tick.
func (w *Window) Render(ctx *sim.Context) error {
	s := ctx.Scene
	w.syncCamera(ctx)
	w.registry.SetView(s.Camera.Position, s.Lights)

	rl.BeginDrawing()
	rl.ClearBackground(w.background)
	rl.BeginMode3D(w.camera)
	if w.showGrid {
		drawGrid(s.Ground.Y)
	}
	for _, d := range s.Decor {
		w.registry.Draw(scene.MeshSphere, d.Radius, d.Color, translate(d.Center))
	}
	drawPathLine(s.PathLine)
	for _, p := range s.Proxies() {
		w.registry.DrawProxy(p)
	}
	rl.EndMode3D()
	w.hud.Draw(ctx)
	rl.EndDrawing()

	w.PollInput()
	return nil
}

// syncCamera mirrors the scene camera into raylib's camera struct.
func (w *Window) syncCamera(ctx *sim.Context) {
	c := ctx.Scene.Camera
	w.camera.Position = toVector3(c.Position)
	w.camera.Target = toVector3(c.Target())
	w.camera.Up = toVector3(c.Up)
	w.camera.Fovy = c.Fov
	w.camera.Projection = rl.CameraPerspective
}
