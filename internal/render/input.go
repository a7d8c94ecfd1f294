package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"steer-scene/internal/input"
)

// PollInput pushes pointer moves, left clicks and resizes seen since the last frame. G toggles the grid,
// H toggles the HUD; those stay local to the window.
func (w *Window) PollInput() {
	if rl.IsWindowResized() {
		width, height := rl.GetScreenWidth(), rl.GetScreenHeight()
		if width != w.width || height != w.height {
			w.queue.Push(input.Resize{Width: width, Height: height})
		}
	}

	mouse := rl.GetMousePosition()
	if mouse != w.lastMouse {
		w.lastMouse = mouse
		w.queue.Push(input.PointerMove{X: mouse.X, Y: mouse.Y})
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		w.queue.Push(input.Click{X: mouse.X, Y: mouse.Y})
	}

	if rl.IsKeyPressed(rl.KeyG) {
		w.showGrid = !w.showGrid
	}
	if rl.IsKeyPressed(rl.KeyH) {
		w.hud.Visible = !w.hud.Visible
	}
}

func translate(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(v.X(), v.Y(), v.Z())
}
