package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"steer-scene/internal/scene"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// drawGrid draws a grid on the XZ plane at height y with major/minor lines and X/Z axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid(y float32) {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), y, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(i), y, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = float32(-gridExtent), y, float32(i)
		end.X, end.Y, end.Z = float32(gridExtent), y, float32(i)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), y, 0
	end.X, end.Y, end.Z = float32(gridExtent), y, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, y, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, y, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}

// drawPathLine draws the path outline, closing it when the path loops.
func drawPathLine(line *scene.PathLine) {
	if line == nil || len(line.Points) < 2 {
		return
	}
	c := toColor(line.Color)
	n := len(line.Points)
	for i := 0; i < n-1; i++ {
		rl.DrawLine3D(toVector3(line.Points[i]), toVector3(line.Points[i+1]), c)
	}
	if line.Loop {
		rl.DrawLine3D(toVector3(line.Points[n-1]), toVector3(line.Points[0]), c)
	}
}
