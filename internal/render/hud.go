package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"steer-scene/internal/sim"
)

const (
	hudFontSize   = 20
	hudPadding    = 12
	hudLineHeight = hudFontSize + 4
	logFontSize   = 16
	logLineHeight = logFontSize + 4
	logLines      = 6
	// updateInterval: only refresh FPS text every N frames to reduce allocations.
	updateInterval = 30
)

var (
	hudColor    = rl.Green
	logColor    = rl.NewColor(200, 200, 200, 255)
	logBgColor  = rl.NewColor(24, 24, 24, 200)
	hudErrColor = rl.NewColor(230, 90, 90, 255)
)

// HUD draws the overlay: FPS top-right, scene state top-left, recent log lines at the bottom.
type HUD struct {
	Visible    bool
	frameCount uint32
	fpsText    string
}

func NewHUD(visible bool) *HUD {
	return &HUD{Visible: visible}
}

// Draw renders the overlay. Call after EndMode3D.
func (h *HUD) Draw(ctx *sim.Context) {
	if !h.Visible {
		return
	}
	h.frameCount++
	if h.fpsText == "" || h.frameCount%updateInterval == 0 {
		h.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	w := rl.MeasureText(h.fpsText, hudFontSize)
	rl.DrawText(h.fpsText, screenW-w-hudPadding, hudPadding, hudFontSize, hudColor)

	s := ctx.Scene
	y := int32(hudPadding)
	line := func(text string, c rl.Color) {
		rl.DrawText(text, hudPadding, y, hudFontSize, c)
		y += hudLineHeight
	}
	line(fmt.Sprintf("variant: %s", s.Config.Variant), hudColor)
	line(fmt.Sprintf("camera: x=%.2f %s", s.Camera.Position.X(), s.Pan.State()), hudColor)
	v := s.Vehicle.Position
	line(fmt.Sprintf("vehicle: (%.2f, %.2f) speed %.2f", v.X(), v.Z(), s.Vehicle.Speed()), hudColor)
	if s.Target != nil {
		t := s.Target.Position
		line(fmt.Sprintf("target: (%.2f, %.2f)", t.X(), t.Z()), hudColor)
		if ctx.LastClickErr != nil {
			line(ctx.LastClickErr.Error(), hudErrColor)
		}
	}
	if s.Path != nil {
		line(fmt.Sprintf("waypoint: %d/%d", s.Path.Index()+1, s.Path.Len()), hudColor)
	}

	if ctx.Log == nil {
		return
	}
	tail := ctx.Log.Tail(logLines)
	if len(tail) == 0 {
		return
	}
	top := screenH - int32(len(tail))*logLineHeight - hudPadding
	rl.DrawRectangle(0, top-4, screenW, screenH-top+4, logBgColor)
	for i, text := range tail {
		rl.DrawText(text, hudPadding, top+int32(i)*logLineHeight, logFontSize, logColor)
	}
}
