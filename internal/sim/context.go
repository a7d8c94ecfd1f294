package sim

import (
	"github.com/go-gl/mathgl/mgl32"

	"steer-scene/internal/logger"
	"steer-scene/internal/scene"
)

// Context is the per-run state owned by the loop and handed to the renderer each frame.
type Context struct {
	Scene *scene.Scene
	Log   *logger.Logger

	Width, Height int
	// Pointer is the last pointer position in normalized device coordinates; PointerPx in window pixels.
	Pointer   mgl32.Vec2
	PointerPx mgl32.Vec2

	Frame   uint64
	Delta   float32
	Elapsed float64

	// LastClickErr is the selection error of the most recent click, nil when it was accepted.
	LastClickErr error
}

// Renderer draws a frame from the context. Render errors end the loop.
type Renderer interface {
	Render(ctx *Context) error
	ShouldClose() bool
	Resize(width, height int)
}

// HeadlessRenderer records frames without drawing. It reports close after MaxFrames frames (0 = never).
type HeadlessRenderer struct {
	MaxFrames int
	Frames    int
	Width     int
	Height    int
	// OnRender, if set, is called with the context of every frame.
	OnRender func(ctx *Context) error
}

func (h *HeadlessRenderer) Render(ctx *Context) error {
	h.Frames++
	if h.OnRender != nil {
		return h.OnRender(ctx)
	}
	return nil
}

func (h *HeadlessRenderer) ShouldClose() bool {
	return h.MaxFrames > 0 && h.Frames >= h.MaxFrames
}

func (h *HeadlessRenderer) Resize(width, height int) {
	h.Width, h.Height = width, height
}
