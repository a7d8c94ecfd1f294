package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"steer-scene/internal/scene"
)

func TestToMatrix_TranslationInLastColumn(t *testing.T) {
	m := toMatrix(mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(4, 5, 6)))
	assert.Equal(t, float32(1), m.M12)
	assert.Equal(t, float32(2), m.M13)
	assert.Equal(t, float32(3), m.M14)
	assert.Equal(t, float32(4), m.M0)
	assert.Equal(t, float32(5), m.M5)
	assert.Equal(t, float32(6), m.M10)
	assert.Equal(t, float32(1), m.M15)
}

func TestRegistry_SetViewFromLights(t *testing.T) {
	r := NewRegistry()
	r.SetView(mgl32.Vec3{0, 10, 0}, []scene.Light{
		{Kind: scene.AmbientLight, Color: [4]uint8{0x33, 0x33, 0x33, 0xFF}, Intensity: 1},
		{Kind: scene.DirectionalLight, Color: [4]uint8{255, 255, 255, 255}, Intensity: 0.5, Position: mgl32.Vec3{0, 2, 0}},
	})
	assert.Equal(t, [3]float32{0, 10, 0}, r.viewPos)
	assert.InDelta(t, 0.2, r.ambient[0], 1e-6)
	assert.Equal(t, [3]float32{0, 1, 0}, r.lightDir)
	assert.Equal(t, float32(0.5), r.lightIntensity)
	assert.Equal(t, [3]float32{1, 1, 1}, r.lightColor)
}

func TestColorToFloats(t *testing.T) {
	assert.Equal(t, [4]float32{1, 0, 0, 1}, colorToFloats([4]uint8{255, 0, 0, 255}))
}
