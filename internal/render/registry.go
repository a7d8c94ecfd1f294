package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"steer-scene/internal/scene"
)

// cached holds mesh and material for a mesh kind. Created lazily on first Draw.
type cached struct {
	mesh  rl.Mesh
	mtl   rl.Material
	local mgl32.Mat4 // unit mesh -> proxy local space (centering, orientation)
}

// Registry maps mesh kinds to GPU meshes. Meshes are created on first use so that GPU resources are
// allocated after the window/OpenGL context exists. Every mesh is unit-sized: sphere radius 1, cube side 1,
// cone height 1; Draw scales by the proxy's Size.
type Registry struct {
	cache  map[scene.MeshKind]cached
	shader rl.Shader

	viewPos        [3]float32
	lightDir       [3]float32
	lightColor     [3]float32
	lightIntensity float32
	ambient        [4]float32
}

func NewRegistry() *Registry {
	return &Registry{
		cache:          make(map[scene.MeshKind]cached),
		lightDir:       [3]float32{0.5, 1, 0.5},
		lightColor:     [3]float32{1, 1, 1},
		lightIntensity: 1,
		ambient:        [4]float32{0.2, 0.2, 0.2, 1},
	}
}

const (
	sphereRings  = 16
	sphereSlices = 16
	coneSlices   = 8
	// cone radius relative to its height
	coneRadius = 0.2
)

// SetView sets the camera position and the scene lights for this frame. Call once per frame before drawing.
func (r *Registry) SetView(viewPos mgl32.Vec3, lights []scene.Light) {
	r.viewPos = [3]float32(viewPos)
	for _, l := range lights {
		c := colorToFloats(l.Color)
		switch l.Kind {
		case scene.AmbientLight:
			r.ambient = [4]float32{c[0] * l.Intensity, c[1] * l.Intensity, c[2] * l.Intensity, 1}
		case scene.DirectionalLight:
			if l.Position.Len() > 0 {
				r.lightDir = [3]float32(l.Position.Normalize())
			}
			r.lightColor = [3]float32{c[0], c[1], c[2]}
			r.lightIntensity = l.Intensity
		}
	}
}

func colorToFloats(c [4]uint8) [4]float32 {
	return [4]float32{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255, float32(c[3]) / 255}
}

func (r *Registry) ensureShader() {
	if r.shader.ID != 0 {
		return
	}
	r.shader = rl.LoadShaderFromMemory(litVS, litFS)
}

func (r *Registry) ensure(kind scene.MeshKind) (cached, bool) {
	if c, ok := r.cache[kind]; ok {
		return c, true
	}
	var c cached
	switch kind {
	case scene.MeshSphere:
		c.mesh = rl.GenMeshSphere(1, sphereRings, sphereSlices)
		c.local = mgl32.Ident4()
	case scene.MeshCube:
		c.mesh = rl.GenMeshCube(1, 1, 1)
		c.local = mgl32.Ident4()
	case scene.MeshCone:
		// raylib cones stand on Y=0 pointing +Y; center them and point the tip along +Z (entity forward)
		c.mesh = rl.GenMeshCone(coneRadius, 1, coneSlices)
		c.local = mgl32.HomogRotate3DX(mgl32.DegToRad(90)).Mul4(mgl32.Translate3D(0, -0.5, 0))
	default:
		return cached{}, false
	}
	r.ensureShader()
	c.mtl = rl.LoadMaterialDefault()
	if rl.IsShaderValid(r.shader) {
		c.mtl.Shader = r.shader
	}
	r.cache[kind] = c
	return c, true
}

// setLitShaderUniforms sets view position, light and ambient on the shared shader (cgo-safe: local arrays).
func (r *Registry) setLitShaderUniforms() {
	if !rl.IsShaderValid(r.shader) {
		return
	}
	viewPos := r.viewPos
	lightDir := r.lightDir
	lightColor := r.lightColor
	amb := r.ambient
	if loc := rl.GetShaderLocation(r.shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(r.shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(r.shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(r.shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(r.shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(r.shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(r.shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(r.shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(r.shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(r.shader, loc, []float32{r.lightIntensity}, rl.ShaderUniformFloat)
	}
}

// Draw draws one mesh of the given kind with a world transform. size scales the unit mesh uniformly.
// Must be called between BeginMode3D and EndMode3D. Unknown kinds are skipped.
func (r *Registry) Draw(kind scene.MeshKind, size float32, color [4]uint8, model mgl32.Mat4) {
	c, ok := r.ensure(kind)
	if !ok {
		return
	}
	if size <= 0 {
		size = 1
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(color[0], color[1], color[2], color[3])
	}
	r.setLitShaderUniforms()
	transform := model.Mul4(mgl32.Scale3D(size, size, size)).Mul4(c.local)
	rl.DrawMesh(c.mesh, c.mtl, toMatrix(transform))
}

// DrawProxy draws a visible proxy at its render matrix.
func (r *Registry) DrawProxy(p *scene.Proxy) {
	if p == nil || !p.Visible {
		return
	}
	r.Draw(p.Mesh, p.Size, p.Color, p.RenderMatrix())
}

// Unload frees every cached mesh and the shader. Call before closing the window.
func (r *Registry) Unload() {
	for kind, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, kind)
	}
	if r.shader.ID != 0 {
		rl.UnloadShader(r.shader)
		r.shader = rl.Shader{}
	}
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout. Both store columns contiguously,
// so element i maps to field Mi.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

func toColor(c [4]uint8) rl.Color {
	return rl.NewColor(c[0], c[1], c[2], c[3])
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), 32.0) * 0.25 * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + lightColor * spec, colDiffuse.a);
}
`
)
