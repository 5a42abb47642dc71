package scene

import (
	"fmt"

	"shadowcaster/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// Light is a shadow-casting light source. ViewMatrices and
// ProjectionMatrices always have the same length: one for lights with a
// SIMPLE shadow target, six (one per cube face) for CUBE targets.
type Light interface {
	ID() string
	Position() mgl32.Vec3
	Color() mgl32.Vec3
	Intensity() float32
	NearPlane() float32
	FarPlane() float32
	ViewMatrices() []mgl32.Mat4
	ProjectionMatrices() []mgl32.Mat4
	Shader() *gpu.Shader
	ShadowTarget() gpu.ShadowTarget
}

// Default light parameters.
const (
	DefaultNearPlane = 0.1
	DefaultFarPlane  = 100.0
	DefaultSpotFOV   = 60.0
)

type lightBase struct {
	id        string
	position  mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
	near      float32
	far       float32
	shader    *gpu.Shader
	shadow    gpu.ShadowTarget
}

func newLightBase(prefix, id string, shader *gpu.Shader, target gpu.ShadowTarget, want gpu.ShadowType) (lightBase, error) {
	if target.Type != want {
		return lightBase{}, fmt.Errorf("%s light %q: shadow target is %s, want %s", prefix, id, target.Type, want)
	}
	if id == "" {
		id = NewID(prefix)
	}
	return lightBase{
		id:        id,
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1,
		near:      DefaultNearPlane,
		far:       DefaultFarPlane,
		shader:    shader,
		shadow:    target,
	}, nil
}

func (l *lightBase) ID() string                     { return l.id }
func (l *lightBase) Position() mgl32.Vec3           { return l.position }
func (l *lightBase) Color() mgl32.Vec3              { return l.color }
func (l *lightBase) Intensity() float32             { return l.intensity }
func (l *lightBase) NearPlane() float32             { return l.near }
func (l *lightBase) FarPlane() float32              { return l.far }
func (l *lightBase) Shader() *gpu.Shader            { return l.shader }
func (l *lightBase) ShadowTarget() gpu.ShadowTarget { return l.shadow }

func (l *lightBase) SetPosition(p mgl32.Vec3) { l.position = p }
func (l *lightBase) SetColor(c mgl32.Vec3)    { l.color = c }
func (l *lightBase) SetIntensity(i float32)   { l.intensity = i }

// SetClipPlanes sets the depth range rendered into the shadow map.
func (l *lightBase) SetClipPlanes(near, far float32) {
	l.near, l.far = near, far
}

func (l *lightBase) aspect() float32 {
	if l.shadow.Height == 0 {
		return 1
	}
	return float32(l.shadow.Width) / float32(l.shadow.Height)
}

// SpotLight casts a perspective frustum from its position toward a target.
type SpotLight struct {
	lightBase
	aim mgl32.Vec3
	fov float32
}

// NewSpotLight creates a spot light rendering into a SIMPLE shadow target.
// An empty id is replaced with a generated one.
func NewSpotLight(id string, shader *gpu.Shader, target gpu.ShadowTarget) (*SpotLight, error) {
	base, err := newLightBase("spot", id, shader, target, gpu.ShadowSimple)
	if err != nil {
		return nil, err
	}
	base.position = mgl32.Vec3{0, 10, 0}
	return &SpotLight{lightBase: base, fov: DefaultSpotFOV}, nil
}

// SetTarget points the light at p.
func (l *SpotLight) SetTarget(p mgl32.Vec3) { l.aim = p }

// SetFOV sets the full cone angle in degrees.
func (l *SpotLight) SetFOV(degrees float32) { l.fov = degrees }

func (l *SpotLight) ViewMatrices() []mgl32.Mat4 {
	return []mgl32.Mat4{lookAt(l.position, l.aim)}
}

func (l *SpotLight) ProjectionMatrices() []mgl32.Mat4 {
	return []mgl32.Mat4{mgl32.Perspective(mgl32.DegToRad(l.fov), l.aspect(), l.near, l.far)}
}

// DirectionalLight casts parallel rays along a direction; its shadow map
// covers a square of side 2*extent centered on its position.
type DirectionalLight struct {
	lightBase
	direction mgl32.Vec3
	extent    float32
}

// NewDirectionalLight creates a directional light rendering into a SIMPLE
// shadow target.
func NewDirectionalLight(id string, shader *gpu.Shader, target gpu.ShadowTarget) (*DirectionalLight, error) {
	base, err := newLightBase("directional", id, shader, target, gpu.ShadowSimple)
	if err != nil {
		return nil, err
	}
	base.position = mgl32.Vec3{0, 20, 0}
	return &DirectionalLight{lightBase: base, direction: mgl32.Vec3{0, -1, 0}, extent: 20}, nil
}

// SetDirection sets the direction the light travels in. Zero vectors are
// ignored.
func (l *DirectionalLight) SetDirection(d mgl32.Vec3) {
	if d.Len() == 0 {
		return
	}
	l.direction = d.Normalize()
}

// SetExtent sets the half size of the orthographic shadow volume.
func (l *DirectionalLight) SetExtent(e float32) { l.extent = e }

func (l *DirectionalLight) ViewMatrices() []mgl32.Mat4 {
	return []mgl32.Mat4{lookAt(l.position, l.position.Add(l.direction))}
}

func (l *DirectionalLight) ProjectionMatrices() []mgl32.Mat4 {
	e := l.extent
	return []mgl32.Mat4{mgl32.Ortho(-e, e, -e, e, l.near, l.far)}
}

// cubeFaces lists the look direction and up vector of each cube map face in
// GL_TEXTURE_CUBE_MAP_POSITIVE_X order.
var cubeFaces = [6]struct{ dir, up mgl32.Vec3 }{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
}

// PointLight shines in every direction and renders a cube shadow map.
type PointLight struct {
	lightBase
}

// NewPointLight creates a point light rendering into a CUBE shadow target.
func NewPointLight(id string, shader *gpu.Shader, target gpu.ShadowTarget) (*PointLight, error) {
	base, err := newLightBase("point", id, shader, target, gpu.ShadowCube)
	if err != nil {
		return nil, err
	}
	base.near = 0.5
	base.far = 25
	return &PointLight{lightBase: base}, nil
}

func (l *PointLight) ViewMatrices() []mgl32.Mat4 {
	views := make([]mgl32.Mat4, len(cubeFaces))
	for i, f := range cubeFaces {
		views[i] = mgl32.LookAtV(l.position, l.position.Add(f.dir), f.up)
	}
	return views
}

func (l *PointLight) ProjectionMatrices() []mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(90), l.aspect(), l.near, l.far)
	projs := make([]mgl32.Mat4, len(cubeFaces))
	for i := range projs {
		projs[i] = proj
	}
	return projs
}

// Dead light ids. Dead lights are never rendered; their depth textures back
// shader samplers that have no real light assigned.
const (
	DeadSimpleLightID = "dead::simple"
	DeadCubeLightID   = "dead::cube"
)

// NewDeadSimpleLight wraps a SIMPLE target as the fallback for unused simple
// light slots.
func NewDeadSimpleLight(target gpu.ShadowTarget) (*SpotLight, error) {
	return NewSpotLight(DeadSimpleLightID, nil, target)
}

// NewDeadCubeLight wraps a CUBE target as the fallback for unused cube light
// slots.
func NewDeadCubeLight(target gpu.ShadowTarget) (*PointLight, error) {
	return NewPointLight(DeadCubeLightID, nil, target)
}

// lookAt builds a view matrix, switching the up vector when the view
// direction is parallel to +Y.
func lookAt(eye, center mgl32.Vec3) mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	dir := center.Sub(eye)
	if dir.Len() > 0 && mgl32.Abs(dir.Normalize().Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, -1}
	}
	return mgl32.LookAtV(eye, center, up)
}
