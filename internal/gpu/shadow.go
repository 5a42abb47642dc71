package gpu

import "fmt"

// ShadowType distinguishes single-view depth targets from six-face cube
// depth targets.
type ShadowType int

const (
	ShadowSimple ShadowType = iota
	ShadowCube
)

func (t ShadowType) String() string {
	switch t {
	case ShadowSimple:
		return "SIMPLE"
	case ShadowCube:
		return "CUBE"
	}
	return fmt.Sprintf("ShadowType(%d)", int(t))
}

// Views returns how many view/projection pairs a light of this type renders.
func (t ShadowType) Views() int {
	if t == ShadowCube {
		return 6
	}
	return 1
}

// TextureTarget returns the binding point of the depth texture.
func (t ShadowType) TextureTarget() TextureTarget {
	if t == ShadowCube {
		return TextureCubeMap
	}
	return Texture2D
}

// ShadowTarget describes the depth-only framebuffer a light renders into.
type ShadowTarget struct {
	Type         ShadowType
	DepthTexture uint32
	Framebuffer  uint32
	Width        int32
	Height       int32
}
