package render

// Inspector is a read-only view of renderer state for debug overlays.
type Inspector interface {
	ActiveCameraID() string
	LightIDs() []string
	ModelIDs() []string
	CameraIDs() []string
	// FallbackLights reports which dead lights are registered.
	FallbackLights() (simple, cube bool)
	SlotsInUse() int
	LastFrame() FrameStats
}

func (r *Renderer) Inspector() Inspector {
	return inspector{r}
}

type inspector struct {
	r *Renderer
}

func (i inspector) ActiveCameraID() string { return i.r.activeCamera }
func (i inspector) LightIDs() []string     { return copyIDs(i.r.lights.IDs()) }
func (i inspector) ModelIDs() []string     { return copyIDs(i.r.models.IDs()) }
func (i inspector) CameraIDs() []string    { return copyIDs(i.r.cameras.IDs()) }
func (i inspector) SlotsInUse() int        { return i.r.slots.InUse() }
func (i inspector) LastFrame() FrameStats  { return i.r.stats }

func (i inspector) FallbackLights() (simple, cube bool) {
	return i.r.deadSimple != nil, i.r.deadCube != nil
}

func copyIDs(ids []string) []string {
	return append([]string(nil), ids...)
}
