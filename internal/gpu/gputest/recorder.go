// Package gputest provides a gpu.Device that records calls instead of
// talking to a driver, so render code can be exercised without a context.
package gputest

import (
	"sort"

	"shadowcaster/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformWrite is one uniform assignment.
type UniformWrite struct {
	Program uint32
	Name    string
	Value   any
}

// TextureBinding is the texture attached to a unit.
type TextureBinding struct {
	Target  gpu.TextureTarget
	Texture uint32
}

// Draw captures the state a draw call was issued with.
type Draw struct {
	Program     uint32
	Framebuffer uint32
	First       int32
	Count       int32
	// Attributes maps enabled slots to the buffer bound when each was enabled.
	Attributes map[uint32]uint32
}

// Slots returns the enabled slots in ascending order.
func (d Draw) Slots() []uint32 {
	out := make([]uint32, 0, len(d.Attributes))
	for s := range d.Attributes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type locationKey struct {
	program uint32
	name    string
}

// Recorder implements gpu.Device.
type Recorder struct {
	// Missing reports uniforms the fake program does not declare; they
	// resolve to gpu.NoLocation. Nil means every name resolves.
	Missing func(program uint32, name string) bool

	Program          uint32
	Framebuffer      uint32
	ProgramSwitches  []uint32
	FramebufferBinds []uint32
	Uniforms         []UniformWrite
	Discarded        int
	Units            map[uint32]TextureBinding
	Draws            []Draw
	Disabled         []uint32

	activeUnit  uint32
	arrayBuffer uint32
	enabled     map[uint32]uint32
	locations   map[locationKey]int32
	names       []locationKey
}

var _ gpu.Device = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{}
	r.Reset()
	return r
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	missing := r.Missing
	*r = Recorder{
		Missing:   missing,
		Units:     make(map[uint32]TextureBinding),
		enabled:   make(map[uint32]uint32),
		locations: make(map[locationKey]int32),
	}
}

func (r *Recorder) UseProgram(program uint32) {
	r.Program = program
	r.ProgramSwitches = append(r.ProgramSwitches, program)
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	if r.Missing != nil && r.Missing(program, name) {
		return gpu.NoLocation
	}
	key := locationKey{program, name}
	if loc, ok := r.locations[key]; ok {
		return loc
	}
	loc := int32(len(r.names))
	r.locations[key] = loc
	r.names = append(r.names, key)
	return loc
}

func (r *Recorder) write(location int32, v any) {
	if location < 0 || int(location) >= len(r.names) {
		r.Discarded++
		return
	}
	key := r.names[location]
	r.Uniforms = append(r.Uniforms, UniformWrite{Program: key.program, Name: key.name, Value: v})
}

func (r *Recorder) Uniform1i(location int32, v int32)           { r.write(location, v) }
func (r *Recorder) Uniform1f(location int32, v float32)         { r.write(location, v) }
func (r *Recorder) Uniform3f(location int32, x, y, z float32)   { r.write(location, mgl32.Vec3{x, y, z}) }
func (r *Recorder) UniformMatrix4(location int32, m mgl32.Mat4) { r.write(location, m) }

func (r *Recorder) BindFramebuffer(framebuffer uint32) {
	r.Framebuffer = framebuffer
	r.FramebufferBinds = append(r.FramebufferBinds, framebuffer)
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.activeUnit = unit
}

func (r *Recorder) BindTexture(target gpu.TextureTarget, texture uint32) {
	r.Units[r.activeUnit] = TextureBinding{Target: target, Texture: texture}
}

func (r *Recorder) BindArrayBuffer(buffer uint32) {
	r.arrayBuffer = buffer
}

func (r *Recorder) EnableVertexAttribArray(slot uint32) {
	r.enabled[slot] = 0
}

func (r *Recorder) DisableVertexAttribArray(slot uint32) {
	delete(r.enabled, slot)
	r.Disabled = append(r.Disabled, slot)
}

func (r *Recorder) VertexAttribPointer(slot uint32, components int32) {
	if _, ok := r.enabled[slot]; ok {
		r.enabled[slot] = r.arrayBuffer
	}
}

func (r *Recorder) DrawTriangles(first, count int32) {
	attrs := make(map[uint32]uint32, len(r.enabled))
	for s, b := range r.enabled {
		attrs[s] = b
	}
	r.Draws = append(r.Draws, Draw{
		Program:     r.Program,
		Framebuffer: r.Framebuffer,
		First:       first,
		Count:       count,
		Attributes:  attrs,
	})
}

// EnabledSlots returns the slots that are currently enabled.
func (r *Recorder) EnabledSlots() int {
	return len(r.enabled)
}

// Named returns every write to name, in issue order.
func (r *Recorder) Named(name string) []UniformWrite {
	var out []UniformWrite
	for _, u := range r.Uniforms {
		if u.Name == name {
			out = append(out, u)
		}
	}
	return out
}

// Last returns the most recent value written to name.
func (r *Recorder) Last(name string) (any, bool) {
	for i := len(r.Uniforms) - 1; i >= 0; i-- {
		if r.Uniforms[i].Name == name {
			return r.Uniforms[i].Value, true
		}
	}
	return nil, false
}
