package gpu

import (
	"errors"
	"fmt"
)

// DefaultSlotCount matches the minimum GL_MAX_VERTEX_ATTRIBS an OpenGL 4.1
// implementation must provide.
const DefaultSlotCount = 16

// ErrSlotsExhausted is returned when every attribute slot of a pool is held.
var ErrSlotsExhausted = errors.New("gpu: vertex attribute slots exhausted")

// SlotPool hands out vertex attribute slot ids. Ids are scanned from zero
// upward and the lowest free id wins, so concurrently held attributes never
// share a slot. A pool is not safe for use by multiple goroutines; it is
// driven from the render thread only.
type SlotPool struct {
	device Device
	held   []bool
	inUse  int
}

// NewSlotPool creates a pool of size slots. A non-positive size selects
// DefaultSlotCount.
func NewSlotPool(device Device, size int) *SlotPool {
	if size <= 0 {
		size = DefaultSlotCount
	}
	return &SlotPool{
		device: device,
		held:   make([]bool, size),
	}
}

// Size returns the number of slots the pool manages.
func (p *SlotPool) Size() int {
	return len(p.held)
}

// InUse returns the number of slots currently held.
func (p *SlotPool) InUse() int {
	return p.inUse
}

// Acquire reserves the lowest free slot for buffer. The returned attribute
// must be released, normally with a deferred Release in the scope that
// issues the draw call.
func (p *SlotPool) Acquire(name string, buffer uint32, components int32) (*VertexAttrib, error) {
	for id := range p.held {
		if p.held[id] {
			continue
		}
		p.held[id] = true
		p.inUse++
		return &VertexAttrib{
			pool:       p,
			name:       name,
			slot:       uint32(id),
			buffer:     buffer,
			components: components,
		}, nil
	}
	return nil, fmt.Errorf("acquire %q: %w (%d in use)", name, ErrSlotsExhausted, len(p.held))
}

func (p *SlotPool) release(slot uint32) {
	if int(slot) < len(p.held) && p.held[slot] {
		p.held[slot] = false
		p.inUse--
	}
}

// VertexAttrib owns one slot of a SlotPool for its lifetime.
type VertexAttrib struct {
	pool       *SlotPool
	name       string
	slot       uint32
	buffer     uint32
	components int32
	released   bool
}

// Name returns the label the attribute was acquired under.
func (a *VertexAttrib) Name() string {
	return a.name
}

// Slot returns the attribute slot id.
func (a *VertexAttrib) Slot() uint32 {
	return a.slot
}

// Enable binds the buffer to the slot as tightly packed floats.
func (a *VertexAttrib) Enable() {
	d := a.pool.device
	d.EnableVertexAttribArray(a.slot)
	d.BindArrayBuffer(a.buffer)
	d.VertexAttribPointer(a.slot, a.components)
}

// Release disables the slot and returns it to the pool. Calling Release more
// than once is a no-op.
func (a *VertexAttrib) Release() {
	if a.released {
		return
	}
	a.released = true
	a.pool.device.DisableVertexAttribArray(a.slot)
	a.pool.release(a.slot)
}
