package gpu_test

import (
	"testing"

	"shadowcaster/internal/gpu"
	"shadowcaster/internal/gpu/gputest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotPoolLiveHandlesAreDistinct(t *testing.T) {
	pool := gpu.NewSlotPool(gputest.NewRecorder(), 8)

	seen := make(map[uint32]bool)
	var held []*gpu.VertexAttrib
	for i := 0; i < 8; i++ {
		a, err := pool.Acquire("attr", uint32(100+i), 3)
		require.NoError(t, err)
		assert.False(t, seen[a.Slot()], "slot %d handed out twice", a.Slot())
		seen[a.Slot()] = true
		held = append(held, a)
	}
	assert.Equal(t, 8, pool.InUse())

	for _, a := range held {
		a.Release()
	}
	assert.Equal(t, 0, pool.InUse())
}

func TestSlotPoolReleasedSlotIsReused(t *testing.T) {
	pool := gpu.NewSlotPool(gputest.NewRecorder(), 4)

	a, err := pool.Acquire("a", 1, 3)
	require.NoError(t, err)
	b, err := pool.Acquire("b", 2, 2)
	require.NoError(t, err)
	c, err := pool.Acquire("c", 3, 3)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 2}, []uint32{a.Slot(), b.Slot(), c.Slot()})

	b.Release()
	d, err := pool.Acquire("d", 4, 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), d.Slot())

	a.Release()
	c.Release()
	d.Release()
}

func TestSlotPoolSequentialCyclesAlwaysYieldZero(t *testing.T) {
	pool := gpu.NewSlotPool(gputest.NewRecorder(), 0)
	assert.Equal(t, gpu.DefaultSlotCount, pool.Size())

	for i := 0; i < 100; i++ {
		a, err := pool.Acquire("VertexArray", 7, 3)
		require.NoError(t, err)
		if a.Slot() != 0 {
			t.Fatalf("cycle %d: got slot %d, want 0", i, a.Slot())
		}
		a.Release()
	}
}

func TestSlotPoolExhaustion(t *testing.T) {
	pool := gpu.NewSlotPool(gputest.NewRecorder(), 2)

	a, err := pool.Acquire("a", 1, 3)
	require.NoError(t, err)
	_, err = pool.Acquire("b", 2, 3)
	require.NoError(t, err)

	_, err = pool.Acquire("c", 3, 3)
	require.ErrorIs(t, err, gpu.ErrSlotsExhausted)

	a.Release()
	again, err := pool.Acquire("c", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), again.Slot())
}

func TestVertexAttribEnableAndRelease(t *testing.T) {
	rec := gputest.NewRecorder()
	pool := gpu.NewSlotPool(rec, 4)

	uv, err := pool.Acquire("UvArray", 42, 2)
	require.NoError(t, err)
	uv.Enable()
	rec.DrawTriangles(0, 3)

	require.Len(t, rec.Draws, 1)
	assert.Equal(t, map[uint32]uint32{0: 42}, rec.Draws[0].Attributes)

	uv.Release()
	uv.Release()
	assert.Equal(t, []uint32{0}, rec.Disabled, "release must disable exactly once")
	assert.Equal(t, 0, rec.EnabledSlots())
	assert.Equal(t, 0, pool.InUse())
}

func BenchmarkSlotPoolAcquireRelease(b *testing.B) {
	pool := gpu.NewSlotPool(gputest.NewRecorder(), gpu.DefaultSlotCount)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p, _ := pool.Acquire("VertexArray", 1, 3)
		u, _ := pool.Acquire("UvArray", 2, 2)
		n, _ := pool.Acquire("NormalArray", 3, 3)
		n.Release()
		u.Release()
		p.Release()
	}
}
