package pushmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(i uint32) ObjectKey {
	return ObjectKey{Index: i, Serial: 1}
}

func TestRegistryAllocateIsIdempotent(t *testing.T) {
	r := newRegistry()

	a, err := r.allocate(key(1), 4)
	require.NoError(t, err)
	again, err := r.allocate(key(1), 4)
	require.NoError(t, err)
	assert.Equal(t, a, again)
	assert.Equal(t, 1, r.live)

	_, err = r.allocate(key(1), 5)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	obj, _ := r.get(a)
	assert.Equal(t, 4, obj.NumProperties(), "mismatch leaves the schema alone")
}

func TestRegistryReusesLowestFreeSlot(t *testing.T) {
	r := newRegistry()
	for i := uint32(0); i < 4; i++ {
		id, err := r.allocate(key(i), 1)
		require.NoError(t, err)
		assert.Equal(t, PushID(i), id)
	}

	r.free(2)
	r.free(1)
	assert.Equal(t, 1, r.freeHint)
	_, ok := r.lookup(key(1))
	assert.False(t, ok)

	id, err := r.allocate(key(10), 1)
	require.NoError(t, err)
	assert.Equal(t, PushID(1), id)

	id, err = r.allocate(key(11), 1)
	require.NoError(t, err)
	assert.Equal(t, PushID(2), id)

	id, err = r.allocate(key(12), 1)
	require.NoError(t, err)
	assert.Equal(t, PushID(4), id)
}

func TestRegistryShrinkTrimsTail(t *testing.T) {
	r := newRegistry()
	for i := uint32(0); i < 8; i++ {
		_, err := r.allocate(key(i), 1)
		require.NoError(t, err)
	}
	for i := 3; i < 8; i++ {
		r.free(PushID(i))
	}
	r.free(1)

	r.shrink()
	assert.Len(t, r.slots, 3)
	assert.Equal(t, 1, r.freeHint)
	assert.Equal(t, 2, r.live)

	id, err := r.allocate(key(20), 1)
	require.NoError(t, err)
	assert.Equal(t, PushID(1), id)
}

func TestRegistryDriverIDsAreNotReusedAcrossOccupants(t *testing.T) {
	r := newRegistry()
	id, err := r.allocate(key(1), 2)
	require.NoError(t, err)
	obj, _ := r.get(id)
	first := obj.addDriver()
	second := obj.addDriver()
	assert.NotEqual(t, first, second)
	obj.removeDriver(first)
	obj.removeDriver(second)

	r.free(id)
	reused, err := r.allocate(key(2), 2)
	require.NoError(t, err)
	require.Equal(t, id, reused)

	occupant, _ := r.get(reused)
	assert.False(t, occupant.issued(first))
	assert.False(t, occupant.issued(second))
	third := occupant.addDriver()
	assert.Greater(t, third, second)
}

func TestRegistryGetOutOfBounds(t *testing.T) {
	r := newRegistry()
	_, ok := r.get(-1)
	assert.False(t, ok)
	_, ok = r.get(42)
	assert.False(t, ok)
	r.free(42)
}
