package pushmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirtyBitSetSetClear(t *testing.T) {
	b := NewDirtyBitSet(70)
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 70, b.Len())

	b.Set(0)
	b.Set(63)
	b.Set(64)
	b.Set(69)
	assert.Equal(t, []int{0, 63, 64, 69}, b.Indices())
	assert.Equal(t, "{0,63,64,69}", b.String())

	b.Clear(63)
	assert.False(t, b.Test(63))
	assert.Equal(t, 3, b.Count())

	assert.False(t, b.Test(70), "out of range reads are false")
	assert.Panics(t, func() { b.Set(70) })
	assert.Panics(t, func() { b.Clear(-1) })
	assert.Equal(t, uint(70), b.bits.Len())
}

func TestDirtyBitSetRanges(t *testing.T) {
	b := NewDirtyBitSet(200)

	b.SetRange(60, 130)
	assert.Equal(t, 71, b.Count())
	assert.False(t, b.Test(59))
	assert.True(t, b.Test(60))
	assert.True(t, b.Test(130))
	assert.False(t, b.Test(131))

	b.ClearRange(64, 127)
	assert.Equal(t, []int{60, 61, 62, 63, 128, 129, 130}, b.Indices())

	b.SetRange(5, 5)
	assert.True(t, b.Test(5))

	// reversed ranges are ignored at this level
	b.SetRange(10, 9)
	assert.False(t, b.Test(10))
}

func TestDirtyBitSetSetAllMasksTail(t *testing.T) {
	b := NewDirtyBitSet(67)
	b.SetAll()
	assert.Equal(t, 67, b.Count())
	assert.False(t, b.Test(67))
	assert.Equal(t, uint(67), b.bits.Len(), "backing set never grows past the width")

	b.ClearAll()
	assert.True(t, b.IsEmpty())
}

func TestDirtyBitSetOr(t *testing.T) {
	a := NewDirtyBitSet(10)
	b := NewDirtyBitSet(10)
	a.Set(1)
	b.Set(2)
	b.Set(9)

	a.Or(&b)
	assert.Equal(t, []int{1, 2, 9}, a.Indices())
	assert.Equal(t, []int{2, 9}, b.Indices(), "source is untouched")

	c := NewDirtyBitSet(11)
	assert.Panics(t, func() { a.Or(&c) })
}

func TestDirtyBitSetCloneAndEqual(t *testing.T) {
	a := NewDirtyBitSet(128)
	a.Set(100)
	c := a.Clone()
	require.True(t, a.Equal(&c))

	c.Set(3)
	assert.False(t, a.Equal(&c))
	assert.False(t, a.Test(3))

	d := NewDirtyBitSet(64)
	assert.False(t, a.Equal(&d))
}

func TestDirtyBitSetForEachStops(t *testing.T) {
	b := NewDirtyBitSet(16)
	b.SetRange(0, 15)

	seen := 0
	b.ForEach(func(i int) bool {
		seen++
		return i < 4
	})
	assert.Equal(t, 5, seen)
}

func TestDirtyBitSetZeroWidth(t *testing.T) {
	b := NewDirtyBitSet(0)
	assert.True(t, b.IsEmpty())
	b.SetAll()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, "{}", b.String())
}
