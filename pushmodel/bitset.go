package pushmodel

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// DirtyBitSet is a fixed width set of property indices. The underlying
// bitset grows on demand, so every write is checked against the width.
type DirtyBitSet struct {
	bits *bitset.BitSet
	n    int
}

func NewDirtyBitSet(n int) DirtyBitSet {
	return DirtyBitSet{
		bits: bitset.New(uint(n)),
		n:    n,
	}
}

// Len is the number of addressable bits, not the number of set bits.
func (b *DirtyBitSet) Len() int {
	return b.n
}

func (b *DirtyBitSet) check(i int) {
	if i < 0 || i >= b.n {
		panic("pushmodel: bit index " + strconv.Itoa(i) + " out of range [0," + strconv.Itoa(b.n) + ")")
	}
}

func (b *DirtyBitSet) Set(i int) {
	b.check(i)
	b.bits.Set(uint(i))
}

func (b *DirtyBitSet) Test(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	return b.bits.Test(uint(i))
}

func (b *DirtyBitSet) Clear(i int) {
	b.check(i)
	b.bits.Clear(uint(i))
}

// SetRange sets every bit in [lo, hi].
func (b *DirtyBitSet) SetRange(lo, hi int) {
	if lo > hi {
		return
	}
	b.check(lo)
	b.check(hi)
	for i := lo; i <= hi; i++ {
		b.bits.Set(uint(i))
	}
}

// ClearRange clears every bit in [lo, hi].
func (b *DirtyBitSet) ClearRange(lo, hi int) {
	if lo > hi {
		return
	}
	b.check(lo)
	b.check(hi)
	for i, ok := b.bits.NextSet(uint(lo)); ok && i <= uint(hi); i, ok = b.bits.NextSet(i + 1) {
		b.bits.Clear(i)
	}
}

func (b *DirtyBitSet) ClearAll() {
	b.bits.ClearAll()
}

func (b *DirtyBitSet) SetAll() {
	if b.n > 0 {
		b.SetRange(0, b.n-1)
	}
}

// Or merges other into b. Both sets must have the same width.
func (b *DirtyBitSet) Or(other *DirtyBitSet) {
	if other.n != b.n {
		panic("pushmodel: bit set width mismatch")
	}
	b.bits.InPlaceUnion(other.bits)
}

func (b *DirtyBitSet) IsEmpty() bool {
	return b.bits.None()
}

func (b *DirtyBitSet) Count() int {
	return int(b.bits.Count())
}

// ForEach calls fn for every set bit in ascending order. Returning false stops
// the walk.
func (b *DirtyBitSet) ForEach(fn func(i int) bool) {
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		if !fn(int(i)) {
			return
		}
	}
}

func (b *DirtyBitSet) Indices() []int {
	out := make([]int, 0, b.Count())
	b.ForEach(func(i int) bool {
		out = append(out, i)
		return true
	})
	return out
}

func (b *DirtyBitSet) Equal(other *DirtyBitSet) bool {
	return b.n == other.n && b.bits.Equal(other.bits)
}

func (b *DirtyBitSet) Clone() DirtyBitSet {
	return DirtyBitSet{bits: b.bits.Clone(), n: b.n}
}

func (b *DirtyBitSet) sizeBytes() int {
	return (b.n + 63) / 64 * 8
}

// String renders the set bits as {1,4,9}.
func (b *DirtyBitSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	b.ForEach(func(i int) bool {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.Itoa(i))
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}
