package pushmodel

// PerDriverState holds the dirty properties one net driver has not looked at
// yet. After the manager flushes global bits into it, only the owning driver
// mutates it. Bits are never cleared on the driver's behalf: clear exactly the
// properties you examined so an interrupted scan can resume on the next tick.
type PerDriverState struct {
	dirty             DirtyBitSet
	recentlyCollected bool
}

func newDriverState(numProperties int) *PerDriverState {
	return &PerDriverState{dirty: NewDirtyBitSet(numProperties)}
}

// DirtyProperties exposes the driver's bit set for reading.
func (s *PerDriverState) DirtyProperties() *DirtyBitSet {
	return &s.dirty
}

func (s *PerDriverState) IsPropertyDirty(idx PropertyIndex) bool {
	return s.dirty.Test(int(idx))
}

func (s *PerDriverState) HasDirtyProperties() bool {
	return !s.dirty.IsEmpty()
}

// ClearProperty marks idx as examined. Indices past the schema are ignored.
func (s *PerDriverState) ClearProperty(idx PropertyIndex) {
	if int(idx) < s.dirty.Len() {
		s.dirty.Clear(int(idx))
	}
}

// ClearRange marks [lo, hi] as examined. The part of the range past the
// schema is ignored.
func (s *PerDriverState) ClearRange(lo, hi PropertyIndex) {
	last := min(int(hi), s.dirty.Len()-1)
	if int(lo) > last {
		return
	}
	s.dirty.ClearRange(int(lo), last)
}

// ClearAll marks every property as examined, for drivers that always scan the
// whole object.
func (s *PerDriverState) ClearAll() {
	s.dirty.ClearAll()
}

// RecentlyCollected is raised by every sweep that runs while this driver is
// registered. Object references held in the driver's shadow state may point at
// collected objects and need to be compared again.
func (s *PerDriverState) RecentlyCollected() bool {
	return s.recentlyCollected
}

func (s *PerDriverState) ClearRecentlyCollected() {
	s.recentlyCollected = false
}
