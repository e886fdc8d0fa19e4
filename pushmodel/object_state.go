package pushmodel

import (
	"maps"
	"slices"
)

// PerObjectState owns the canonical dirty bits of one tracked object and fans
// them out to registered drivers when one of them reads.
type PerObjectState struct {
	key           ObjectKey
	numProperties int
	global        DirtyBitSet
	drivers       map[DriverLocalID]*PerDriverState

	firstDriverID     DriverLocalID
	nextDriverID      DriverLocalID
	recentlyCollected bool
}

func newObjectState(key ObjectKey, numProperties int, firstDriverID DriverLocalID) *PerObjectState {
	return &PerObjectState{
		key:           key,
		numProperties: numProperties,
		global:        NewDirtyBitSet(numProperties),
		drivers:       make(map[DriverLocalID]*PerDriverState),
		firstDriverID: firstDriverID,
		nextDriverID:  firstDriverID,
	}
}

func (o *PerObjectState) Key() ObjectKey {
	return o.key
}

func (o *PerObjectState) NumProperties() int {
	return o.numProperties
}

// markDirty is valid with no drivers registered; the bits wait in the global
// set until somebody reads.
func (o *PerObjectState) markDirty(idx PropertyIndex) error {
	if int(idx) >= o.numProperties {
		return ErrPropertyOutOfRange
	}
	o.global.Set(int(idx))
	return nil
}

func (o *PerObjectState) markDirtyRange(lo, hi PropertyIndex) error {
	if lo > hi {
		return ErrInvalidRange
	}
	if int(hi) >= o.numProperties {
		return ErrPropertyOutOfRange
	}
	o.global.SetRange(int(lo), int(hi))
	return nil
}

func (o *PerObjectState) addDriver() DriverLocalID {
	id := o.nextDriverID
	o.nextDriverID++
	o.drivers[id] = newDriverState(o.numProperties)
	return id
}

// removeDriver never deletes the object itself, even for the last driver.
// Only a sweep does that.
func (o *PerObjectState) removeDriver(id DriverLocalID) bool {
	if _, ok := o.drivers[id]; !ok {
		return false
	}
	delete(o.drivers, id)
	return true
}

// issued reports whether id was handed out by this object, as opposed to a
// previous occupant of the same slot.
func (o *PerObjectState) issued(id DriverLocalID) bool {
	return id >= o.firstDriverID && id < o.nextDriverID
}

func (o *PerObjectState) driver(id DriverLocalID) (*PerDriverState, bool) {
	s, ok := o.drivers[id]
	return s, ok
}

// flushToDrivers ORs the global bits into every driver and only then clears
// the global set. Calling it twice in a row is a no-op the second time.
func (o *PerObjectState) flushToDrivers() {
	if o.global.IsEmpty() || len(o.drivers) == 0 {
		return
	}
	for _, d := range o.drivers {
		d.dirty.Or(&o.global)
	}
	o.global.ClearAll()
}

func (o *PerObjectState) HasAnyDrivers() bool {
	return len(o.drivers) > 0
}

func (o *PerObjectState) NumDrivers() int {
	return len(o.drivers)
}

// DriverIDs returns the registered driver ids in issue order.
func (o *PerObjectState) DriverIDs() []DriverLocalID {
	return slices.Sorted(maps.Keys(o.drivers))
}

// HasPendingDirty reports whether global bits are waiting for a read.
func (o *PerObjectState) HasPendingDirty() bool {
	return !o.global.IsEmpty()
}

// PendingDirty is a copy of the bits no driver has pulled yet.
func (o *PerObjectState) PendingDirty() DirtyBitSet {
	return o.global.Clone()
}

func (o *PerObjectState) markRecentlyCollected() {
	o.recentlyCollected = true
	for _, d := range o.drivers {
		d.recentlyCollected = true
	}
}

// RecentlyCollected is a diagnostic flag set on objects that survived a
// sweep. Nothing in the manager branches on it.
func (o *PerObjectState) RecentlyCollected() bool {
	return o.recentlyCollected
}

func (o *PerObjectState) sizeBytes() int {
	size := 64 + o.global.sizeBytes()
	for _, d := range o.drivers {
		size += 32 + d.dirty.sizeBytes()
	}
	return size
}
