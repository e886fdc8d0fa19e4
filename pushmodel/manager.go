package pushmodel

import (
	"io"
	"log"
)

// MaxProperties is the widest schema a PropertyIndex can address.
const MaxProperties = 1 << 16

// Manager is the only entry point into push model tracking. It is owned by the
// replication subsystem and is not safe for concurrent use: property setters,
// drivers and the collector hook must all run on the same logical context.
type Manager struct {
	enabled          bool
	bpPropertiesPush bool
	isAlive          func(ObjectKey) bool
	onViolation      OnViolationFunc
	logger           *log.Logger

	reg       *registry
	detachers []func()
}

func New(cfg Config) *Manager {
	m := &Manager{
		enabled:          cfg.Enabled,
		bpPropertiesPush: cfg.MakeBPPropertiesPushModel,
		isAlive:          cfg.IsAlive,
		onViolation:      cfg.OnViolation,
		logger:           cfg.Logger,
		reg:              newRegistry(),
	}
	if m.onViolation == nil {
		m.onViolation = PanicOnViolation
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard, "", 0)
	}
	return m
}

func (m *Manager) IsEnabled() bool {
	return m.enabled
}

// IsPushBased tells generated code whether a property is tracked. Authored
// properties are only tracked when MakeBPPropertiesPushModel is set; drivers
// must compare untracked properties every time.
func (m *Manager) IsPushBased(authored bool) bool {
	if !m.enabled {
		return false
	}
	return !authored || m.bpPropertiesPush
}

func (m *Manager) violate(op string, key ObjectKey, id PushID, err error) *ContractViolation {
	v := &ContractViolation{Op: op, Key: key, PushID: id, Err: err}
	m.onViolation(v)
	return v
}

// Lookup returns the PushID currently assigned to key. Setters may cache it
// and use MarkDirtyByID until the next sweep.
func (m *Manager) Lookup(key ObjectKey) (PushID, bool) {
	if !m.enabled {
		return InvalidPushID, false
	}
	return m.reg.lookup(key)
}

// MarkDirty records that property idx of key changed. Objects no driver has
// registered are ignored.
func (m *Manager) MarkDirty(key ObjectKey, idx PropertyIndex) {
	if id, ok := m.Lookup(key); ok {
		m.MarkDirtyByID(id, idx)
	}
}

// MarkDirtyRange records that properties lo through hi (inclusive) changed.
func (m *Manager) MarkDirtyRange(key ObjectKey, lo, hi PropertyIndex) {
	if id, ok := m.Lookup(key); ok {
		m.MarkDirtyRangeByID(id, lo, hi)
	}
}

func (m *Manager) MarkDirtyByID(id PushID, idx PropertyIndex) {
	if !m.enabled {
		return
	}
	obj, ok := m.reg.get(id)
	if !ok {
		return
	}
	if err := obj.markDirty(idx); err != nil {
		m.violate("MarkDirty", obj.key, id, err)
	}
}

func (m *Manager) MarkDirtyRangeByID(id PushID, lo, hi PropertyIndex) {
	if !m.enabled {
		return
	}
	obj, ok := m.reg.get(id)
	if !ok {
		return
	}
	if err := obj.markDirtyRange(lo, hi); err != nil {
		m.violate("MarkDirtyRange", obj.key, id, err)
	}
}

// AddNetworkObject registers one driver's interest in key. The first call for
// a key creates its tracking state; later calls must pass the same property
// count. The returned handle must be kept until RemoveNetworkObject.
func (m *Manager) AddNetworkObject(key ObjectKey, numProperties int) (NetDriverHandle, error) {
	if !m.enabled {
		return InvalidHandle, ErrDisabled
	}
	if !key.IsValid() {
		return InvalidHandle, m.violate("AddNetworkObject", key, InvalidPushID, ErrInvalidKey)
	}
	if numProperties < 0 || numProperties > MaxProperties {
		return InvalidHandle, m.violate("AddNetworkObject", key, InvalidPushID, ErrPropertyOutOfRange)
	}

	id, err := m.reg.allocate(key, numProperties)
	if err != nil {
		return InvalidHandle, m.violate("AddNetworkObject", key, id, err)
	}
	obj, _ := m.reg.get(id)
	return NetDriverHandle{PushID: id, DriverLocalID: obj.addDriver()}, nil
}

// RemoveNetworkObject drops a driver's interest. The object's state survives
// until the next sweep even when this was the last driver. Handles whose
// object was already swept are ignored.
func (m *Manager) RemoveNetworkObject(h NetDriverHandle) {
	if !m.enabled || !h.IsValid() {
		return
	}
	obj, ok := m.reg.get(h.PushID)
	if !ok {
		m.logger.Printf("pushmodel: remove of %s ignored, object already swept", h)
		return
	}
	if !obj.removeDriver(h.DriverLocalID) {
		m.logger.Printf("pushmodel: remove of %s ignored, driver not registered on %s", h, obj.key)
	}
}

// GetDriverState pushes pending global bits to every driver of the object and
// returns the state for h. When ok is false the caller has no tracking data
// and must treat every property as dirty.
func (m *Manager) GetDriverState(h NetDriverHandle) (state *PerDriverState, ok bool) {
	if !m.enabled || !h.IsValid() {
		return nil, false
	}
	obj, ok := m.reg.get(h.PushID)
	if !ok {
		return nil, false
	}
	if !obj.issued(h.DriverLocalID) {
		m.violate("GetDriverState", obj.key, h.PushID, ErrStaleHandle)
		return nil, false
	}

	obj.flushToDrivers()
	return obj.driver(h.DriverLocalID)
}

// ObjectState returns the tracking state at id, for inspection.
func (m *Manager) ObjectState(id PushID) (*PerObjectState, bool) {
	return m.reg.get(id)
}

// PostGarbageCollect frees every object no driver is registered on and flags
// the survivors. It must run while no other manager call is in flight.
func (m *Manager) PostGarbageCollect() SweepStats {
	var (
		stats SweepStats
		dead  []PushID
	)
	m.reg.each(func(id PushID, obj *PerObjectState) {
		if !obj.HasAnyDrivers() {
			dead = append(dead, id)
			return
		}
		obj.markRecentlyCollected()
		stats.Survivors++
		if m.isAlive != nil && !m.isAlive(obj.key) {
			stats.DeadSurvivors++
			m.logger.Printf("pushmodel: %s collected with %d drivers still registered", obj.key, obj.NumDrivers())
		}
	})

	for _, id := range dead {
		m.reg.free(id)
	}
	stats.Freed = len(dead)
	m.reg.shrink()

	if stats.Freed > 0 || stats.DeadSurvivors > 0 {
		m.logger.Printf("pushmodel: sweep freed %d objects, %d survivors", stats.Freed, stats.Survivors)
	}
	return stats
}

// Stats is a point in time view of the tracking tables.
type Stats struct {
	TrackedObjects int
	Drivers        int
	Capacity       int
	PendingObjects int
	ApproxBytes    int
}

func (m *Manager) Stats() Stats {
	s := Stats{
		TrackedObjects: m.reg.live,
		Capacity:       len(m.reg.slots),
		ApproxBytes:    cap(m.reg.slots)*8 + len(m.reg.keyToID)*16,
	}
	m.reg.each(func(_ PushID, obj *PerObjectState) {
		s.Drivers += obj.NumDrivers()
		if obj.HasPendingDirty() {
			s.PendingObjects++
		}
		s.ApproxBytes += obj.sizeBytes()
	})
	return s
}
