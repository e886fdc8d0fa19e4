package pushmodel

// registry maps object keys to PushIDs backed by a sparse slice. A slot is
// only vacated by free, which the manager calls from a sweep for objects with
// no drivers, so a vacated slot can never be referenced by a live handle.
type registry struct {
	slots    []*PerObjectState
	keyToID  map[ObjectKey]PushID
	live     int
	freeHint int

	// driverHighWater is the first DriverLocalID a newly allocated object may
	// issue. Raised whenever an object is freed so a later occupant of the
	// same slot never hands out an id an old handle still carries.
	driverHighWater DriverLocalID
}

func newRegistry() *registry {
	return &registry{
		keyToID: make(map[ObjectKey]PushID),
	}
}

func (r *registry) lookup(key ObjectKey) (PushID, bool) {
	id, ok := r.keyToID[key]
	return id, ok
}

func (r *registry) get(id PushID) (*PerObjectState, bool) {
	if id < 0 || int(id) >= len(r.slots) {
		return nil, false
	}
	o := r.slots[id]
	return o, o != nil
}

// allocate returns the existing PushID for key after checking its schema, or
// stores a new object at the lowest free slot.
func (r *registry) allocate(key ObjectKey, numProperties int) (PushID, error) {
	if id, ok := r.keyToID[key]; ok {
		if r.slots[id].numProperties != numProperties {
			return id, ErrSchemaMismatch
		}
		return id, nil
	}

	slot := r.findFree()
	obj := newObjectState(key, numProperties, r.driverHighWater)
	if slot == len(r.slots) {
		r.slots = append(r.slots, obj)
	} else {
		r.slots[slot] = obj
	}
	r.freeHint = slot + 1
	r.live++

	id := PushID(slot)
	r.keyToID[key] = id
	return id, nil
}

func (r *registry) findFree() int {
	for i := r.freeHint; i < len(r.slots); i++ {
		if r.slots[i] == nil {
			return i
		}
	}
	return len(r.slots)
}

func (r *registry) free(id PushID) {
	obj, ok := r.get(id)
	if !ok {
		return
	}
	if obj.nextDriverID > r.driverHighWater {
		r.driverHighWater = obj.nextDriverID
	}
	delete(r.keyToID, obj.key)
	r.slots[id] = nil
	r.live--
	if int(id) < r.freeHint {
		r.freeHint = int(id)
	}
}

// shrink drops trailing vacant slots, releases excess capacity and resets the
// allocation hint to the lowest free slot.
func (r *registry) shrink() {
	n := len(r.slots)
	for n > 0 && r.slots[n-1] == nil {
		n--
	}
	clear(r.slots[n:])
	r.slots = r.slots[:n]
	if cap(r.slots) > 2*n {
		shrunk := make([]*PerObjectState, n)
		copy(shrunk, r.slots)
		r.slots = shrunk
	}

	r.freeHint = 0
	r.freeHint = r.findFree()
}

func (r *registry) each(fn func(id PushID, obj *PerObjectState)) {
	for i, obj := range r.slots {
		if obj != nil {
			fn(PushID(i), obj)
		}
	}
}
