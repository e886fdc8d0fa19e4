// Package pushmodel tracks which replicated properties may have changed since
// each net driver last looked at an object.
//
// Property setters call MarkDirty, which only touches one global bit set per
// object. Nothing is pushed to drivers at that point. When a driver asks for
// its view with GetDriverState, the global bits are ORed into every registered
// driver of that object and then cleared, so a property marked once shows up
// exactly once for every driver no matter which of them reads first.
//
//	m := pushmodel.New(pushmodel.DefaultConfig())
//	h, err := m.AddNetworkObject(key, numProperties)
//	if err != nil {
//		return err
//	}
//
//	m.MarkDirty(key, 3)
//
//	if state, ok := m.GetDriverState(h); ok {
//		state.DirtyProperties().ForEach(func(i int) bool {
//			// compare and send property i
//			state.ClearProperty(pushmodel.PropertyIndex(i))
//			return true
//		})
//	} else {
//		// no tracking data, compare everything
//	}
//
// Tracking state for an object outlives its last driver until the next
// PostGarbageCollect, so a driver that detaches and reattaches between sweeps
// gets the same PushID back along with any bits nobody read yet.
//
// A Manager performs no locking. All calls must come from the replication
// tick, and PostGarbageCollect only from a point where nothing else is using
// the manager.
package pushmodel
