package pushmodel

// CollectHook is implemented by the embedder's garbage collector. fn must be
// invoked once after every collection pass, while nothing else touches the
// manager. The returned cancel function unregisters fn.
type CollectHook interface {
	OnPostCollect(fn func()) (cancel func())
}

// SweepStats summarises one PostGarbageCollect pass.
type SweepStats struct {
	Freed     int
	Survivors int
	// DeadSurvivors counts survivors whose key Config.IsAlive reports dead,
	// i.e. objects collected while a driver still holds a handle.
	DeadSurvivors int
}

// Attach registers PostGarbageCollect with hook. Calling the returned function,
// or Close, releases the registration.
func (m *Manager) Attach(hook CollectHook) (detach func()) {
	cancel := hook.OnPostCollect(func() {
		m.PostGarbageCollect()
	})

	released := false
	detach = func() {
		if released {
			return
		}
		released = true
		cancel()
	}
	m.detachers = append(m.detachers, detach)
	return detach
}

// Close releases every collector registration made through Attach.
func (m *Manager) Close() {
	for _, detach := range m.detachers {
		detach()
	}
	m.detachers = nil
}
