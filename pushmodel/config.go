package pushmodel

import "log"

// Config is read once by New.
type Config struct {
	// Enabled turns the whole subsystem on. When false nothing is tracked and
	// GetDriverState always reports absent, so drivers compare everything.
	Enabled bool

	// MakeBPPropertiesPushModel forces properties declared by the authored
	// (blueprint) path into push-based tracking as well.
	MakeBPPropertiesPushModel bool

	// IsAlive optionally tells whether the object behind a key still exists.
	// Only sweep diagnostics consult it.
	IsAlive func(ObjectKey) bool

	// OnViolation receives contract violations. Defaults to PanicOnViolation.
	OnViolation OnViolationFunc

	// Logger receives sweep diagnostics and tolerated no-ops. Nil discards.
	Logger *log.Logger
}

func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		OnViolation: PanicOnViolation,
	}
}
