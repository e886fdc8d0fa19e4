package pushmodel

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaMismatch indicates an object was re-registered with a different property count.
	ErrSchemaMismatch = errors.New("pushmodel: property count does not match tracked schema")

	// ErrPropertyOutOfRange indicates a property index at or beyond the object's property count.
	ErrPropertyOutOfRange = errors.New("pushmodel: property index out of range")

	// ErrInvalidRange indicates a range whose start is after its end.
	ErrInvalidRange = errors.New("pushmodel: invalid property range")

	// ErrStaleHandle indicates a handle that outlived the object it was issued for.
	ErrStaleHandle = errors.New("pushmodel: handle refers to a reclaimed object")

	// ErrInvalidKey indicates the zero ObjectKey was passed in.
	ErrInvalidKey = errors.New("pushmodel: invalid object key")

	// ErrDisabled is returned by AddNetworkObject when push model is turned off.
	ErrDisabled = errors.New("pushmodel: push model is disabled")
)

// ContractViolation describes misuse that means the caller's schema and the
// tracked state have desynchronized.
type ContractViolation struct {
	Op     string
	Key    ObjectKey
	PushID PushID
	Err    error
}

func (v *ContractViolation) Error() string {
	return fmt.Sprintf("%s (op=%s key=%s push=%d)", v.Err, v.Op, v.Key, v.PushID)
}

func (v *ContractViolation) Unwrap() error {
	return v.Err
}

// OnViolationFunc receives every contract violation. When it returns, the
// offending operation is abandoned without touching any state.
type OnViolationFunc func(v *ContractViolation)

// PanicOnViolation is the default handler.
func PanicOnViolation(v *ContractViolation) {
	panic(v)
}
