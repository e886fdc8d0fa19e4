package pushmodel

import (
	"cmp"
	"fmt"
)

// ObjectKey identifies a replicated object without owning it. Index and Serial
// are supplied by the embedder (typically a weak object index plus the serial
// that disambiguates reuse of that index). The core only hashes and compares
// keys, it never resolves them.
type ObjectKey struct {
	Index  uint32
	Serial uint32
}

// IsValid reports whether the key was issued by an embedder. The zero key is
// reserved.
func (k ObjectKey) IsValid() bool {
	return k != ObjectKey{}
}

// Compare orders keys by Index, then Serial.
func (k ObjectKey) Compare(other ObjectKey) int {
	if c := cmp.Compare(k.Index, other.Index); c != 0 {
		return c
	}
	return cmp.Compare(k.Serial, other.Serial)
}

func (k ObjectKey) String() string {
	return fmt.Sprintf("%d:%d", k.Index, k.Serial)
}

// PushID is the registry slot of a tracked object.
type PushID int32

const InvalidPushID PushID = -1

func (id PushID) IsValid() bool {
	return id >= 0
}

// PropertyIndex is the replicated field number inside an object's schema.
type PropertyIndex uint16

// DriverLocalID identifies one consumer of one tracked object.
type DriverLocalID uint32

// NetDriverHandle is the only token a net driver keeps for an object it
// replicates.
type NetDriverHandle struct {
	PushID        PushID
	DriverLocalID DriverLocalID
}

// InvalidHandle is returned when an object could not be registered.
var InvalidHandle = NetDriverHandle{PushID: InvalidPushID}

func (h NetDriverHandle) IsValid() bool {
	return h.PushID.IsValid()
}

func (h NetDriverHandle) String() string {
	if !h.IsValid() {
		return "invalid"
	}
	return fmt.Sprintf("push:%d/driver:%d", h.PushID, h.DriverLocalID)
}
