package engine

import "fmt"

// Handle identifies native-side state. The upper 32 bits carry the slot generation and the
// lower 32 bits the slot index, so a handle to a released slot never matches the slot's
// next occupant.
type Handle uint64

// InvalidHandle is the zero handle. No live slot ever has generation 0.
const InvalidHandle Handle = 0

// NewHandle creates a Handle from a slot index and generation.
func NewHandle(index uint32, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the handle
func (h Handle) Index() uint32 {
	return uint32(h & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the handle
func (h Handle) Generation() uint32 {
	return uint32(h >> 32)
}

// Valid reports whether h is not the invalid sentinel. It says nothing about liveness;
// use Engine.Alive for that.
func (h Handle) Valid() bool {
	return h.Generation() != 0
}

func (h Handle) String() string {
	if !h.Valid() {
		return "handle(invalid)"
	}
	return fmt.Sprintf("handle(%d#%d)", h.Index(), h.Generation())
}
