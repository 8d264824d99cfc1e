package engine

import "github.com/pkg/errors"

var (
	// ErrCapacity is returned when the engine cannot allocate another handle.
	ErrCapacity = errors.New("engine: handle capacity exhausted")
	// ErrStaleHandle is returned for handles that are invalid or already released.
	ErrStaleHandle = errors.New("engine: stale handle")
	// ErrWrongKind is returned when a handle of the wrong kind is passed, e.g. a component
	// where a GameObject is expected.
	ErrWrongKind = errors.New("engine: wrong handle kind")
	// ErrAlreadyRegistered is returned when callbacks are registered twice for one handle.
	ErrAlreadyRegistered = errors.New("engine: callbacks already registered")
	// ErrIncompleteCallbacks is returned when a callback set has a nil entry point.
	ErrIncompleteCallbacks = errors.New("engine: incomplete callback set")
	// ErrAlreadyParented is returned when a component is added to a second GameObject.
	ErrAlreadyParented = errors.New("engine: component already has a parent")
)
