package bridge

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/plus3/tossbridge/engine"
)

var (
	// ErrUnknownScript is returned when instantiating a script type that was never registered.
	ErrUnknownScript = errors.New("bridge: unknown script type")
	// ErrDestroyed is returned when operating on a destroyed Component or GameObject.
	ErrDestroyed = errors.New("bridge: destroyed")
)

// HandleCreationError reports that the native side could not allocate a handle.
type HandleCreationError struct {
	TypeName string
	Err      error
}

func (e *HandleCreationError) Error() string {
	return fmt.Sprintf("bridge: create native handle for %q: %v", e.TypeName, e.Err)
}

func (e *HandleCreationError) Unwrap() error {
	return e.Err
}

// RegistrationError reports that the native side refused a callback registration.
type RegistrationError struct {
	TypeName string
	Handle   engine.Handle
	Err      error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("bridge: register callbacks for %q on %s: %v", e.TypeName, e.Handle, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// ProtocolViolation describes a callback that arrived in a state that does not accept it.
// Violations are logged and counted, never returned.
type ProtocolViolation struct {
	TypeName string
	Handle   engine.Handle
	Event    Event
	State    State
}

func (e *ProtocolViolation) Error() string {
	return fmt.Sprintf("bridge: protocol violation: %s on %q component %s in state %s", e.Event, e.TypeName, e.Handle, e.State)
}
