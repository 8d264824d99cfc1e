package bridge

// State is the lifecycle state of a Component.
type State uint8

const (
	// StateUninitialized is the state after construction, before the engine fires OnCreate.
	StateUninitialized State = iota
	StateCreated
	StateUpdated
	// StateDestroyed is terminal.
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCreated:
		return "created"
	case StateUpdated:
		return "updated"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Event is a lifecycle event delivered by the native side.
type Event uint8

const (
	EventCreate Event = iota
	EventUpdate
	EventFixedUpdate
	EventDestroy
)

func (e Event) String() string {
	switch e {
	case EventCreate:
		return "create"
	case EventUpdate:
		return "update"
	case EventFixedUpdate:
		return "fixed_update"
	case EventDestroy:
		return "destroy"
	}
	return "unknown"
}

// accepts reports whether ev is a legal transition out of s.
func (s State) accepts(ev Event) bool {
	switch s {
	case StateUninitialized:
		return ev == EventCreate
	case StateCreated, StateUpdated:
		return ev != EventCreate
	}
	return false
}
