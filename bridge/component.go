package bridge

import (
	"github.com/pkg/errors"
	"github.com/plus3/tossbridge/engine"
	"github.com/plus3/tossbridge/logging"
	"go.uber.org/zap"
)

// Component is the managed proxy for one native component handle. It owns the callback
// set registered for the handle and forwards each native call to its LifecycleSink.
//
// Lifecycle: Uninitialized -> Created -> Updated* -> Destroyed. Calls that do not fit the
// current state are protocol violations: they are logged, counted and dropped.
type Component struct {
	native   Native
	sink     LifecycleSink
	log      *zap.Logger
	typeName string

	handle    engine.Handle
	state     State
	releasing bool
	callbacks engine.Callbacks

	violations   int
	updates      uint64
	fixedUpdates uint64
}

// Construct allocates a native handle for typeName and binds sink to it. A nil sink gets
// the logging defaults of Base. A nil logger disables logging.
func Construct(native Native, typeName string, sink LifecycleSink, logger *zap.Logger) (*Component, error) {
	h, err := native.CreateNativeHandle(typeName)
	if err != nil {
		return nil, &HandleCreationError{TypeName: typeName, Err: err}
	}
	if !h.Valid() {
		return nil, &HandleCreationError{TypeName: typeName, Err: errors.New("native side returned the invalid handle")}
	}

	c, err := bind(native, h, typeName, sink, logger)
	if err != nil {
		if derr := native.DestroyNativeHandle(h); derr != nil {
			c.log.Warn("release after failed registration", zap.Error(derr))
		}
		return nil, err
	}
	return c, nil
}

// Attach binds sink to a handle that the native side already created, e.g. one allocated
// by a host GameObject. It fails with a RegistrationError if the handle is stale or
// already bound.
func Attach(native Native, h engine.Handle, typeName string, sink LifecycleSink, logger *zap.Logger) (*Component, error) {
	c, err := bind(native, h, typeName, sink, logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// bind always returns a component so callers can log through it, even on error.
func bind(native Native, h engine.Handle, typeName string, sink LifecycleSink, logger *zap.Logger) (*Component, error) {
	if sink == nil {
		sink = &Base{}
	}

	c := &Component{
		native:   native,
		sink:     sink,
		typeName: typeName,
		handle:   h,
		state:    StateUninitialized,
		log: logging.OrNop(logger).Named("bridge").With(
			zap.String("component", typeName),
			zap.Stringer("handle", h),
		),
	}
	c.callbacks = engine.Callbacks{
		OnCreate:      c.onCreate,
		OnUpdate:      c.onUpdate,
		OnFixedUpdate: c.onFixedUpdate,
		OnDestroy:     c.onDestroy,
	}

	if err := native.RegisterLifecycleCallbacks(h, c.callbacks); err != nil {
		return c, &RegistrationError{TypeName: typeName, Handle: h, Err: err}
	}

	if b, ok := sink.(binder); ok {
		b.bind(c)
	}
	c.log.Debug("component bound")
	return c, nil
}

// Destroy asks the native side to release the handle and invalidates it. It is
// idempotent, and a call made while the release is in progress (e.g. from OnDestroy) is
// a no-op. If the engine had already fired OnCreate it fires OnDestroy during the release;
// otherwise the component goes straight to StateDestroyed without hooks.
func (c *Component) Destroy() {
	if c.state == StateDestroyed || c.releasing {
		return
	}
	c.releasing = true

	if err := c.native.DestroyNativeHandle(c.handle); err != nil {
		c.log.Warn("native release failed", zap.Error(err))
	}

	c.state = StateDestroyed
	if c.handle.Valid() {
		c.release()
	}
}

func (c *Component) onCreate() {
	if !c.admit(EventCreate) {
		return
	}
	c.state = StateCreated
	c.sink.OnCreate()
}

func (c *Component) onUpdate(deltaTime float32) {
	if !c.admit(EventUpdate) {
		return
	}
	c.state = StateUpdated
	c.updates++
	c.sink.OnUpdate(deltaTime)
}

func (c *Component) onFixedUpdate(fixedDeltaTime float32) {
	if !c.admit(EventFixedUpdate) {
		return
	}
	c.state = StateUpdated
	c.fixedUpdates++
	c.sink.OnFixedUpdate(fixedDeltaTime)
}

// onDestroy keeps the handle valid while the hook runs. The release also runs when the
// hook panics.
func (c *Component) onDestroy() {
	if !c.admit(EventDestroy) {
		return
	}
	c.state = StateDestroyed
	defer c.release()
	c.sink.OnDestroy()
}

func (c *Component) release() {
	c.handle = engine.InvalidHandle
	c.callbacks = engine.Callbacks{}
	c.log.Debug("component released")
}

func (c *Component) admit(ev Event) bool {
	if c.state.accepts(ev) {
		return true
	}

	c.violations++
	c.log.Error("lifecycle protocol violation", zap.Error(&ProtocolViolation{
		TypeName: c.typeName,
		Handle:   c.handle,
		Event:    ev,
		State:    c.state,
	}))
	return false
}

// Handle returns the native handle, or engine.InvalidHandle once destroyed.
func (c *Component) Handle() engine.Handle {
	return c.handle
}

// TypeName returns the script type name the component was constructed with.
func (c *Component) TypeName() string {
	return c.typeName
}

// State returns the current lifecycle state.
func (c *Component) State() State {
	return c.state
}

// Sink returns the logic object receiving the hooks.
func (c *Component) Sink() LifecycleSink {
	return c.sink
}

// Violations returns how many protocol violations were rejected.
func (c *Component) Violations() int {
	return c.violations
}

// Updates returns how many OnUpdate calls were dispatched.
func (c *Component) Updates() uint64 {
	return c.updates
}

// FixedUpdates returns how many OnFixedUpdate calls were dispatched.
func (c *Component) FixedUpdates() uint64 {
	return c.fixedUpdates
}
