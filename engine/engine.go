// Package engine is an in-process stand-in for the native engine that component proxies
// bind to. It owns handles in a generation-checked arena, keeps each handle's registered
// lifecycle callbacks, and invokes them from a per-frame schedule.
package engine

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Kind distinguishes the two kinds of native objects.
type Kind uint8

const (
	KindComponent Kind = iota + 1
	KindGameObject
)

func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindGameObject:
		return "gameobject"
	}
	return "unknown"
}

type record struct {
	kind      Kind
	typeName  string
	parent    Handle
	children  []Handle
	created   bool
	releasing bool
}

// HandleInfo is a read-only snapshot of one live handle.
type HandleInfo struct {
	Handle     Handle
	Kind       Kind
	TypeName   string
	Parent     Handle
	Children   int
	Registered bool
	Created    bool
}

type counters struct {
	frames         int64
	fixedSteps     int64
	released       int64
	callbackPanics int64
	droppedSteps   int64
}

// Engine owns native handles and drives their lifecycle callbacks.
// It is not safe for concurrent use; all calls must come from the thread running Tick.
type Engine struct {
	cfg       Config
	log       *zap.Logger
	slots     *slotArena[record]
	callbacks *intmap.Map[Handle, *Callbacks]

	// scripted holds registered handles in registration order; released entries are
	// pruned at the end of each tick.
	scripted []Handle
	pending  []Handle

	systems     []System
	systemStats []*statsInternal
	phaseStats  [phaseCount]*statsInternal
	commands    *Commands

	accumulator float64
	counters    counters
}

// New creates an engine. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid engine config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		cfg:       cfg,
		log:       logger.Named("engine"),
		slots:     newSlotArena[record](),
		callbacks: intmap.New[Handle, *Callbacks](256),
		commands:  newCommands(),
	}
	for i := range e.phaseStats {
		e.phaseStats[i] = newStatsInternal(phaseNames[i])
	}
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// CreateNativeHandle allocates a component handle for a script of the given type.
func (e *Engine) CreateNativeHandle(typeName string) (Handle, error) {
	return e.allocate(KindComponent, typeName)
}

// CreateGameObject allocates a GameObject handle that components can be parented to.
func (e *Engine) CreateGameObject(name string) (Handle, error) {
	return e.allocate(KindGameObject, name)
}

func (e *Engine) allocate(kind Kind, typeName string) (Handle, error) {
	if e.cfg.MaxHandles > 0 && e.slots.Len() >= e.cfg.MaxHandles {
		return InvalidHandle, errors.Wrapf(ErrCapacity, "allocate %s %q with %d live handles", kind, typeName, e.slots.Len())
	}

	h := e.slots.Insert(record{kind: kind, typeName: typeName})
	e.log.Debug("handle allocated", zap.Stringer("handle", h), zap.Stringer("kind", kind), zap.String("type", typeName))
	return h, nil
}

// RegisterLifecycleCallbacks binds cb to the component handle h. Each handle accepts
// exactly one registration. OnCreate fires at the start of the next Tick.
func (e *Engine) RegisterLifecycleCallbacks(h Handle, cb Callbacks) error {
	rec := e.slots.Get(h)
	if rec == nil || rec.releasing {
		return errors.Wrapf(ErrStaleHandle, "register callbacks on %s", h)
	}
	if rec.kind != KindComponent {
		return errors.Wrapf(ErrWrongKind, "register callbacks on %s %s", rec.kind, h)
	}
	if !cb.Complete() {
		return errors.Wrapf(ErrIncompleteCallbacks, "register callbacks on %s", h)
	}
	if _, ok := e.callbacks.Get(h); ok {
		return errors.Wrapf(ErrAlreadyRegistered, "register callbacks on %s", h)
	}

	stored := cb
	e.callbacks.Put(h, &stored)
	e.scripted = append(e.scripted, h)
	e.pending = append(e.pending, h)
	return nil
}

// DestroyNativeHandle releases h. A GameObject releases its children first. A component
// that already received OnCreate receives OnDestroy exactly once before its callbacks are
// dropped. Calls for a handle whose release is already in progress are ignored.
func (e *Engine) DestroyNativeHandle(h Handle) error {
	rec := e.slots.Get(h)
	if rec == nil {
		return errors.Wrapf(ErrStaleHandle, "destroy %s", h)
	}
	if rec.releasing {
		return nil
	}
	e.release(h, rec)
	return nil
}

func (e *Engine) release(h Handle, rec *record) {
	rec.releasing = true
	kind := rec.kind

	if kind == KindGameObject {
		for _, child := range slices.Clone(rec.children) {
			if childRec := e.slots.Get(child); childRec != nil && !childRec.releasing {
				e.release(child, childRec)
			}
		}
	}

	if cb, ok := e.callbacks.Get(h); ok {
		if rec.created {
			e.invoke(h, "destroy", cb.OnDestroy)
		}
		e.callbacks.Del(h)
	}

	if rec.parent.Valid() {
		if parent := e.slots.Get(rec.parent); parent != nil {
			parent.children = slices.DeleteFunc(parent.children, func(c Handle) bool { return c == h })
		}
	}

	e.slots.Remove(h)
	e.counters.released++
	e.log.Debug("handle released", zap.Stringer("handle", h), zap.Stringer("kind", kind))
}

// AddChildComponent parents the component child to the GameObject parent.
func (e *Engine) AddChildComponent(parent Handle, child Handle) error {
	p := e.slots.Get(parent)
	if p == nil || p.releasing {
		return errors.Wrapf(ErrStaleHandle, "add child to %s", parent)
	}
	if p.kind != KindGameObject {
		return errors.Wrapf(ErrWrongKind, "add child to %s %s", p.kind, parent)
	}

	c := e.slots.Get(child)
	if c == nil || c.releasing {
		return errors.Wrapf(ErrStaleHandle, "add child %s", child)
	}
	if c.kind != KindComponent {
		return errors.Wrapf(ErrWrongKind, "add %s %s as child", c.kind, child)
	}
	if c.parent.Valid() {
		return errors.Wrapf(ErrAlreadyParented, "add child %s to %s, parent is %s", child, parent, c.parent)
	}

	c.parent = parent
	p.children = append(p.children, child)
	return nil
}

// Alive reports whether h refers to a live handle.
func (e *Engine) Alive(h Handle) bool {
	rec := e.slots.Get(h)
	return rec != nil && !rec.releasing
}

// Len returns the number of live handles of both kinds.
func (e *Engine) Len() int {
	return e.slots.Len()
}

// Children returns a copy of the component handles parented to the GameObject h.
func (e *Engine) Children(h Handle) []Handle {
	rec := e.slots.Get(h)
	if rec == nil {
		return nil
	}
	return slices.Clone(rec.children)
}

// Info returns a snapshot of h.
func (e *Engine) Info(h Handle) (HandleInfo, bool) {
	rec := e.slots.Get(h)
	if rec == nil {
		return HandleInfo{}, false
	}
	return e.info(h, rec), true
}

// Handles yields a snapshot of every live handle in slot order.
func (e *Engine) Handles() iter.Seq[HandleInfo] {
	return func(yield func(HandleInfo) bool) {
		for h, rec := range e.slots.Iter() {
			if !yield(e.info(h, rec)) {
				return
			}
		}
	}
}

func (e *Engine) info(h Handle, rec *record) HandleInfo {
	_, registered := e.callbacks.Get(h)
	return HandleInfo{
		Handle:     h,
		Kind:       rec.kind,
		TypeName:   rec.typeName,
		Parent:     rec.parent,
		Children:   len(rec.children),
		Registered: registered,
		Created:    rec.created,
	}
}

// invoke runs one callback, recovering and logging a panic so one faulty script cannot
// stop the frame.
func (e *Engine) invoke(h Handle, event string, fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			e.counters.callbackPanics++
			e.log.Error("lifecycle callback panicked",
				zap.Stringer("handle", h),
				zap.String("event", event),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
	}()

	fn()
	return false
}
