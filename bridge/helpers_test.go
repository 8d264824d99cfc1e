package bridge_test

import (
	"github.com/pkg/errors"
	"github.com/plus3/tossbridge/bridge"
	"github.com/plus3/tossbridge/engine"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeNative is a scripted native side. It never fires callbacks on its own; tests fire
// the captured callback sets directly, including after release, to simulate a native
// engine with lifetime bugs.
type fakeNative struct {
	next        uint32
	createErr   error
	registerErr error
	registered  map[engine.Handle]engine.Callbacks
	releases    map[engine.Handle]int
	children    map[engine.Handle][]engine.Handle
}

func newFakeNative() *fakeNative {
	return &fakeNative{
		registered: make(map[engine.Handle]engine.Callbacks),
		releases:   make(map[engine.Handle]int),
		children:   make(map[engine.Handle][]engine.Handle),
	}
}

func (f *fakeNative) CreateNativeHandle(typeName string) (engine.Handle, error) {
	if f.createErr != nil {
		return engine.InvalidHandle, f.createErr
	}
	f.next++
	return engine.NewHandle(f.next, 1), nil
}

func (f *fakeNative) CreateGameObject(name string) (engine.Handle, error) {
	return f.CreateNativeHandle(name)
}

func (f *fakeNative) DestroyNativeHandle(h engine.Handle) error {
	f.releases[h]++
	return nil
}

func (f *fakeNative) RegisterLifecycleCallbacks(h engine.Handle, cb engine.Callbacks) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	if _, ok := f.registered[h]; ok {
		return errors.Wrapf(engine.ErrAlreadyRegistered, "register %s", h)
	}
	f.registered[h] = cb
	return nil
}

func (f *fakeNative) AddChildComponent(parent engine.Handle, child engine.Handle) error {
	f.children[parent] = append(f.children[parent], child)
	return nil
}

func (f *fakeNative) Alive(h engine.Handle) bool {
	return h.Valid() && h.Index() >= 1 && h.Index() <= f.next && f.releases[h] == 0
}

func (f *fakeNative) totalReleases() int {
	n := 0
	for _, c := range f.releases {
		n += c
	}
	return n
}

// recordingSink records hooks and whether the component's handle was valid during
// OnDestroy.
type recordingSink struct {
	bridge.Base
	events               []string
	deltas               []float32
	handleValidOnDestroy bool
	onUpdate             func()
}

func (s *recordingSink) OnCreate() {
	s.events = append(s.events, "created")
}

func (s *recordingSink) OnUpdate(dt float32) {
	s.events = append(s.events, "updated")
	s.deltas = append(s.deltas, dt)
	if s.onUpdate != nil {
		s.onUpdate()
	}
}

func (s *recordingSink) OnFixedUpdate(dt float32) {
	s.events = append(s.events, "fixed")
}

func (s *recordingSink) OnDestroy() {
	s.events = append(s.events, "destroyed")
	s.handleValidOnDestroy = s.Component().Handle().Valid()
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func newEngine(mutate ...func(*engine.Config)) *engine.Engine {
	cfg := engine.DefaultConfig()
	cfg.FixedTimeStep = 1
	for _, m := range mutate {
		m(&cfg)
	}
	e, err := engine.New(cfg, nil)
	if err != nil {
		panic(err)
	}
	return e
}
