package engine_test

import (
	"fmt"
	"testing"

	"github.com/plus3/tossbridge/engine"
	"github.com/stretchr/testify/require"
)

// recorder collects lifecycle events for one or more handles in call order.
type recorder struct {
	events []string
}

func (r *recorder) callbacks(name string) engine.Callbacks {
	return engine.Callbacks{
		OnCreate:      func() { r.events = append(r.events, name+":create") },
		OnUpdate:      func(dt float32) { r.events = append(r.events, fmt.Sprintf("%s:update(%g)", name, dt)) },
		OnFixedUpdate: func(dt float32) { r.events = append(r.events, fmt.Sprintf("%s:fixed(%g)", name, dt)) },
		OnDestroy:     func() { r.events = append(r.events, name+":destroy") },
	}
}

func (r *recorder) reset() {
	r.events = nil
}

func newTestEngine(t *testing.T, mutate ...func(*engine.Config)) *engine.Engine {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.FixedTimeStep = 0.25
	for _, m := range mutate {
		m(&cfg)
	}
	e, err := engine.New(cfg, nil)
	require.NoError(t, err)
	return e
}

func spawn(t *testing.T, e *engine.Engine, r *recorder, name string) engine.Handle {
	t.Helper()
	h, err := e.CreateNativeHandle(name)
	require.NoError(t, err)
	require.NoError(t, e.RegisterLifecycleCallbacks(h, r.callbacks(name)))
	return h
}
