package engine_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/plus3/tossbridge/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.FixedTimeStep = 0
	_, err := engine.New(cfg, nil)
	assert.Error(t, err)
}

func TestCreateNativeHandle(t *testing.T) {
	t.Run("allocates live component handles", func(t *testing.T) {
		e := newTestEngine(t)
		h, err := e.CreateNativeHandle("Ship")
		require.NoError(t, err)

		assert.True(t, h.Valid())
		assert.True(t, e.Alive(h))

		info, ok := e.Info(h)
		require.True(t, ok)
		assert.Equal(t, engine.KindComponent, info.Kind)
		assert.Equal(t, "Ship", info.TypeName)
		assert.False(t, info.Registered)
		assert.False(t, info.Created)
	})

	t.Run("capacity exhaustion", func(t *testing.T) {
		e := newTestEngine(t, func(c *engine.Config) { c.MaxHandles = 2 })
		_, err := e.CreateNativeHandle("a")
		require.NoError(t, err)
		_, err = e.CreateGameObject("b")
		require.NoError(t, err)

		h, err := e.CreateNativeHandle("c")
		assert.True(t, errors.Is(err, engine.ErrCapacity))
		assert.Equal(t, engine.InvalidHandle, h)
	})
}

func TestRegisterLifecycleCallbacks(t *testing.T) {
	r := &recorder{}

	t.Run("twice fails", func(t *testing.T) {
		e := newTestEngine(t)
		h := spawn(t, e, r, "a")
		err := e.RegisterLifecycleCallbacks(h, r.callbacks("a"))
		assert.True(t, errors.Is(err, engine.ErrAlreadyRegistered))
	})

	t.Run("incomplete set fails", func(t *testing.T) {
		e := newTestEngine(t)
		h, err := e.CreateNativeHandle("a")
		require.NoError(t, err)

		cb := r.callbacks("a")
		cb.OnFixedUpdate = nil
		err = e.RegisterLifecycleCallbacks(h, cb)
		assert.True(t, errors.Is(err, engine.ErrIncompleteCallbacks))
	})

	t.Run("stale handle fails", func(t *testing.T) {
		e := newTestEngine(t)
		h, err := e.CreateNativeHandle("a")
		require.NoError(t, err)
		require.NoError(t, e.DestroyNativeHandle(h))

		err = e.RegisterLifecycleCallbacks(h, r.callbacks("a"))
		assert.True(t, errors.Is(err, engine.ErrStaleHandle))
	})

	t.Run("game object handle fails", func(t *testing.T) {
		e := newTestEngine(t)
		h, err := e.CreateGameObject("root")
		require.NoError(t, err)

		err = e.RegisterLifecycleCallbacks(h, r.callbacks("root"))
		assert.True(t, errors.Is(err, engine.ErrWrongKind))
	})
}

func TestDestroyNativeHandle(t *testing.T) {
	t.Run("fires destroy once for created handles", func(t *testing.T) {
		r := &recorder{}
		e := newTestEngine(t)
		h := spawn(t, e, r, "a")
		e.Tick(0)

		require.NoError(t, e.DestroyNativeHandle(h))
		err := e.DestroyNativeHandle(h)
		assert.True(t, errors.Is(err, engine.ErrStaleHandle))

		assert.Equal(t, []string{"a:create", "a:update(0)", "a:destroy"}, r.events)
		assert.False(t, e.Alive(h))
		assert.Equal(t, 0, e.Len())
	})

	t.Run("no destroy before create", func(t *testing.T) {
		r := &recorder{}
		e := newTestEngine(t)
		h := spawn(t, e, r, "a")

		require.NoError(t, e.DestroyNativeHandle(h))
		e.Tick(0)
		assert.Empty(t, r.events)
	})

	t.Run("reentrant destroy from on destroy", func(t *testing.T) {
		e := newTestEngine(t)
		h, err := e.CreateNativeHandle("a")
		require.NoError(t, err)

		destroys := 0
		var nested error
		cb := engine.Callbacks{
			OnCreate:      func() {},
			OnUpdate:      func(float32) {},
			OnFixedUpdate: func(float32) {},
			OnDestroy: func() {
				destroys++
				nested = e.DestroyNativeHandle(h)
			},
		}
		require.NoError(t, e.RegisterLifecycleCallbacks(h, cb))
		e.Tick(0)

		require.NoError(t, e.DestroyNativeHandle(h))
		assert.NoError(t, nested)
		assert.Equal(t, 1, destroys)
	})

	t.Run("slot reuse keeps old handle stale", func(t *testing.T) {
		r := &recorder{}
		e := newTestEngine(t)
		old := spawn(t, e, r, "old")
		require.NoError(t, e.DestroyNativeHandle(old))

		fresh := spawn(t, e, r, "fresh")
		assert.Equal(t, old.Index(), fresh.Index())
		assert.False(t, e.Alive(old))
		assert.True(t, e.Alive(fresh))
		assert.True(t, errors.Is(e.DestroyNativeHandle(old), engine.ErrStaleHandle))
	})
}

func TestGameObjectHierarchy(t *testing.T) {
	t.Run("add child and destroy parent", func(t *testing.T) {
		r := &recorder{}
		e := newTestEngine(t)
		root, err := e.CreateGameObject("root")
		require.NoError(t, err)

		a := spawn(t, e, r, "a")
		b := spawn(t, e, r, "b")
		require.NoError(t, e.AddChildComponent(root, a))
		require.NoError(t, e.AddChildComponent(root, b))
		assert.Equal(t, []engine.Handle{a, b}, e.Children(root))

		info, ok := e.Info(a)
		require.True(t, ok)
		assert.Equal(t, root, info.Parent)

		e.Tick(0)
		r.reset()

		require.NoError(t, e.DestroyNativeHandle(root))
		assert.Equal(t, []string{"a:destroy", "b:destroy"}, r.events)
		assert.Equal(t, 0, e.Len())
	})

	t.Run("destroying a child detaches it", func(t *testing.T) {
		r := &recorder{}
		e := newTestEngine(t)
		root, err := e.CreateGameObject("root")
		require.NoError(t, err)
		a := spawn(t, e, r, "a")
		require.NoError(t, e.AddChildComponent(root, a))

		require.NoError(t, e.DestroyNativeHandle(a))
		assert.Empty(t, e.Children(root))
	})

	t.Run("errors", func(t *testing.T) {
		r := &recorder{}
		e := newTestEngine(t)
		root, err := e.CreateGameObject("root")
		require.NoError(t, err)
		other, err := e.CreateGameObject("other")
		require.NoError(t, err)
		a := spawn(t, e, r, "a")

		assert.True(t, errors.Is(e.AddChildComponent(a, a), engine.ErrWrongKind))
		assert.True(t, errors.Is(e.AddChildComponent(root, other), engine.ErrWrongKind))
		assert.True(t, errors.Is(e.AddChildComponent(engine.InvalidHandle, a), engine.ErrStaleHandle))

		require.NoError(t, e.AddChildComponent(root, a))
		assert.True(t, errors.Is(e.AddChildComponent(other, a), engine.ErrAlreadyParented))
	})
}

func TestHandlesIterator(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(t)
	root, err := e.CreateGameObject("root")
	require.NoError(t, err)
	a := spawn(t, e, r, "a")

	var seen []engine.Handle
	for info := range e.Handles() {
		seen = append(seen, info.Handle)
	}
	assert.ElementsMatch(t, []engine.Handle{root, a}, seen)
}

func TestCallbackPanicIsContained(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(t)

	h, err := e.CreateNativeHandle("bad")
	require.NoError(t, err)
	cb := r.callbacks("bad")
	cb.OnUpdate = func(float32) { panic("boom") }
	require.NoError(t, e.RegisterLifecycleCallbacks(h, cb))
	spawn(t, e, r, "good")

	assert.NotPanics(t, func() { e.Tick(0) })
	assert.Contains(t, r.events, "good:update(0)")
	assert.Equal(t, int64(1), e.CollectStats().CallbackPanics)
}
