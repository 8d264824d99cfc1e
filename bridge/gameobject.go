package bridge

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/plus3/tossbridge/engine"
	"github.com/plus3/tossbridge/logging"
	"go.uber.org/zap"
)

// GameObject owns a set of Components and mirrors that ownership on the native side.
type GameObject struct {
	native     Native
	log        *zap.Logger
	name       string
	handle     engine.Handle
	components []*Component
	destroyed  bool
}

// NewGameObject asks the native side for a GameObject handle.
func NewGameObject(native Native, name string, logger *zap.Logger) (*GameObject, error) {
	h, err := native.CreateGameObject(name)
	if err != nil {
		return nil, &HandleCreationError{TypeName: name, Err: err}
	}

	return &GameObject{
		native: native,
		name:   name,
		handle: h,
		log:    logging.OrNop(logger).Named("bridge").With(zap.String("gameobject", name), zap.Stringer("handle", h)),
	}, nil
}

// AddComponent parents c to the GameObject on the native side and takes ownership of it.
func (g *GameObject) AddComponent(c *Component) error {
	if g.released() {
		return errors.Wrapf(ErrDestroyed, "add component to game object %q", g.name)
	}
	if c.state == StateDestroyed || c.releasing {
		return errors.Wrapf(ErrDestroyed, "add %q component to game object %q", c.typeName, g.name)
	}

	if err := g.native.AddChildComponent(g.handle, c.handle); err != nil {
		return errors.Wrapf(err, "add %q component to game object %q", c.typeName, g.name)
	}

	g.components = slices.DeleteFunc(g.components, func(owned *Component) bool {
		return owned.state == StateDestroyed
	})
	g.components = append(g.components, c)
	g.log.Debug("component added", zap.String("component", c.typeName), zap.Stringer("component_handle", c.handle))
	return nil
}

// Components returns the owned components that are not destroyed, in insertion order.
func (g *GameObject) Components() []*Component {
	live := make([]*Component, 0, len(g.components))
	for _, c := range g.components {
		if c.state != StateDestroyed {
			live = append(live, c)
		}
	}
	return live
}

// Name returns the GameObject's name.
func (g *GameObject) Name() string {
	return g.name
}

// Handle returns the native handle, or engine.InvalidHandle once destroyed.
func (g *GameObject) Handle() engine.Handle {
	return g.handle
}

// Destroy destroys every owned component in insertion order, then releases the
// GameObject's own handle. It is idempotent.
func (g *GameObject) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true

	for _, c := range g.components {
		c.Destroy()
	}
	g.components = nil

	if g.native.Alive(g.handle) {
		if err := g.native.DestroyNativeHandle(g.handle); err != nil {
			g.log.Warn("native release failed", zap.Error(err))
		}
	} else {
		g.log.Debug("game object already released natively")
	}
	g.handle = engine.InvalidHandle
}

// released reports whether the GameObject was destroyed, either through Destroy or by the
// native side releasing its handle.
func (g *GameObject) released() bool {
	return g.destroyed || !g.native.Alive(g.handle)
}
