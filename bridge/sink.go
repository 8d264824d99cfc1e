package bridge

import "go.uber.org/zap"

// LifecycleSink receives the lifecycle hooks of one Component. The hooks are invoked only
// by the Component's dispatch path, never directly by application code.
type LifecycleSink interface {
	OnCreate()
	OnUpdate(deltaTime float32)
	OnFixedUpdate(fixedDeltaTime float32)
	OnDestroy()
}

type binder interface {
	bind(c *Component)
}

// Base implements LifecycleSink with hooks that only log. Scripts embed it and override the
// hooks they need; the embedding also gives them access to their Component.
type Base struct {
	component *Component
}

func (b *Base) bind(c *Component) {
	b.component = c
}

// Component returns the proxy this sink is bound to, or nil before construction.
func (b *Base) Component() *Component {
	return b.component
}

// Logger returns the bound component's logger.
func (b *Base) Logger() *zap.Logger {
	if b.component == nil {
		return zap.NewNop()
	}
	return b.component.log
}

func (b *Base) OnCreate() {
	b.Logger().Debug("component created")
}

func (b *Base) OnUpdate(deltaTime float32) {
	b.Logger().Debug("component updated", zap.Float32("delta_time", deltaTime))
}

func (b *Base) OnFixedUpdate(fixedDeltaTime float32) {
	b.Logger().Debug("component fixed update", zap.Float32("fixed_delta_time", fixedDeltaTime))
}

func (b *Base) OnDestroy() {
	b.Logger().Debug("component destroyed")
}
