package engine

// Callbacks is the set of entry points a managed proxy registers for one handle.
// The engine invokes them synchronously from Tick and DestroyNativeHandle.
type Callbacks struct {
	OnCreate      func()
	OnUpdate      func(deltaTime float32)
	OnFixedUpdate func(fixedDeltaTime float32)
	OnDestroy     func()
}

// Complete reports whether all four entry points are set.
func (c Callbacks) Complete() bool {
	return c.OnCreate != nil && c.OnUpdate != nil && c.OnFixedUpdate != nil && c.OnDestroy != nil
}
