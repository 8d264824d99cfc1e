package engine

// Frame carries per-tick state into systems.
type Frame struct {
	// DeltaTime is the scaled variable step passed to OnUpdate, in seconds.
	DeltaTime float64
	// FixedDeltaTime is the fixed step passed to OnFixedUpdate, in seconds.
	FixedDeltaTime float64
	// FixedSteps is how many fixed updates ran this tick.
	FixedSteps int
	Commands   *Commands
	Engine     *Engine
}

func newFrame(e *Engine, dt float64) *Frame {
	return &Frame{
		DeltaTime:      dt,
		FixedDeltaTime: e.cfg.FixedTimeStep,
		Commands:       e.commands,
		Engine:         e,
	}
}
