package engine

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Commands buffers operations that run at the end of the current tick, after every
// script and system has executed.
type Commands struct {
	destroys []Handle
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Destroy queues the release of a handle.
func (c *Commands) Destroy(h Handle) {
	c.destroys = append(c.destroys, h)
}

// Defer queues a function execution.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.destroys) + len(c.defers)
}

// Flush applies all queued operations to e and resets the buffer. Destroys run before
// deferred functions. A handle queued twice is released once.
func (c *Commands) Flush(e *Engine) {
	// Work queued while flushing runs on the next flush.
	destroys := c.destroys
	defers := c.defers
	c.destroys = nil
	c.defers = nil

	for _, h := range destroys {
		if err := e.DestroyNativeHandle(h); err != nil && !errors.Is(err, ErrStaleHandle) {
			e.log.Warn("deferred destroy failed", zap.Stringer("handle", h), zap.Error(err))
		}
	}

	for _, fn := range defers {
		fn()
	}
}
