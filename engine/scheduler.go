package engine

import (
	"context"
	"math"
	"reflect"
	"slices"
	"time"

	"go.uber.org/zap"
)

const (
	phaseCreate = iota
	phaseFixedUpdate
	phaseUpdate
	phaseCount
)

var phaseNames = [phaseCount]string{"create", "fixed_update", "update"}

// SchedulerStats provides timing statistics for the tick phases and systems.
type SchedulerStats struct {
	Frames     int64
	FixedSteps int64
	Phases     []TimingStats
	Systems    []TimingStats
}

// TimingStats provides execution statistics for a single phase or system.
type TimingStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type statsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newStatsInternal(name string) *statsInternal {
	return &statsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (s *statsInternal) record(duration time.Duration) {
	s.executionCount++
	s.lastDuration = duration
	s.totalDuration += duration

	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

func (s *statsInternal) snapshot() TimingStats {
	avgDuration := time.Duration(0)
	minDuration := time.Duration(0)
	if s.executionCount > 0 {
		avgDuration = s.totalDuration / time.Duration(s.executionCount)
		minDuration = s.minDuration
	}
	return TimingStats{
		Name:           s.name,
		ExecutionCount: s.executionCount,
		MinDuration:    minDuration,
		MaxDuration:    s.maxDuration,
		AvgDuration:    avgDuration,
		LastDuration:   s.lastDuration,
		TotalDuration:  s.totalDuration,
	}
}

// Register adds a system. Systems run in registration order.
func (e *Engine) Register(system System) {
	e.systems = append(e.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	e.systemStats = append(e.systemStats, newStatsInternal(systemType.Name()))
}

// Tick advances the engine by dt seconds: pending OnCreate calls, then as many
// OnFixedUpdate calls as the accumulated time allows, then one OnUpdate per created
// handle, then systems, then the command buffer.
func (e *Engine) Tick(dt float64) {
	frame := newFrame(e, dt*e.cfg.TimeScale)

	e.timed(phaseCreate, e.flushCreates)

	step := e.cfg.FixedTimeStep
	e.accumulator += frame.DeltaTime
	for e.accumulator >= step {
		if frame.FixedSteps == e.cfg.MaxFixedSteps {
			dropped := math.Floor(e.accumulator / step)
			e.accumulator -= dropped * step
			e.counters.droppedSteps += int64(dropped)
			e.log.Debug("dropping fixed steps", zap.Int64("steps", int64(dropped)))
			break
		}
		e.timed(phaseFixedUpdate, func() { e.dispatchFixedUpdate(float32(step)) })
		e.accumulator -= step
		frame.FixedSteps++
	}

	e.timed(phaseUpdate, func() { e.dispatchUpdate(float32(frame.DeltaTime)) })

	for i, system := range e.systems {
		start := time.Now()
		system.Execute(frame)
		e.systemStats[i].record(time.Since(start))
	}

	frame.Commands.Flush(e)
	e.compact()

	e.counters.frames++
	e.counters.fixedSteps += int64(frame.FixedSteps)
}

// Run ticks the engine at the given interval until the context is cancelled.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			e.Tick(dt)
		}
	}
}

// SchedulerStats returns timing statistics for the phases and systems.
func (e *Engine) SchedulerStats() *SchedulerStats {
	stats := &SchedulerStats{
		Frames:     e.counters.frames,
		FixedSteps: e.counters.fixedSteps,
		Phases:     make([]TimingStats, len(e.phaseStats)),
		Systems:    make([]TimingStats, len(e.systemStats)),
	}
	for i, internal := range e.phaseStats {
		stats.Phases[i] = internal.snapshot()
	}
	for i, internal := range e.systemStats {
		stats.Systems[i] = internal.snapshot()
	}
	return stats
}

func (e *Engine) timed(phase int, fn func()) {
	start := time.Now()
	fn()
	e.phaseStats[phase].record(time.Since(start))
}

// flushCreates fires OnCreate for handles registered before this tick. Handles registered
// from inside an OnCreate are picked up on the next tick.
func (e *Engine) flushCreates() {
	pending := e.pending
	e.pending = nil

	for _, h := range pending {
		rec := e.slots.Get(h)
		if rec == nil || rec.releasing || rec.created {
			continue
		}
		cb, ok := e.callbacks.Get(h)
		if !ok {
			continue
		}
		rec.created = true
		e.invoke(h, "create", cb.OnCreate)
	}
}

func (e *Engine) dispatchFixedUpdate(dt float32) {
	e.dispatch("fixed_update", func(cb *Callbacks) { cb.OnFixedUpdate(dt) })
}

func (e *Engine) dispatchUpdate(dt float32) {
	e.dispatch("update", func(cb *Callbacks) { cb.OnUpdate(dt) })
}

// dispatch calls fn for every created handle registered before the dispatch began.
// Handles released by an earlier callback in the same pass are skipped.
func (e *Engine) dispatch(event string, fn func(cb *Callbacks)) {
	n := len(e.scripted)
	for i := 0; i < n; i++ {
		h := e.scripted[i]
		rec := e.slots.Get(h)
		if rec == nil || rec.releasing || !rec.created {
			continue
		}
		cb, ok := e.callbacks.Get(h)
		if !ok {
			continue
		}
		e.invoke(h, event, func() { fn(cb) })
	}
}

func (e *Engine) compact() {
	e.scripted = slices.DeleteFunc(e.scripted, func(h Handle) bool {
		return e.slots.Get(h) == nil
	})
}
