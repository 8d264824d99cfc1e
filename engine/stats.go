package engine

import "sort"

// Stats is a snapshot of the engine's handle population and lifetime counters.
type Stats struct {
	LiveHandles    int
	GameObjects    int
	Components     int
	Registered     int
	PendingCreate  int
	Frames         int64
	FixedSteps     int64
	DroppedSteps   int64
	Released       int64
	CallbackPanics int64
	TypeBreakdown  []TypeStats
}

// TypeStats counts live handles sharing a type name.
type TypeStats struct {
	Kind     Kind
	TypeName string
	Count    int
}

// CollectStats walks the live handles and returns a snapshot.
func (e *Engine) CollectStats() *Stats {
	stats := &Stats{
		LiveHandles:    e.slots.Len(),
		Registered:     e.callbacks.Len(),
		Frames:         e.counters.frames,
		FixedSteps:     e.counters.fixedSteps,
		DroppedSteps:   e.counters.droppedSteps,
		Released:       e.counters.released,
		CallbackPanics: e.counters.callbackPanics,
	}

	type key struct {
		kind Kind
		name string
	}
	counts := make(map[key]int)

	for _, rec := range e.slots.Iter() {
		switch rec.kind {
		case KindComponent:
			stats.Components++
		case KindGameObject:
			stats.GameObjects++
		}
		counts[key{rec.kind, rec.typeName}]++
	}

	for _, h := range e.pending {
		if rec := e.slots.Get(h); rec != nil && !rec.created {
			stats.PendingCreate++
		}
	}

	stats.TypeBreakdown = make([]TypeStats, 0, len(counts))
	for k, n := range counts {
		stats.TypeBreakdown = append(stats.TypeBreakdown, TypeStats{Kind: k.kind, TypeName: k.name, Count: n})
	}
	sort.Slice(stats.TypeBreakdown, func(i, j int) bool {
		a, b := stats.TypeBreakdown[i], stats.TypeBreakdown[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.TypeName < b.TypeName
	})

	return stats
}
