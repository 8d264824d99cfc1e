package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/tossbridge/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)

	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:     2 * time.Second,
		Components:   500,
		Churn:        0.05,
		TotalUpdates: 120,
		Constructed:  3000,
		Destroyed:    3000,
		Violations:   0,
		Engine: engine.Stats{
			LiveHandles: 500,
			Released:    3000,
		},
	}
	r.MemStatsStart.HeapAlloc = 1 << 20
	r.MemStatsEnd.HeapAlloc = 3 << 20

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Live Components:** 500")
	assert.Contains(t, out, "**Churn Per Frame:** 5.00%")
	assert.Contains(t, out, "**Total Frames:** 120")
	assert.Contains(t, out, "**Handles Released:** 3000")
	assert.Contains(t, out, "1.00 MB (start) -> 3.00 MB (end) -> delta: 2097152 bytes")
	assert.NotContains(t, out, "GC Pause Durations")

	r.GCPauseMetrics = true
	buf.Reset()
	require.NoError(t, r.Generate(&buf))
	assert.Contains(t, buf.String(), "GC Pause Durations")
}
