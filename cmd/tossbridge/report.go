package main

import (
	"io"
	"runtime"
	"strconv"
	"text/template"
	"time"

	"github.com/plus3/tossbridge/engine"
)

// Report collects the configuration and results of a stress run.
type Report struct {
	// Configuration
	Duration   time.Duration
	Components int
	Churn      float64

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	ChurnTime      Stats
	Constructed    int64
	Destroyed      int64
	Violations     int
	Engine         engine.Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats summarizes a set of duration samples.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Lifecycle Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Live Components:** {{.Components}}
- **Churn Per Frame:** {{percent .Churn}}

## Performance Results
- **Total Frames:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Tick Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
- **Churn Time (Frame):**
  - **Avg:** {{.ChurnTime.Avg}}
  - **Max:** {{.ChurnTime.Max}}

## Lifecycle
- **Constructed:** {{.Constructed}}
- **Destroyed:** {{.Destroyed}}
- **Handles Released:** {{.Engine.Released}}
- **Live Handles:** {{.Engine.LiveHandles}}
- **Fixed Steps:** {{.Engine.FixedSteps}} ({{.Engine.DroppedSteps}} dropped)
- **Protocol Violations:** {{.Violations}}
- **Callback Panics:** {{.Engine.CallbackPanics}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} bytes
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} bytes
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns (usub64 .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
- **Num GC Cycles:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v uint64) string {
		return strconv.FormatFloat(float64(v)/1024/1024, 'f', 2, 64)
	},
	"percent": func(v float64) string {
		return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"usub64": func(a, b uint64) uint64 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
