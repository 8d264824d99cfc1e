package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tossbridge/engine"
)

// PerformanceStats shows handle counts, lifetime counters, frame times and the per-phase
// and per-system timings of an engine.
type PerformanceStats struct {
	engine        *engine.Engine
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	timer         *FrameTimer
}

func NewPerformanceStats(e *engine.Engine, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		engine:        e,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		timer:         NewFrameTimer(),
	}
}

// Record adds one frame time to the history.
func (ps *PerformanceStats) Record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// AverageFrameTime returns the mean of the recorded frame times in milliseconds.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.historyFrames)
}

func (ps *PerformanceStats) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(540, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(400, 420), imgui.CondOnce)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.Record(ps.timer.DeltaTime())

	stats := ps.engine.CollectStats()
	sched := ps.engine.SchedulerStats()

	imgui.Text(fmt.Sprintf("Live Handles: %d", stats.LiveHandles))
	imgui.Text(fmt.Sprintf("Components: %d (%d registered, %d pending create)", stats.Components, stats.Registered, stats.PendingCreate))
	imgui.Text(fmt.Sprintf("GameObjects: %d", stats.GameObjects))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Fixed Steps: %d (%d dropped)", stats.FixedSteps, stats.DroppedSteps))
	imgui.Text(fmt.Sprintf("Released: %d", stats.Released))
	if stats.CallbackPanics > 0 {
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), fmt.Sprintf("Callback Panics: %d", stats.CallbackPanics))
	} else {
		imgui.Text("Callback Panics: 0")
	}

	avg := ps.AverageFrameTime()
	fps := float32(0)
	if avg > 0 {
		fps = 1000.0 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Phase Timings") {
		timingTable("PhaseTable", sched.Phases)
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("System Timings") {
		timingTable("SystemTable", sched.Systems)
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Type Breakdown") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("TypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Kind")
			imgui.TableSetupColumn("Type")
			imgui.TableSetupColumn("Count")
			imgui.TableHeadersRow()

			for _, t := range stats.TypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(t.Kind.String())
				imgui.TableNextColumn()
				imgui.Text(t.TypeName)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", t.Count))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func timingTable(id string, timings []engine.TimingStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
	if !imgui.BeginTableV(id, 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}

	imgui.TableSetupColumn("Name")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()

	for _, t := range timings {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(t.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", t.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(t.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(t.MaxDuration.String())
	}

	imgui.EndTable()
}

// FrameTimer measures wall-clock time between calls.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// DeltaTime returns the seconds since the previous call.
func (ft *FrameTimer) DeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
