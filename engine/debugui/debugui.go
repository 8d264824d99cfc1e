// Package debugui renders a Dear ImGui overlay for a running engine: a browser over the
// live native handles and a performance window fed by the engine's counters.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tossbridge/engine"
)

// Item holds a Dear ImGui render function drawn once per frame.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay is an engine.System that queues its items' render functions on the frame's
// command buffer, so they draw after every script and system has updated.
type Overlay struct {
	Items []Item
	Input InputState
}

// New returns an overlay with the handle browser and performance windows for e.
func New(e *engine.Engine) *Overlay {
	browser := NewHandleBrowser(e, 100)
	perf := NewPerformanceStats(e, 120)

	return &Overlay{
		Items: []Item{
			{Render: browser.Render},
			{Render: perf.Render},
		},
	}
}

// Add appends a render function.
func (o *Overlay) Add(render func()) {
	o.Items = append(o.Items, Item{Render: render})
}

// Execute updates the input state and defers every render function.
func (o *Overlay) Execute(frame *engine.Frame) {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range o.Items {
		frame.Commands.Defer(item.Render)
	}
}
