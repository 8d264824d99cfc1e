// Package ebiten hosts the debug overlay inside an Ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. The imgui.ini file is disabled so
// window layout does not persist between runs.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Frame runs update between BeginFrame and EndFrame so the overlay's render functions,
// which the engine flushes at the end of a tick, land in the current Dear ImGui frame.
func (b *ImguiBackend) Frame(update func() error) error {
	b.BeginFrame()
	defer b.EndFrame()
	return update()
}
