// Package ebiten connects the debug overlay to the Ebiten Dear ImGui
// backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
)

// Backend wraps the Ebiten ImGui backend. Store it as a singleton and call
// BeginFrame/EndFrame around the scheduler pass that runs PanelSystem.
type Backend struct {
	*ebitenbackend.EbitenBackend
}

// NewBackend creates the ImGui context and the game window. ImGui window
// positions are not persisted.
func NewBackend(title string, width, height int) Backend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return Backend{EbitenBackend: backend}
}
