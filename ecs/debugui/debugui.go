// Package debugui renders Dear ImGui panels for an ECS world. Panels are
// entities; PanelSystem queues their render functions while the overlay is
// visible.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/neonpulse/ecs"
)

// Panel is a component holding one ImGui window's render function.
type Panel struct {
	Title  string
	Render func()
}

// Overlay is the singleton that toggles the debug UI and reports whether
// ImGui is consuming input. Game input systems should ignore mouse and
// keyboard while the matching flag is set.
type Overlay struct {
	Visible             bool
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

func (o *Overlay) Toggle() {
	o.Visible = !o.Visible
}

type PanelSystem struct {
	Panels  ecs.Query[struct{ *Panel }]
	Overlay ecs.Singleton[Overlay]
}

func (s *PanelSystem) Execute(frame *ecs.UpdateFrame) {
	overlay := s.Overlay.Get()
	if overlay == nil {
		return
	}
	if !overlay.Visible {
		overlay.WantCaptureMouse = false
		overlay.WantCaptureKeyboard = false
		return
	}

	io := imgui.CurrentIO()
	overlay.WantCaptureMouse = io.WantCaptureMouse()
	overlay.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for panel := range s.Panels.Values() {
		frame.Commands.Defer(panel.Render)
	}
}
