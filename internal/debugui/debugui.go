// Package debugui is a Dear ImGui overlay for inspecting cameras, render
// layers and ECS state while the app runs.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/layercams/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether ImGui is consuming mouse or keyboard input.
// The game stops feeding the UI cursor while WantCaptureMouse is set.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay toggles every ImguiItem at once.
type Overlay struct {
	Visible bool
}

// ImguiSystem defers every ImguiItem render function while the overlay is
// visible and records ImGui's input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
	Overlay    ecs.Singleton[Overlay]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	if state == nil {
		return
	}
	overlay := i.Overlay.Get()
	if overlay == nil || !overlay.Visible {
		state.WantCaptureMouse = false
		state.WantCaptureKeyboard = false
		return
	}

	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}
