package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/overlay/gui"
)

// InputPoller copies a window's pointer state into a gui.InputState once
// per frame. It installs no callbacks, so the host's own stay in place.
type InputPoller struct {
	window *glfw.Window
	input  *gui.InputState
}

// NewInputPoller returns a poller feeding input. Pass the same input to
// gui.WithInput.
func NewInputPoller(window *glfw.Window, input *gui.InputState) *InputPoller {
	return &InputPoller{window: window, input: input}
}

// Poll updates the input state. Call it before Overlay.Render.
func (p *InputPoller) Poll() {
	x, y := p.window.GetCursorPos()
	winW, winH := p.window.GetSize()
	fbW, fbH := p.window.GetFramebufferSize()
	sx, sy := contentScale(winW, winH, fbW, fbH)
	p.input.SetMousePos(float32(x)*sx, float32(y)*sy)

	for _, b := range []glfw.MouseButton{glfw.MouseButtonLeft, glfw.MouseButtonRight, glfw.MouseButtonMiddle} {
		p.input.SetMouseButton(mouseButton(b), p.window.GetMouseButton(b) == glfw.Press)
	}
}

// contentScale returns the framebuffer-to-window pixel ratio, which is not
// 1 on high-DPI displays.
func contentScale(winW, winH, fbW, fbH int) (sx, sy float32) {
	sx, sy = 1, 1
	if winW > 0 {
		sx = float32(fbW) / float32(winW)
	}
	if winH > 0 {
		sy = float32(fbH) / float32(winH)
	}
	return sx, sy
}

func mouseButton(button glfw.MouseButton) gui.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return gui.MouseButtonLeft
	case glfw.MouseButtonRight:
		return gui.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return gui.MouseButtonMiddle
	default:
		return -1
	}
}
