package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/overlay"
	"github.com/go-theft-auto/overlay/gui"
)

// Surface is a GLFW window's framebuffer.
type Surface struct {
	win         *glfw.Window
	framebuffer uint32
	ctx         *DeviceContext
	swap        *SwapChain
}

var _ overlay.Surface = (*Surface)(nil)

func newSurface(win *glfw.Window, framebuffer uint32) *Surface {
	return &Surface{
		win:         win,
		framebuffer: framebuffer,
		ctx:         newDeviceContext(),
		swap:        &SwapChain{win: win, interval: -1},
	}
}

// WindowRect returns the window position and framebuffer size. It is
// unavailable while the window is iconified.
func (s *Surface) WindowRect() (overlay.Rect, bool) {
	if s.win.GetAttrib(glfw.Iconified) == glfw.True {
		return overlay.Rect{}, false
	}
	x, y := s.win.GetPos()
	w, h := s.win.GetFramebufferSize()
	return overlay.Rect{
		Left:   int32(x),
		Top:    int32(y),
		Right:  int32(x + w),
		Bottom: int32(y + h),
	}, true
}

func (s *Surface) SetViewport(r overlay.Rect) {
	gl.Viewport(r.Left, r.Top, r.Width(), r.Height())
	s.ctx.viewportHeight = r.Height()
}

// SetRenderTarget binds the framebuffer for drawing only. The host's read
// framebuffer is left alone.
func (s *Surface) SetRenderTarget() {
	gl.BindFramebuffer(renderTargetBinding, s.framebuffer)
}

func (s *Surface) SetupDefaultState(dd *gui.DrawData) {
	s.SetRenderTarget()
	s.SetViewport(overlay.Rect{
		Right:  int32(dd.DisplaySize.X),
		Bottom: int32(dd.DisplaySize.Y),
	})
}

// Device returns the *glfw.Window owning the GL context.
func (s *Surface) Device() any                    { return s.win }
func (s *Surface) Context() overlay.DeviceContext { return s.ctx }
func (s *Surface) SwapChain() overlay.SwapChain   { return s.swap }

// SwapChain swaps the window's buffers.
type SwapChain struct {
	win      *glfw.Window
	interval int
}

// Present applies syncInterval when it changed and swaps buffers. GLFW
// reports errors by panicking; they are returned instead.
func (c *SwapChain) Present(syncInterval int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("opengl: present: %w", e)
			} else {
				err = fmt.Errorf("opengl: present: %v", r)
			}
		}
	}()

	if syncInterval != c.interval {
		glfw.SwapInterval(syncInterval)
		c.interval = syncInterval
	}
	c.win.SwapBuffers()
	return nil
}
