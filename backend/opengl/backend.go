package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/overlay"
	"github.com/go-theft-auto/overlay/gui"
)

// Backend creates GL collaborators for a window whose context is current.
type Backend struct {
	surface *Surface
}

var _ overlay.Backend = (*Backend)(nil)

// NewBackend wraps win, drawing into framebuffer (0 for the window's
// default framebuffer). The caller keeps win's context current.
func NewBackend(win *glfw.Window, framebuffer uint32) *Backend {
	return &Backend{surface: newSurface(win, framebuffer)}
}

// NewOverlay makes win's context current, loads the GL entry points and
// creates an overlay drawing into the default framebuffer.
func NewOverlay(win *glfw.Window, opts ...overlay.Option) (*overlay.Overlay, error) {
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: init: %w", err)
	}
	overlay.Logger().Info("opengl: context initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return overlay.New(NewBackend(win, 0), opts...)
}

// AttachOverlay creates an overlay on a context the host already made
// current and initialized. The context's state is left as it was found.
func AttachOverlay(win *glfw.Window, framebuffer uint32, opts ...overlay.Option) (*overlay.Overlay, error) {
	b := NewBackend(win, framebuffer)
	snap := b.Capture(b.surface.ctx)
	defer snap.Restore(b.surface.ctx)
	return overlay.New(b, opts...)
}

func (b *Backend) Surface() overlay.Surface { return b.surface }

func (b *Backend) Capture(overlay.DeviceContext) overlay.Snapshot {
	return captureState(b.surface)
}

func (b *Backend) NewShaderPipeline() (overlay.ShaderPipeline, error) {
	return newShaderPipeline()
}

func (b *Backend) NewGeometryBuffers(indexSize int) (overlay.GeometryBuffers, error) {
	if indexSize != gui.IndexSize16 && indexSize != gui.IndexSize32 {
		return nil, fmt.Errorf("opengl: unsupported index size %d", indexSize)
	}
	return newGeometryBuffers(indexSize), nil
}

func (b *Backend) NewFontTexture(atlas *gui.FontAtlas) (overlay.FontTexture, error) {
	f := newFontTexture(atlas)
	if code := gl.GetError(); code != gl.NO_ERROR {
		_ = f.Close()
		return nil, fmt.Errorf("opengl: font texture upload: error 0x%04x", code)
	}
	return f, nil
}
