// Package opengl implements the overlay collaborators on an OpenGL 4.1 core
// context owned by a GLFW window.
package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/overlay"
	"github.com/go-theft-auto/overlay/gui"
)

const (
	overlayTextureUnit  = gl.TEXTURE0         // unit the font atlas is bound to
	renderTargetBinding = gl.DRAW_FRAMEBUFFER // target SetRenderTarget binds
)

// Vertex attribute layout of gui.Vertex.
var (
	uvOffset    = unsafe.Offsetof(gui.Vertex{}.UV)
	colorOffset = unsafe.Offsetof(gui.Vertex{}.Color)
)

// DeviceContext issues overlay draw commands on the current GL context.
// GL has a single global state, so the context only tracks what GL cannot
// express per call: the index element type and the viewport height used
// to flip scissor rectangles.
type DeviceContext struct {
	mode           uint32
	indexType      uint32
	indexSize      int
	viewportHeight int32
}

var _ overlay.DeviceContext = (*DeviceContext)(nil)

func newDeviceContext() *DeviceContext {
	return &DeviceContext{
		mode:      gl.TRIANGLES,
		indexType: gl.UNSIGNED_SHORT,
		indexSize: 2,
	}
}

// SetVertexBuffer binds buf and points the attribute slots at it. The
// overlay's vertex array object must be bound.
func (c *DeviceContext) SetVertexBuffer(buf overlay.Handle, stride int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buf))
	s := int32(stride)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, s, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, s, uvOffset)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, s, colorOffset)
}

func (c *DeviceContext) SetIndexBuffer(buf overlay.Handle, format overlay.IndexFormat) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(buf))
	c.indexType = indexType(format)
	c.indexSize = format.Size()
}

func (c *DeviceContext) SetTopology(overlay.Topology) {
	c.mode = gl.TRIANGLES
}

func (c *DeviceContext) SetVertexConstantBuffer(slot int, buf overlay.Handle) {
	gl.BindBufferBase(gl.UNIFORM_BUFFER, uint32(slot), uint32(buf))
}

func (c *DeviceContext) SetPixelShaderResource(slot int, view overlay.Handle) {
	gl.ActiveTexture(overlayTextureUnit + uint32(slot))
	gl.BindTexture(gl.TEXTURE_2D, uint32(view))
}

func (c *DeviceContext) SetScissorRect(r overlay.Rect) {
	x, y, w, h := scissorBox(r, c.viewportHeight)
	gl.Scissor(x, y, w, h)
}

func (c *DeviceContext) DrawIndexed(indexCount, startIndex, baseVertex int) {
	gl.DrawElementsBaseVertexWithOffset(
		c.mode,
		int32(indexCount),
		c.indexType,
		uintptr(startIndex*c.indexSize),
		int32(baseVertex),
	)
}

// scissorBox converts a top-left origin rectangle to GL's bottom-left
// origin box. Negative extents become zero; glScissor rejects them.
func scissorBox(r overlay.Rect, viewportHeight int32) (x, y, w, h int32) {
	return r.Left, viewportHeight - r.Bottom, max(r.Width(), 0), max(r.Height(), 0)
}

func indexType(f overlay.IndexFormat) uint32 {
	if f == overlay.IndexUint32 {
		return gl.UNSIGNED_INT
	}
	return gl.UNSIGNED_SHORT
}
