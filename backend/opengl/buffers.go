package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/overlay"
	"github.com/go-theft-auto/overlay/gui"
)

const constantBufferSize = 16 * 4 // one mat4

// GeometryBuffers streams frame geometry into a vertex, an index and a
// uniform buffer. Storage is reallocated only when a frame outgrows it.
type GeometryBuffers struct {
	vbo, ebo, ubo  uint32
	indexSize      int
	vtxCap, idxCap int
	scratch        []uint16
}

var _ overlay.GeometryBuffers = (*GeometryBuffers)(nil)

func newGeometryBuffers(indexSize int) *GeometryBuffers {
	g := &GeometryBuffers{indexSize: indexSize}
	gl.GenBuffers(1, &g.vbo)
	gl.GenBuffers(1, &g.ebo)
	gl.GenBuffers(1, &g.ubo)

	gl.BindBuffer(gl.UNIFORM_BUFFER, g.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, constantBufferSize, nil, gl.DYNAMIC_DRAW)
	return g
}

func (g *GeometryBuffers) SetConstantBuffer(_ overlay.Surface, clip [4]float32) error {
	proj := overlay.OrthoProjection(clip)
	gl.BindBuffer(gl.UNIFORM_BUFFER, g.ubo)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, constantBufferSize, gl.Ptr(&proj[0]))
	return nil
}

// SetBuffers uploads lists back to back. The element array binding belongs
// to the bound vertex array, so the overlay pipeline must be installed first.
func (g *GeometryBuffers) SetBuffers(_ overlay.Surface, lists []*gui.DrawList) error {
	var nv, ni int
	for _, dl := range lists {
		nv += len(dl.Vertices)
		ni += len(dl.Indices)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	if nv > g.vtxCap {
		c := overlay.GrowCapacity(g.vtxCap, nv, overlay.MinVertexCapacity)
		overlay.Logger().Debug("opengl: vertex buffer grown", "from", g.vtxCap, "to", c)
		gl.BufferData(gl.ARRAY_BUFFER, c*gui.VertexSize, nil, gl.STREAM_DRAW)
		g.vtxCap = c
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	if ni > g.idxCap {
		c := overlay.GrowCapacity(g.idxCap, ni, overlay.MinIndexCapacity)
		overlay.Logger().Debug("opengl: index buffer grown", "from", g.idxCap, "to", c)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, c*g.indexSize, nil, gl.STREAM_DRAW)
		g.idxCap = c
	}

	vtxOff, idxOff := 0, 0
	for _, dl := range lists {
		if n := len(dl.Vertices); n > 0 {
			gl.BufferSubData(gl.ARRAY_BUFFER, vtxOff, n*gui.VertexSize, gl.Ptr(&dl.Vertices[0]))
			vtxOff += n * gui.VertexSize
		}
		if n := len(dl.Indices); n > 0 {
			if g.indexSize == gui.IndexSize16 {
				g.scratch = packIndices16(g.scratch[:0], dl.Indices)
				gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, idxOff, n*2, gl.Ptr(&g.scratch[0]))
			} else {
				gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, idxOff, n*4, gl.Ptr(&dl.Indices[0]))
			}
			idxOff += n * g.indexSize
		}
	}
	return nil
}

func (g *GeometryBuffers) VertexBuffer() overlay.Handle   { return overlay.Handle(g.vbo) }
func (g *GeometryBuffers) IndexBuffer() overlay.Handle    { return overlay.Handle(g.ebo) }
func (g *GeometryBuffers) ConstantBuffer() overlay.Handle { return overlay.Handle(g.ubo) }

// Close deletes the buffers.
func (g *GeometryBuffers) Close() error {
	bufs := []uint32{g.vbo, g.ebo, g.ubo}
	gl.DeleteBuffers(int32(len(bufs)), &bufs[0])
	g.vbo, g.ebo, g.ubo = 0, 0, 0
	return nil
}

// packIndices16 appends src narrowed to 16 bits to dst.
func packIndices16(dst []uint16, src []uint32) []uint16 {
	for _, idx := range src {
		dst = append(dst, uint16(idx))
	}
	return dst
}

// FontTexture is the atlas uploaded as an RGBA texture.
type FontTexture struct {
	tex uint32
}

var _ overlay.FontTexture = (*FontTexture)(nil)

func newFontTexture(atlas *gui.FontAtlas) *FontTexture {
	img := atlas.RGBA()
	f := &FontTexture{}
	gl.GenTextures(1, &f.tex)
	gl.ActiveTexture(overlayTextureUnit)
	gl.BindTexture(gl.TEXTURE_2D, f.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	atlas.SetTextureID(gui.TextureID(f.tex))
	return f
}

func (f *FontTexture) ShaderResourceView() overlay.Handle { return overlay.Handle(f.tex) }

// Close deletes the texture.
func (f *FontTexture) Close() error {
	if f.tex != 0 {
		gl.DeleteTextures(1, &f.tex)
		f.tex = 0
	}
	return nil
}
