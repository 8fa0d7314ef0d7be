package headless

import (
	"errors"
	"fmt"

	"github.com/go-theft-auto/overlay"
	"github.com/go-theft-auto/overlay/gui"
)

var errClosed = errors.New("headless: resource closed")

// ShaderPipeline installs a synthetic program and the overlay's fixed-function
// state: alpha blending and scissor test on, depth test and culling off.
type ShaderPipeline struct {
	dev      *Device
	program  overlay.Handle
	installs int
	closed   bool
}

var _ overlay.ShaderPipeline = (*ShaderPipeline)(nil)

func (p *ShaderPipeline) Install(overlay.Surface) {
	st := &p.dev.state
	st.Program = p.program
	st.Blend = true
	st.ScissorTest = true
	st.DepthTest = false
	st.CullFace = false
	p.installs++
	p.dev.record("install")
}

// Program returns the handle Install binds.
func (p *ShaderPipeline) Program() overlay.Handle { return p.program }

// Installs returns how often Install ran.
func (p *ShaderPipeline) Installs() int { return p.installs }

// Close marks the pipeline released.
func (p *ShaderPipeline) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *ShaderPipeline) Closed() bool { return p.closed }

// GeometryBuffers keeps uploaded geometry in host memory.
// Capacities follow overlay.GrowCapacity; a grown buffer gets a new handle,
// as recreating a GPU buffer would.
type GeometryBuffers struct {
	dev       *Device
	indexSize int
	limit     int // maximum vertex or index capacity, 0 for none

	vb, ib, cb     overlay.Handle
	vtxCap, idxCap int
	grows          int

	vertices   []gui.Vertex
	indices    []uint32
	projection [16]float32
	closed     bool
}

var _ overlay.GeometryBuffers = (*GeometryBuffers)(nil)

func (g *GeometryBuffers) SetConstantBuffer(_ overlay.Surface, clip [4]float32) error {
	if g.closed {
		return errClosed
	}
	g.projection = overlay.OrthoProjection(clip)
	g.dev.record("constants")
	return nil
}

func (g *GeometryBuffers) SetBuffers(_ overlay.Surface, lists []*gui.DrawList) error {
	if g.closed {
		return errClosed
	}

	var nv, ni int
	for _, dl := range lists {
		nv += len(dl.Vertices)
		ni += len(dl.Indices)
	}

	if nv > g.vtxCap {
		c := overlay.GrowCapacity(g.vtxCap, nv, overlay.MinVertexCapacity)
		if g.limit > 0 && c > g.limit {
			return fmt.Errorf("headless: vertex buffer of %d exceeds limit %d", c, g.limit)
		}
		overlay.Logger().Debug("headless: vertex buffer grown", "from", g.vtxCap, "to", c)
		g.vtxCap = c
		g.vb = g.dev.newHandle()
		g.vertices = make([]gui.Vertex, 0, c)
		g.grows++
	}
	if ni > g.idxCap {
		c := overlay.GrowCapacity(g.idxCap, ni, overlay.MinIndexCapacity)
		if g.limit > 0 && c > g.limit {
			return fmt.Errorf("headless: index buffer of %d exceeds limit %d", c, g.limit)
		}
		overlay.Logger().Debug("headless: index buffer grown", "from", g.idxCap, "to", c)
		g.idxCap = c
		g.ib = g.dev.newHandle()
		g.indices = make([]uint32, 0, c)
		g.grows++
	}

	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	for _, dl := range lists {
		g.vertices = append(g.vertices, dl.Vertices...)
		for _, idx := range dl.Indices {
			if g.indexSize == gui.IndexSize16 {
				idx = uint32(uint16(idx))
			}
			g.indices = append(g.indices, idx)
		}
	}
	g.dev.record("upload")
	return nil
}

func (g *GeometryBuffers) VertexBuffer() overlay.Handle   { return g.vb }
func (g *GeometryBuffers) IndexBuffer() overlay.Handle    { return g.ib }
func (g *GeometryBuffers) ConstantBuffer() overlay.Handle { return g.cb }

// VertexCapacity returns the allocated vertex capacity.
func (g *GeometryBuffers) VertexCapacity() int { return g.vtxCap }

// IndexCapacity returns the allocated index capacity.
func (g *GeometryBuffers) IndexCapacity() int { return g.idxCap }

// Grows returns how many times a buffer was reallocated.
func (g *GeometryBuffers) Grows() int { return g.grows }

// Vertices returns the uploaded vertex data.
func (g *GeometryBuffers) Vertices() []gui.Vertex { return g.vertices }

// Indices returns the uploaded index data, truncated to the index width.
func (g *GeometryBuffers) Indices() []uint32 { return g.indices }

// Projection returns the last matrix written to the constant buffer.
func (g *GeometryBuffers) Projection() [16]float32 { return g.projection }

// Close releases the buffers.
func (g *GeometryBuffers) Close() error {
	g.closed = true
	g.vertices, g.indices = nil, nil
	return nil
}

// FontTexture holds a copy of the atlas pixels.
type FontTexture struct {
	view          overlay.Handle
	width, height int
	pixels        []byte
	closed        bool
}

var _ overlay.FontTexture = (*FontTexture)(nil)

func (f *FontTexture) ShaderResourceView() overlay.Handle { return f.view }

// Size returns the texture dimensions.
func (f *FontTexture) Size() (width, height int) { return f.width, f.height }

// Pixels returns the uploaded RGBA bytes.
func (f *FontTexture) Pixels() []byte { return f.pixels }

// Close releases the texture.
func (f *FontTexture) Close() error {
	f.closed = true
	return nil
}
