package overlay

import "github.com/go-theft-auto/overlay/gui"

// Handle names a backend object: a buffer, a texture view.
type Handle uint64

// IndexFormat is the width of elements in the index buffer.
type IndexFormat int

const (
	IndexUint16 IndexFormat = iota
	IndexUint32
)

// IndexFormatFor maps a toolkit index size in bytes to an IndexFormat.
func IndexFormatFor(size int) IndexFormat {
	if size == gui.IndexSize32 {
		return IndexUint32
	}
	return IndexUint16
}

// Size returns the byte width of one index.
func (f IndexFormat) Size() int {
	if f == IndexUint32 {
		return 4
	}
	return 2
}

func (f IndexFormat) String() string {
	if f == IndexUint32 {
		return "uint32"
	}
	return "uint16"
}

// Topology is the primitive assembly mode.
type Topology int

const (
	TopologyTriangleList Topology = iota
)

// DeviceContext is the immediate context the overlay issues commands on.
// It is shared with the host, which may use it right before and after.
type DeviceContext interface {
	SetVertexBuffer(buf Handle, stride int)
	SetIndexBuffer(buf Handle, format IndexFormat)
	SetTopology(t Topology)
	SetVertexConstantBuffer(slot int, buf Handle)
	SetPixelShaderResource(slot int, view Handle)
	SetScissorRect(r Rect)
	DrawIndexed(indexCount, startIndex, baseVertex int)
}

// SwapChain flips rendered frames to the screen.
type SwapChain interface {
	Present(syncInterval int) error
}

// Surface wraps a device context and its swap chain.
type Surface interface {
	// WindowRect returns the window rectangle, or false when it is not
	// available (e.g. the window is minimized).
	WindowRect() (Rect, bool)
	SetViewport(r Rect)
	SetRenderTarget()
	// SetupDefaultState installs render target and viewport for dd.
	SetupDefaultState(dd *gui.DrawData)

	// Device returns the backend device object.
	Device() any
	Context() DeviceContext
	SwapChain() SwapChain
}

// ShaderPipeline installs the overlay's shaders, input layout and
// fixed-function state. Install is idempotent.
type ShaderPipeline interface {
	Install(s Surface)
}

// GeometryBuffers owns the GPU vertex, index and constant buffers.
type GeometryBuffers interface {
	// SetConstantBuffer writes the projection for clip bounds (see ClipSpace).
	SetConstantBuffer(s Surface, clip [4]float32) error
	// SetBuffers uploads all lists back to back, growing storage as needed.
	SetBuffers(s Surface, lists []*gui.DrawList) error

	VertexBuffer() Handle
	IndexBuffer() Handle
	ConstantBuffer() Handle
}

// FontTexture holds the uploaded font atlas.
type FontTexture interface {
	ShaderResourceView() Handle
}

// Snapshot is captured pipeline state. Restore must be called exactly once.
type Snapshot interface {
	Restore(ctx DeviceContext)
}

// Backend creates the device-side collaborators of an Overlay.
type Backend interface {
	Surface() Surface
	// Capture snapshots the complete pipeline state of ctx.
	Capture(ctx DeviceContext) Snapshot

	NewShaderPipeline() (ShaderPipeline, error)
	NewGeometryBuffers(indexSize int) (GeometryBuffers, error)
	NewFontTexture(atlas *gui.FontAtlas) (FontTexture, error)
}
