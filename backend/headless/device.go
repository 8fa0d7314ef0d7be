// Package headless implements every overlay collaborator in memory.
//
// The device records pipeline state and draw calls instead of talking to a
// GPU, which makes it suitable for tests and for hosts that want to inspect
// the command stream an overlay frame produces.
package headless

import "github.com/go-theft-auto/overlay"

// State is the complete pipeline state of a Device. It is comparable, so two
// snapshots can be checked for equality with ==.
type State struct {
	VertexBuffer    overlay.Handle
	VertexStride    int
	IndexBuffer     overlay.Handle
	IndexFormat     overlay.IndexFormat
	Topology        overlay.Topology
	ConstantBuffers [4]overlay.Handle // vertex stage slots
	ShaderResources [4]overlay.Handle // pixel stage slots
	Scissor         overlay.Rect
	Viewport        overlay.Rect
	RenderTarget    overlay.Handle
	Program         overlay.Handle

	Blend       bool
	ScissorTest bool
	DepthTest   bool
	CullFace    bool
}

// DrawCall is one recorded DrawIndexed with the state it ran under.
type DrawCall struct {
	IndexCount int
	StartIndex int
	BaseVertex int
	Scissor    overlay.Rect
	Texture    overlay.Handle
	Program    overlay.Handle
}

// Device is a recording overlay.DeviceContext.
type Device struct {
	state  State
	calls  []DrawCall
	events []string
	handle overlay.Handle
}

var _ overlay.DeviceContext = (*Device)(nil)

// NewDevice returns a device with empty state.
func NewDevice() *Device {
	return &Device{}
}

// State returns the current pipeline state.
func (d *Device) State() State { return d.state }

// SetState replaces the pipeline state, as a host's own rendering would.
func (d *Device) SetState(s State) { d.state = s }

// DrawCalls returns the draw calls recorded since the last Reset.
func (d *Device) DrawCalls() []DrawCall { return d.calls }

// Events returns the protocol events recorded since the last Reset, such as
// "capture", "install", "upload", "draw" and "restore".
func (d *Device) Events() []string { return d.events }

// Reset forgets recorded draw calls and events. State is kept.
func (d *Device) Reset() {
	d.calls = d.calls[:0]
	d.events = d.events[:0]
}

func (d *Device) record(event string) {
	d.events = append(d.events, event)
}

func (d *Device) newHandle() overlay.Handle {
	d.handle++
	return d.handle
}

func (d *Device) SetVertexBuffer(buf overlay.Handle, stride int) {
	d.state.VertexBuffer = buf
	d.state.VertexStride = stride
}

func (d *Device) SetIndexBuffer(buf overlay.Handle, format overlay.IndexFormat) {
	d.state.IndexBuffer = buf
	d.state.IndexFormat = format
}

func (d *Device) SetTopology(t overlay.Topology) {
	d.state.Topology = t
}

func (d *Device) SetVertexConstantBuffer(slot int, buf overlay.Handle) {
	if slot >= 0 && slot < len(d.state.ConstantBuffers) {
		d.state.ConstantBuffers[slot] = buf
	}
}

func (d *Device) SetPixelShaderResource(slot int, view overlay.Handle) {
	if slot >= 0 && slot < len(d.state.ShaderResources) {
		d.state.ShaderResources[slot] = view
	}
}

func (d *Device) SetScissorRect(r overlay.Rect) {
	d.state.Scissor = r
}

func (d *Device) DrawIndexed(indexCount, startIndex, baseVertex int) {
	d.calls = append(d.calls, DrawCall{
		IndexCount: indexCount,
		StartIndex: startIndex,
		BaseVertex: baseVertex,
		Scissor:    d.state.Scissor,
		Texture:    d.state.ShaderResources[0],
		Program:    d.state.Program,
	})
	d.record("draw")
}

// snapshot is a copy of the device state taken by Backend.Capture.
type snapshot struct {
	dev   *Device
	state State
}

func (s snapshot) Restore(overlay.DeviceContext) {
	s.dev.state = s.state
	s.dev.record("restore")
}
