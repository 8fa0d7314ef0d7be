package headless

import (
	"github.com/go-theft-auto/overlay"
	"github.com/go-theft-auto/overlay/gui"
)

// Backend creates recording collaborators sharing one Device.
type Backend struct {
	dev     *Device
	surface *Surface

	pipelineErr error
	fontErr     error
	bufferLimit int
	overlayOpts []overlay.Option

	pipeline *ShaderPipeline
	buffers  *GeometryBuffers
	font     *FontTexture
	captures int
}

var _ overlay.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithPipelineError makes NewShaderPipeline fail with err.
func WithPipelineError(err error) Option {
	return func(b *Backend) { b.pipelineErr = err }
}

// WithFontError makes NewFontTexture fail with err.
func WithFontError(err error) Option {
	return func(b *Backend) { b.fontErr = err }
}

// WithPresentError makes Present fail with err.
func WithPresentError(err error) Option {
	return func(b *Backend) { b.surface.swap.err = err }
}

// WithBufferLimit caps vertex and index buffer capacity; uploads that would
// grow past it fail.
func WithBufferLimit(n int) Option {
	return func(b *Backend) { b.bufferLimit = n }
}

// WithOverlayOptions passes opts to overlay.New when the backend is built
// through NewOverlay.
func WithOverlayOptions(opts ...overlay.Option) Option {
	return func(b *Backend) { b.overlayOpts = append(b.overlayOpts, opts...) }
}

// New returns a backend whose window reports a width x height rectangle.
func New(width, height int, opts ...Option) *Backend {
	dev := NewDevice()
	b := &Backend{
		dev: dev,
		surface: &Surface{
			dev:          dev,
			swap:         &SwapChain{},
			rect:         overlay.Rect{Right: int32(width), Bottom: int32(height)},
			rectOK:       true,
			renderTarget: dev.newHandle(),
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewOverlay builds an overlay over a new headless backend configured by
// opts. Overlay options go through WithOverlayOptions.
func NewOverlay(width, height int, opts ...Option) (*overlay.Overlay, *Backend, error) {
	b := New(width, height, opts...)
	o, err := overlay.New(b, b.overlayOpts...)
	if err != nil {
		return nil, nil, err
	}
	return o, b, nil
}

// Device returns the shared recording device.
func (b *Backend) Device() *Device { return b.dev }

// HeadlessSurface returns the concrete surface.
func (b *Backend) HeadlessSurface() *Surface { return b.surface }

// Pipeline returns the last pipeline created, or nil.
func (b *Backend) Pipeline() *ShaderPipeline { return b.pipeline }

// Buffers returns the last geometry buffers created, or nil.
func (b *Backend) Buffers() *GeometryBuffers { return b.buffers }

// Font returns the last font texture created, or nil.
func (b *Backend) Font() *FontTexture { return b.font }

// Captures returns how many snapshots were taken.
func (b *Backend) Captures() int { return b.captures }

func (b *Backend) Surface() overlay.Surface { return b.surface }

func (b *Backend) Capture(overlay.DeviceContext) overlay.Snapshot {
	b.captures++
	b.dev.record("capture")
	return snapshot{dev: b.dev, state: b.dev.state}
}

func (b *Backend) NewShaderPipeline() (overlay.ShaderPipeline, error) {
	if b.pipelineErr != nil {
		return nil, b.pipelineErr
	}
	b.pipeline = &ShaderPipeline{dev: b.dev, program: b.dev.newHandle()}
	return b.pipeline, nil
}

func (b *Backend) NewGeometryBuffers(indexSize int) (overlay.GeometryBuffers, error) {
	b.buffers = &GeometryBuffers{
		dev:       b.dev,
		indexSize: indexSize,
		limit:     b.bufferLimit,
		cb:        b.dev.newHandle(),
	}
	return b.buffers, nil
}

func (b *Backend) NewFontTexture(atlas *gui.FontAtlas) (overlay.FontTexture, error) {
	if b.fontErr != nil {
		return nil, b.fontErr
	}
	img := atlas.RGBA()
	f := &FontTexture{
		view:   b.dev.newHandle(),
		width:  img.Rect.Dx(),
		height: img.Rect.Dy(),
		pixels: append([]byte(nil), img.Pix...),
	}
	atlas.SetTextureID(gui.TextureID(f.view))
	b.font = f
	return f, nil
}
