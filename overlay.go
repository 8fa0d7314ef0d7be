package overlay

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-theft-auto/overlay/gui"
)

// FrameStats describes the last successfully rendered frame.
type FrameStats struct {
	Lists         int
	Commands      int
	DrawCalls     int
	EmptyScissors int // draws whose clip rect covers no pixels
	Callbacks     int
	Resets        int
	Vertices      int
	Indices       int
}

// Overlay renders a gui toolkit frame on top of a host's rendering.
//
// Render and Present must be called from the host's render thread, once per
// frame, never concurrently. Every device state change made by Render is
// undone before it returns.
type Overlay struct {
	backend  Backend
	surface  Surface
	pipeline ShaderPipeline
	buffers  GeometryBuffers
	font     FontTexture
	toolkit  *gui.Toolkit

	cfg       config
	stats     FrameStats
	lastFrame time.Time
}

// New builds an overlay on b. Failing to create the shader pipeline or the
// font texture is fatal; collaborators created so far are closed.
func New(b Backend, opts ...Option) (*Overlay, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	o := &Overlay{
		backend: b,
		surface: b.Surface(),
		toolkit: gui.New(cfg.toolkitOptions...),
		cfg:     cfg,
	}

	var err error
	if o.buffers, err = b.NewGeometryBuffers(o.toolkit.IndexSize()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeometryBuffers, err)
	}
	if o.pipeline, err = b.NewShaderPipeline(); err != nil {
		closeAll(o.buffers)
		return nil, fmt.Errorf("%w: %w", ErrShaderPipeline, err)
	}
	if o.font, err = b.NewFontTexture(o.toolkit.Fonts()); err != nil {
		closeAll(o.pipeline, o.buffers)
		return nil, fmt.Errorf("%w: %w", ErrFontTexture, err)
	}

	Logger().Info("overlay: created",
		"index_format", IndexFormatFor(o.toolkit.IndexSize()),
		"sync_interval", cfg.syncInterval)
	return o, nil
}

// Render builds a frame with build and draws it over the current render
// target.
//
// The device context state is captured first and restored on every exit
// path, including errors and panics raised by build. build receives the
// frame handle and must not keep it after returning.
//
// Only the font atlas texture is ever bound; texture ids recorded on draw
// commands are ignored.
func (o *Overlay) Render(build func(ctx *gui.Context)) error {
	dc := o.surface.Context()
	snap := o.backend.Capture(dc)
	defer snap.Restore(dc)

	if rect, ok := o.surface.WindowRect(); ok {
		o.toolkit.SetDisplaySize(gui.Vec2{X: float32(rect.Width()), Y: float32(rect.Height())})
		o.surface.SetViewport(rect.Normalized())
		o.surface.SetRenderTarget()
	}

	o.pipeline.Install(o.surface)

	ctx := o.toolkit.NewFrame(o.deltaTime())
	if build != nil {
		build(ctx)
	}
	dd := ctx.Render()

	if !dd.Valid() {
		return fmt.Errorf("%w: %gx%g", ErrInvalidDisplaySize, dd.DisplaySize.X, dd.DisplaySize.Y)
	}

	if err := o.buffers.SetConstantBuffer(o.surface, ClipSpace(dd.DisplayPos, dd.DisplaySize)); err != nil {
		return fmt.Errorf("%w: constants: %w", ErrUpload, err)
	}
	if err := o.buffers.SetBuffers(o.surface, dd.Lists); err != nil {
		return fmt.Errorf("%w: %w", ErrUpload, err)
	}

	o.bind(dc)
	o.stats = o.draw(dc, dd)
	Logger().Debug("overlay: frame rendered",
		"frame", ctx.FrameCount,
		"lists", o.stats.Lists,
		"draw_calls", o.stats.DrawCalls,
		"vertices", o.stats.Vertices,
		"indices", o.stats.Indices)
	return nil
}

// bind installs buffers, topology and the font view for the draw loop.
func (o *Overlay) bind(dc DeviceContext) {
	dc.SetVertexBuffer(o.buffers.VertexBuffer(), gui.VertexSize)
	dc.SetIndexBuffer(o.buffers.IndexBuffer(), IndexFormatFor(o.toolkit.IndexSize()))
	dc.SetTopology(TopologyTriangleList)
	dc.SetVertexConstantBuffer(0, o.buffers.ConstantBuffer())
	dc.SetPixelShaderResource(0, o.font.ShaderResourceView())
}

// draw interprets the command streams of dd. Each list's indices are
// relative to its first vertex, so the running vertex offset is passed as
// base vertex and the running index offset as start index.
func (o *Overlay) draw(dc DeviceContext, dd *gui.DrawData) FrameStats {
	stats := FrameStats{
		Lists:    len(dd.Lists),
		Vertices: dd.TotalVertices,
		Indices:  dd.TotalIndices,
	}
	view := o.font.ShaderResourceView()

	vtxOffset, idxOffset := 0, 0
	for _, dl := range dd.Lists {
		for _, cmd := range dl.Commands {
			stats.Commands++
			switch c := cmd.(type) {
			case gui.ElementsCmd:
				scissor := ScissorFromClip(c.ClipRect, dd.DisplayPos)
				if scissor.Empty() {
					stats.EmptyScissors++
				}
				dc.SetScissorRect(scissor)
				dc.SetPixelShaderResource(0, view)
				dc.DrawIndexed(int(c.Count), idxOffset, vtxOffset)
				stats.DrawCalls++
				idxOffset += int(c.Count)

			case gui.ResetRenderStateCmd:
				o.surface.SetupDefaultState(dd)
				o.pipeline.Install(o.surface)
				o.bind(dc)
				stats.Resets++

			case gui.CallbackCmd:
				c.Fn(dl, c.Data)
				stats.Callbacks++
			}
		}
		vtxOffset += len(dl.Vertices)
	}
	return stats
}

func (o *Overlay) deltaTime() float32 {
	now := o.cfg.now()
	dt := float32(1.0 / 60.0)
	if !o.lastFrame.IsZero() {
		if d := now.Sub(o.lastFrame).Seconds(); d > 0 {
			dt = float32(d)
		}
	}
	o.lastFrame = now
	return dt
}

// Present flips the swap chain. A failed present is logged and otherwise
// ignored so the host's frame loop keeps running.
func (o *Overlay) Present() {
	if err := o.surface.SwapChain().Present(o.cfg.syncInterval); err != nil {
		Logger().Warn("overlay: present failed", "err", err)
	}
}

// Device returns the backend device object.
func (o *Overlay) Device() any {
	return o.surface.Device()
}

// Context returns the device context the overlay draws with.
func (o *Overlay) Context() DeviceContext {
	return o.surface.Context()
}

// SwapChain returns the swap chain flipped by Present.
func (o *Overlay) SwapChain() SwapChain {
	return o.surface.SwapChain()
}

// Surface returns the wrapped device surface.
func (o *Overlay) Surface() Surface {
	return o.surface
}

// Toolkit returns the gui toolkit, e.g. to feed input or change style.
func (o *Overlay) Toolkit() *gui.Toolkit {
	return o.toolkit
}

// Stats returns statistics of the last successfully rendered frame.
func (o *Overlay) Stats() FrameStats {
	return o.stats
}

// Close releases the collaborators that hold device resources.
func (o *Overlay) Close() error {
	err := closeAll(o.font, o.pipeline, o.buffers)
	Logger().Info("overlay: closed")
	return err
}

func closeAll(vs ...any) error {
	var errs []error
	for _, v := range vs {
		if c, ok := v.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
