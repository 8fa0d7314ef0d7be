package overlay_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/overlay"
	"github.com/go-theft-auto/overlay/backend/headless"
	"github.com/go-theft-auto/overlay/gui"
)

// hostState is what a host renderer leaves bound before handing over.
var hostState = headless.State{
	VertexBuffer:    900,
	VertexStride:    32,
	IndexBuffer:     901,
	IndexFormat:     overlay.IndexUint32,
	ConstantBuffers: [4]overlay.Handle{902, 903},
	ShaderResources: [4]overlay.Handle{904},
	Scissor:         overlay.Rect{Right: 640, Bottom: 480},
	Viewport:        overlay.Rect{Right: 640, Bottom: 480},
	RenderTarget:    905,
	Program:         906,
	DepthTest:       true,
	CullFace:        true,
}

func newOverlay(t *testing.T, b *headless.Backend, opts ...overlay.Option) *overlay.Overlay {
	t.Helper()
	o, err := overlay.New(b, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = o.Close() })
	b.Device().SetState(hostState)
	b.Device().Reset()
	return o
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	overlay.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { overlay.SetLogger(nil) })
	return &buf
}

func TestSingleListScenario(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)

	err := o.Render(func(ctx *gui.Context) {
		ctx.PushClipRect(0, 0, 100, 100)
		ctx.DrawList.AddRect(10, 10, 20, 20, gui.ColorWhite)
		ctx.PopClipRect()
	})
	require.NoError(t, err)

	calls := b.Device().DrawCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 6, calls[0].IndexCount)
	assert.Equal(t, 0, calls[0].StartIndex)
	assert.Equal(t, 0, calls[0].BaseVertex)
	assert.Equal(t, overlay.Rect{Right: 100, Bottom: 100}, calls[0].Scissor)
	assert.Equal(t, b.Font().ShaderResourceView(), calls[0].Texture)
	assert.Equal(t, b.Pipeline().Program(), calls[0].Program)
}

func TestOffsetsAccumulateAcrossLists(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)

	err := o.Render(func(ctx *gui.Context) {
		ctx.BackgroundDrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
		ctx.DrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
		ctx.ForegroundDrawList.AddTriangle(0, 0, 10, 0, 0, 10, gui.ColorWhite)
	})
	require.NoError(t, err)

	calls := b.Device().DrawCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, [3]int{6, 0, 0}, [3]int{calls[0].IndexCount, calls[0].StartIndex, calls[0].BaseVertex})
	assert.Equal(t, [3]int{6, 6, 4}, [3]int{calls[1].IndexCount, calls[1].StartIndex, calls[1].BaseVertex})
	assert.Equal(t, [3]int{3, 12, 8}, [3]int{calls[2].IndexCount, calls[2].StartIndex, calls[2].BaseVertex})

	// Indices are uploaded relative to their own list.
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 0, 1, 2, 0, 2, 3, 0, 1, 2}, b.Buffers().Indices())
	assert.Len(t, b.Buffers().Vertices(), 11)
}

func TestClipRectTranslatedByDisplayPos(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b, overlay.WithToolkitOptions(gui.WithDisplayPos(gui.Vec2{X: 100, Y: 50})))

	err := o.Render(func(ctx *gui.Context) {
		ctx.PushClipRect(110.7, 60.2, 200.9, 150.5)
		ctx.DrawList.AddRect(120, 70, 10, 10, gui.ColorWhite)
		ctx.PopClipRect()
		ctx.DrawList.AddRect(120, 70, 10, 10, gui.ColorWhite)
	})
	require.NoError(t, err)

	calls := b.Device().DrawCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, overlay.Rect{Left: 10, Top: 10, Right: 100, Bottom: 100}, calls[0].Scissor)
	assert.Equal(t, overlay.Rect{Right: 800, Bottom: 600}, calls[1].Scissor)

	want := overlay.OrthoProjection([4]float32{100, 50, 900, 650})
	assert.Equal(t, want, b.Buffers().Projection())
}

func TestEmptyScissorStillDrawsAndAdvancesOffset(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)

	err := o.Render(func(ctx *gui.Context) {
		ctx.PushClipRect(900, 0, 1000, 100)
		ctx.DrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
		ctx.PopClipRect()
		ctx.DrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
	})
	require.NoError(t, err)

	// The clip is intersected with the display, leaving a negative width.
	calls := b.Device().DrawCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, overlay.Rect{Left: 900, Right: 800, Bottom: 100}, calls[0].Scissor)
	assert.True(t, calls[0].Scissor.Empty())
	assert.Equal(t, 0, calls[0].StartIndex)
	assert.Equal(t, 6, calls[0].IndexCount)
	assert.Equal(t, 6, calls[1].StartIndex)
	assert.Equal(t, overlay.Rect{Right: 800, Bottom: 600}, calls[1].Scissor)
	assert.Equal(t, 1, o.Stats().EmptyScissors)
	assert.Equal(t, 2, o.Stats().DrawCalls)
}

func TestRenderPreservesHostState(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)

	err := o.Render(func(ctx *gui.Context) {
		ctx.Panel("Stats")(func() {
			ctx.Text("fps: 60")
			ctx.Button("Reload")
		})
	})
	require.NoError(t, err)
	assert.NotEmpty(t, b.Device().DrawCalls())
	assert.Equal(t, hostState, b.Device().State())
}

func TestRenderBindsPipelineForDrawing(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)

	var during headless.State
	err := o.Render(func(ctx *gui.Context) {
		ctx.DrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
		ctx.AddCallback(func(*gui.DrawList, any) { during = b.Device().State() }, nil)
	})
	require.NoError(t, err)

	bufs := b.Buffers()
	assert.Equal(t, bufs.VertexBuffer(), during.VertexBuffer)
	assert.Equal(t, gui.VertexSize, during.VertexStride)
	assert.Equal(t, bufs.IndexBuffer(), during.IndexBuffer)
	assert.Equal(t, overlay.IndexUint16, during.IndexFormat)
	assert.Equal(t, overlay.TopologyTriangleList, during.Topology)
	assert.Equal(t, bufs.ConstantBuffer(), during.ConstantBuffers[0])
	assert.Equal(t, b.Font().ShaderResourceView(), during.ShaderResources[0])
	assert.Equal(t, overlay.Rect{Right: 800, Bottom: 600}, during.Viewport)
	assert.Equal(t, b.HeadlessSurface().RenderTarget(), during.RenderTarget)
	assert.Equal(t, b.Pipeline().Program(), during.Program)
	assert.True(t, during.Blend)
	assert.True(t, during.ScissorTest)
	assert.False(t, during.DepthTest)
	assert.False(t, during.CullFace)
}

func TestThirtyTwoBitIndices(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b, overlay.WithToolkitOptions(gui.WithIndexSize(gui.IndexSize32)))

	var format overlay.IndexFormat
	err := o.Render(func(ctx *gui.Context) {
		ctx.DrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
		ctx.AddCallback(func(*gui.DrawList, any) { format = b.Device().State().IndexFormat }, nil)
	})
	require.NoError(t, err)
	assert.Equal(t, overlay.IndexUint32, format)
}

func TestProtocolOrder(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)

	require.NoError(t, o.Render(func(ctx *gui.Context) {
		ctx.DrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
	}))
	assert.Equal(t, []string{
		"capture", "viewport", "render-target", "install",
		"constants", "upload", "draw", "restore",
	}, b.Device().Events())
	assert.Equal(t, 1, b.Captures())
}

func TestDegenerateDisplaySizeRejected(t *testing.T) {
	tests := []struct {
		name string
		rect overlay.Rect
	}{
		{"zero height", overlay.Rect{Right: 800}},
		{"zero width", overlay.Rect{Bottom: 600}},
		{"both zero", overlay.Rect{}},
		{"inverted", overlay.Rect{Left: 800, Right: 0, Bottom: 600}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := headless.New(800, 600)
			o := newOverlay(t, b)
			b.HeadlessSurface().SetWindowRect(tt.rect, true)

			built := false
			err := o.Render(func(ctx *gui.Context) {
				built = true
				ctx.DrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
			})
			require.ErrorIs(t, err, overlay.ErrInvalidDisplaySize)
			assert.True(t, built)
			assert.Empty(t, b.Device().DrawCalls())
			assert.NotContains(t, b.Device().Events(), "upload")
			assert.Equal(t, "restore", b.Device().Events()[len(b.Device().Events())-1])
			assert.Equal(t, hostState, b.Device().State())
		})
	}
}

func TestPanicInBuildRestoresState(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)

	assert.PanicsWithValue(t, "boom", func() {
		_ = o.Render(func(ctx *gui.Context) {
			ctx.DrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
			panic("boom")
		})
	})
	assert.Equal(t, hostState, b.Device().State())
	assert.Empty(t, b.Device().DrawCalls())

	// The next frame renders normally.
	b.Device().Reset()
	require.NoError(t, o.Render(func(ctx *gui.Context) {
		ctx.Text("recovered")
	}))
	assert.NotEmpty(t, b.Device().DrawCalls())
	assert.Equal(t, hostState, b.Device().State())
}

func TestStaleDisplaySizeReused(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)

	require.NoError(t, o.Render(nil))
	b.HeadlessSurface().SetWindowRect(overlay.Rect{}, false)
	b.Device().Reset()

	var size gui.Vec2
	require.NoError(t, o.Render(func(ctx *gui.Context) {
		size = ctx.DisplaySize
		ctx.Text("minimized")
	}))
	assert.Equal(t, gui.Vec2{X: 800, Y: 600}, size)
	assert.NotContains(t, b.Device().Events(), "viewport")
	assert.NotEmpty(t, b.Device().DrawCalls())
}

func TestWindowRectUnavailableBeforeFirstFrame(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)
	b.HeadlessSurface().SetWindowRect(overlay.Rect{}, false)

	err := o.Render(func(ctx *gui.Context) { ctx.Text("x") })
	assert.ErrorIs(t, err, overlay.ErrInvalidDisplaySize)
	assert.Equal(t, hostState, b.Device().State())
}

func TestWindowRectNormalizedForViewport(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)
	b.HeadlessSurface().SetWindowRect(overlay.Rect{Left: 200, Top: 100, Right: 1224, Bottom: 868}, true)

	var viewport overlay.Rect
	var size gui.Vec2
	require.NoError(t, o.Render(func(ctx *gui.Context) {
		size = ctx.DisplaySize
		ctx.AddCallback(func(*gui.DrawList, any) { viewport = b.Device().State().Viewport }, nil)
	}))
	assert.Equal(t, gui.Vec2{X: 1024, Y: 768}, size)
	assert.Equal(t, overlay.Rect{Right: 1024, Bottom: 768}, viewport)
}

func TestBufferGrowthKeepsFrameIntact(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b, overlay.WithToolkitOptions(gui.WithIndexSize(gui.IndexSize32)))
	bufs := b.Buffers()

	require.NoError(t, o.Render(func(ctx *gui.Context) {
		ctx.DrawList.AddRect(0, 0, 1, 1, gui.ColorWhite)
	}))
	assert.Equal(t, overlay.MinVertexCapacity, bufs.VertexCapacity())
	assert.Equal(t, overlay.MinIndexCapacity, bufs.IndexCapacity())
	firstVB := bufs.VertexBuffer()

	const quads = 3000
	var lists []*gui.DrawList
	require.NoError(t, o.Render(func(ctx *gui.Context) {
		for i := 0; i < quads; i++ {
			ctx.DrawList.AddRect(float32(i%800), float32(i/800), 1, 1, gui.RGBA(uint8(i), 0, 0, 255))
		}
		lists = []*gui.DrawList{ctx.DrawList}
	}))

	assert.Equal(t, 20000, bufs.VertexCapacity())
	assert.Equal(t, 20000, bufs.IndexCapacity())
	assert.NotEqual(t, firstVB, bufs.VertexBuffer())
	assert.Equal(t, lists[0].Vertices, bufs.Vertices())
	assert.Equal(t, lists[0].Indices, bufs.Indices())

	calls := b.Device().DrawCalls()
	last := calls[len(calls)-1]
	assert.Equal(t, quads*6, last.StartIndex+last.IndexCount)
	assert.Equal(t, bufs.VertexBuffer(), boundVertexBuffer(t, b, o))
}

// boundVertexBuffer renders one more frame and returns the vertex buffer
// bound while drawing it.
func boundVertexBuffer(t *testing.T, b *headless.Backend, o *overlay.Overlay) overlay.Handle {
	t.Helper()
	var vb overlay.Handle
	require.NoError(t, o.Render(func(ctx *gui.Context) {
		ctx.DrawList.AddRect(0, 0, 1, 1, gui.ColorWhite)
		ctx.AddCallback(func(*gui.DrawList, any) { vb = b.Device().State().VertexBuffer }, nil)
	}))
	return vb
}

func TestUploadFailureRestoresState(t *testing.T) {
	b := headless.New(800, 600, headless.WithBufferLimit(8000))
	o := newOverlay(t, b, overlay.WithToolkitOptions(gui.WithIndexSize(gui.IndexSize32)))

	err := o.Render(func(ctx *gui.Context) {
		for i := 0; i < 2000; i++ {
			ctx.DrawList.AddRect(0, 0, 1, 1, gui.ColorWhite)
		}
	})
	require.ErrorIs(t, err, overlay.ErrUpload)
	assert.Empty(t, b.Device().DrawCalls())
	assert.Equal(t, hostState, b.Device().State())
}

func TestResetAndCallbackCommands(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)

	var main, gotList *gui.DrawList
	var gotData any
	err := o.Render(func(ctx *gui.Context) {
		ctx.DrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
		ctx.AddCallback(func(dl *gui.DrawList, data any) {
			gotList, gotData = dl, data
			// Host work that clobbers everything.
			b.Device().SetState(headless.State{Program: 77})
		}, "minimap")
		ctx.ResetRenderState()
		ctx.DrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
		main = ctx.DrawList
	})
	require.NoError(t, err)

	assert.Equal(t, "minimap", gotData)
	assert.Same(t, main, gotList)

	calls := b.Device().DrawCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, b.Pipeline().Program(), calls[1].Program)
	assert.Equal(t, b.Font().ShaderResourceView(), calls[1].Texture)
	assert.Equal(t, 6, calls[1].StartIndex)
	assert.Equal(t, 2, b.Pipeline().Installs())

	stats := o.Stats()
	assert.Equal(t, 1, stats.Callbacks)
	assert.Equal(t, 1, stats.Resets)
	assert.Equal(t, 2, stats.DrawCalls)
	assert.Equal(t, 4, stats.Commands)
	assert.Equal(t, hostState, b.Device().State())
	assert.Contains(t, b.Device().Events(), "default-state")
}

func TestCallbackReceivesOwningList(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)

	var main, got *gui.DrawList
	require.NoError(t, o.Render(func(ctx *gui.Context) {
		main = ctx.DrawList
		ctx.AddCallback(func(dl *gui.DrawList, _ any) { got = dl }, nil)
	}))
	assert.Same(t, main, got)
	assert.Equal(t, 1, o.Stats().Lists)
}

func TestFrameStats(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b)

	require.NoError(t, o.Render(func(ctx *gui.Context) {
		ctx.BackgroundDrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
		ctx.DrawList.AddRect(0, 0, 10, 10, gui.ColorWhite)
		ctx.DrawList.AddTriangle(0, 0, 1, 0, 0, 1, gui.ColorWhite)
	}))
	assert.Equal(t, overlay.FrameStats{
		Lists:     2,
		Commands:  2,
		DrawCalls: 2,
		Vertices:  11,
		Indices:   15,
	}, o.Stats())

	// A rejected frame keeps the previous statistics.
	b.HeadlessSurface().SetWindowRect(overlay.Rect{}, true)
	require.Error(t, o.Render(nil))
	assert.Equal(t, 2, o.Stats().DrawCalls)
}

func TestDeltaTime(t *testing.T) {
	now := time.Unix(1000, 0)
	b := headless.New(800, 600)
	o := newOverlay(t, b, overlay.WithClock(func() time.Time { return now }))

	var dt float32
	require.NoError(t, o.Render(func(ctx *gui.Context) { dt = ctx.DeltaTime }))
	assert.InDelta(t, 1.0/60.0, dt, 1e-6)

	now = now.Add(250 * time.Millisecond)
	require.NoError(t, o.Render(func(ctx *gui.Context) { dt = ctx.DeltaTime }))
	assert.InDelta(t, 0.25, dt, 1e-6)

	// A clock that does not advance falls back to the default step.
	require.NoError(t, o.Render(func(ctx *gui.Context) { dt = ctx.DeltaTime }))
	assert.InDelta(t, 1.0/60.0, dt, 1e-6)
}

func TestPresent(t *testing.T) {
	b := headless.New(800, 600)
	o := newOverlay(t, b, overlay.WithSyncInterval(0))

	o.Present()
	swap := b.HeadlessSurface().SwapChain().(*headless.SwapChain)
	assert.Equal(t, 1, swap.Presents())
	assert.Equal(t, 0, swap.LastInterval())
}

func TestPresentFailureIsLogged(t *testing.T) {
	logs := captureLogs(t)
	b := headless.New(800, 600, headless.WithPresentError(errors.New("device removed")))
	o := newOverlay(t, b)

	assert.NotPanics(t, o.Present)
	assert.Contains(t, logs.String(), "present failed")
	assert.Contains(t, logs.String(), "device removed")

	swap := b.HeadlessSurface().SwapChain().(*headless.SwapChain)
	assert.Zero(t, swap.Presents())
	assert.Equal(t, 1, swap.LastInterval())

	swap.SetError(nil)
	o.Present()
	assert.Equal(t, 1, swap.Presents())
}

func TestConstructionFailures(t *testing.T) {
	boom := errors.New("boom")

	t.Run("shader pipeline", func(t *testing.T) {
		b := headless.New(800, 600, headless.WithPipelineError(boom))
		o, err := overlay.New(b)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, overlay.ErrShaderPipeline)
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, b.Pipeline())
	})

	t.Run("font texture", func(t *testing.T) {
		b := headless.New(800, 600, headless.WithFontError(boom))
		o, err := overlay.New(b)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, overlay.ErrFontTexture)
		assert.ErrorIs(t, err, boom)
		require.NotNil(t, b.Pipeline())
		assert.True(t, b.Pipeline().Closed())
	})
}

func TestAccessorsAndClose(t *testing.T) {
	o, b, err := headless.NewOverlay(800, 600)
	require.NoError(t, err)

	assert.Same(t, b.Device(), o.Device())
	assert.Equal(t, overlay.DeviceContext(b.Device()), o.Context())
	assert.Equal(t, b.HeadlessSurface().SwapChain(), o.SwapChain())
	assert.Equal(t, overlay.Surface(b.HeadlessSurface()), o.Surface())
	require.NotNil(t, o.Toolkit())
	assert.Equal(t, gui.TextureID(b.Font().ShaderResourceView()), o.Toolkit().Fonts().TextureID())

	require.NoError(t, o.Close())
	assert.True(t, b.Pipeline().Closed())
}

func TestConstructionLogs(t *testing.T) {
	logs := captureLogs(t)
	o, _, err := headless.NewOverlay(800, 600, headless.WithOverlayOptions(overlay.WithSyncInterval(2)))
	require.NoError(t, err)
	require.NoError(t, o.Render(func(ctx *gui.Context) { ctx.Text("hi") }))
	require.NoError(t, o.Close())

	out := logs.String()
	assert.Contains(t, out, "overlay: created")
	assert.Contains(t, out, "sync_interval=2")
	assert.Contains(t, out, "overlay: frame rendered")
	assert.Contains(t, out, "vertex buffer grown")
	assert.Contains(t, out, "overlay: closed")
}
