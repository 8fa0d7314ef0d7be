package opengl

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/overlay"
	"github.com/go-theft-auto/overlay/gui"
)

func TestScissorBoxFlipsY(t *testing.T) {
	tests := []struct {
		name       string
		rect       overlay.Rect
		height     int32
		x, y, w, h int32
	}{
		{"full", overlay.Rect{Right: 800, Bottom: 600}, 600, 0, 0, 800, 600},
		{"top strip", overlay.Rect{Left: 10, Top: 0, Right: 110, Bottom: 20}, 600, 10, 580, 100, 20},
		{"bottom strip", overlay.Rect{Left: 0, Top: 580, Right: 50, Bottom: 600}, 600, 0, 0, 50, 20},
		{"inverted width", overlay.Rect{Left: 900, Right: 800, Bottom: 100}, 600, 900, 500, 0, 100},
		{"inverted both", overlay.Rect{Left: 10, Top: 50, Right: 5, Bottom: 40}, 600, 10, 560, 0, 0},
		{"zero size", overlay.Rect{Left: 5, Top: 5, Right: 5, Bottom: 5}, 600, 5, 595, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := scissorBox(tt.rect, tt.height)
			assert.Equal(t, [4]int32{tt.x, tt.y, tt.w, tt.h}, [4]int32{x, y, w, h})
		})
	}
}

func TestPackIndices16(t *testing.T) {
	got := packIndices16(nil, []uint32{0, 1, 2, 65535, 65536})
	assert.Equal(t, []uint16{0, 1, 2, 65535, 0}, got)

	buf := make([]uint16, 0, 8)
	got = packIndices16(buf, []uint32{7})
	assert.Equal(t, []uint16{7}, got)
}

func TestIndexType(t *testing.T) {
	assert.Equal(t, uint32(gl.UNSIGNED_SHORT), indexType(overlay.IndexUint16))
	assert.Equal(t, uint32(gl.UNSIGNED_INT), indexType(overlay.IndexUint32))
}

func TestVertexLayout(t *testing.T) {
	assert.Equal(t, uintptr(8), uvOffset)
	assert.Equal(t, uintptr(16), colorOffset)
	assert.Equal(t, 20, gui.VertexSize)
}

func TestInfoLog(t *testing.T) {
	assert.Equal(t, "0:3: syntax error", infoLog([]byte("0:3: syntax error\n\x00\x00")))
	assert.Empty(t, infoLog([]byte{0}))
}

func TestContentScale(t *testing.T) {
	sx, sy := contentScale(800, 600, 1600, 1200)
	assert.Equal(t, float32(2), sx)
	assert.Equal(t, float32(2), sy)

	sx, sy = contentScale(0, 0, 0, 0)
	assert.Equal(t, float32(1), sx)
	assert.Equal(t, float32(1), sy)
}

func TestSnapshotCoversRenderTarget(t *testing.T) {
	targets := map[uint32]uint32{}
	for _, fb := range framebufferBindings {
		targets[fb.target] = fb.query
	}
	assert.Equal(t, map[uint32]uint32{
		gl.DRAW_FRAMEBUFFER: gl.DRAW_FRAMEBUFFER_BINDING,
		gl.READ_FRAMEBUFFER: gl.READ_FRAMEBUFFER_BINDING,
	}, targets)

	// GL_FRAMEBUFFER would rebind both targets; only the draw target is used.
	assert.Equal(t, uint32(gl.DRAW_FRAMEBUFFER), uint32(renderTargetBinding))
	assert.Contains(t, targets, uint32(renderTargetBinding))
}

func TestFontTextureUnit(t *testing.T) {
	// Uploads and draws bind the atlas on this unit; the snapshot saves it
	// alongside the host's active unit.
	assert.Equal(t, uint32(gl.TEXTURE0), uint32(overlayTextureUnit))
}
