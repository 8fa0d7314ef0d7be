package gui

import (
	"sync"

	"github.com/chewxy/math32"
)

// MaxVertices16 is the vertex capacity of a list indexed with 16-bit indices.
const MaxVertices16 = 1 << 16

// drawListPool provides reuse of DrawList buffers between frames.
// The toolkit rebuilds every list each frame, so keeping the backing arrays
// avoids per-frame allocations.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			Vertices:  make([]Vertex, 0, 1024),
			Indices:   make([]uint32, 0, 2048),
			Commands:  make([]DrawCmd, 0, 16),
			clipStack: make([][4]float32, 0, 8),
		}
	},
}

func acquireDrawList() *DrawList {
	return drawListPool.Get().(*DrawList)
}

func releaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// DrawList accumulates geometry and commands for one layer of a frame.
// Indices are relative to the first vertex of the list.
type DrawList struct {
	Vertices []Vertex
	Indices  []uint32
	Commands []DrawCmd

	clipStack   [][4]float32
	currentClip [4]float32
	textureID   TextureID
	whiteUV     [2]float32
	maxVertices int  // 0 means unlimited
	dropped     int  // primitives rejected by maxVertices
	open        bool // last command is an ElementsCmd accepting more indices
}

// Reset clears the list for a new frame. Retains allocated capacity.
func (dl *DrawList) Reset(clip [4]float32, tex TextureID, whiteUV [2]float32, maxVertices int) {
	dl.Vertices = dl.Vertices[:0]
	dl.Indices = dl.Indices[:0]
	clear(dl.Commands)
	dl.Commands = dl.Commands[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = clip
	dl.textureID = tex
	dl.whiteUV = whiteUV
	dl.maxVertices = maxVertices
	dl.dropped = 0
	dl.open = false
}

// Dropped returns how many primitives were rejected because the list ran
// out of addressable vertices.
func (dl *DrawList) Dropped() int {
	return dl.dropped
}

// ClipRect returns the clip rectangle applied to new primitives.
func (dl *DrawList) ClipRect() [4]float32 {
	return dl.currentClip
}

// PushClipRect pushes a new clip rectangle onto the stack.
// The rectangle is intersected with the current one.
func (dl *DrawList) PushClipRect(x1, y1, x2, y2 float32) {
	dl.clipStack = append(dl.clipStack, dl.currentClip)
	c := dl.currentClip
	dl.currentClip = [4]float32{
		math32.Max(x1, c[0]), math32.Max(y1, c[1]),
		math32.Min(x2, c[2]), math32.Min(y2, c[3]),
	}
	dl.open = false
}

// PopClipRect pops the clip rectangle stack.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n > 0 {
		dl.currentClip = dl.clipStack[n-1]
		dl.clipStack = dl.clipStack[:n-1]
		dl.open = false
	}
}

// SetTexture sets the texture recorded on subsequent elements commands.
func (dl *DrawList) SetTexture(id TextureID) {
	if dl.textureID != id {
		dl.textureID = id
		dl.open = false
	}
}

// AddCallback appends a command that hands control to fn during rendering.
func (dl *DrawList) AddCallback(fn DrawCallback, data any) {
	if fn == nil {
		return
	}
	dl.Commands = append(dl.Commands, CallbackCmd{Fn: fn, Data: data})
	dl.open = false
}

// AddResetRenderState appends a command that makes the renderer reinstall
// its device state.
func (dl *DrawList) AddResetRenderState() {
	dl.Commands = append(dl.Commands, ResetRenderStateCmd{})
	dl.open = false
}

// reserve reports whether n more vertices fit, counting a drop when they don't.
func (dl *DrawList) reserve(n int) bool {
	if dl.maxVertices > 0 && len(dl.Vertices)+n > dl.maxVertices {
		dl.dropped++
		return false
	}
	if !dl.open {
		dl.Commands = append(dl.Commands, ElementsCmd{
			ClipRect:  dl.currentClip,
			TextureID: dl.textureID,
		})
		dl.open = true
	}
	return true
}

// addVertices adds vertices and returns the index of the first one.
func (dl *DrawList) addVertices(verts ...Vertex) uint32 {
	start := uint32(len(dl.Vertices))
	dl.Vertices = append(dl.Vertices, verts...)
	return start
}

// addIndices appends indices and extends the open elements command.
func (dl *DrawList) addIndices(indices ...uint32) {
	dl.Indices = append(dl.Indices, indices...)
	last := len(dl.Commands) - 1
	cmd := dl.Commands[last].(ElementsCmd)
	cmd.Count += uint32(len(indices))
	dl.Commands[last] = cmd
}

func (dl *DrawList) addQuad(v0, v1, v2, v3 Vertex) {
	if !dl.reserve(4) {
		return
	}
	idx := dl.addVertices(v0, v1, v2, v3)
	dl.addIndices(idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddRect draws a filled rectangle.
func (dl *DrawList) AddRect(x, y, w, h float32, color uint32) {
	if color&0xFF000000 == 0 { // Skip fully transparent
		return
	}
	uv := dl.whiteUV
	dl.addQuad(
		Vertex{Pos: [2]float32{x, y}, UV: uv, Color: color},
		Vertex{Pos: [2]float32{x + w, y}, UV: uv, Color: color},
		Vertex{Pos: [2]float32{x + w, y + h}, UV: uv, Color: color},
		Vertex{Pos: [2]float32{x, y + h}, UV: uv, Color: color},
	)
}

// AddRectOutline draws a rectangle outline.
func (dl *DrawList) AddRectOutline(x, y, w, h float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	dl.AddRect(x, y, w, thickness, color)
	dl.AddRect(x, y+h-thickness, w, thickness, color)
	dl.AddRect(x, y+thickness, thickness, h-2*thickness, color)
	dl.AddRect(x+w-thickness, y+thickness, thickness, h-2*thickness, color)
}

// AddLine draws a line between two points as a quad of the given thickness.
func (dl *DrawList) AddLine(x1, y1, x2, y2 float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}

	dx := x2 - x1
	dy := y2 - y1
	inv := float32(1)
	if dx != 0 || dy != 0 {
		inv = 1 / math32.Sqrt(dx*dx+dy*dy)
	}

	// Normal perpendicular to line
	nx := -dy * inv * thickness * 0.5
	ny := dx * inv * thickness * 0.5

	uv := dl.whiteUV
	dl.addQuad(
		Vertex{Pos: [2]float32{x1 + nx, y1 + ny}, UV: uv, Color: color},
		Vertex{Pos: [2]float32{x2 + nx, y2 + ny}, UV: uv, Color: color},
		Vertex{Pos: [2]float32{x2 - nx, y2 - ny}, UV: uv, Color: color},
		Vertex{Pos: [2]float32{x1 - nx, y1 - ny}, UV: uv, Color: color},
	)
}

// AddTriangle draws a filled triangle.
func (dl *DrawList) AddTriangle(x1, y1, x2, y2, x3, y3 float32, color uint32) {
	if color&0xFF000000 == 0 || !dl.reserve(3) {
		return
	}
	uv := dl.whiteUV
	idx := dl.addVertices(
		Vertex{Pos: [2]float32{x1, y1}, UV: uv, Color: color},
		Vertex{Pos: [2]float32{x2, y2}, UV: uv, Color: color},
		Vertex{Pos: [2]float32{x3, y3}, UV: uv, Color: color},
	)
	dl.addIndices(idx, idx+1, idx+2)
}

// GlyphQuad represents a single character's rendering quad.
type GlyphQuad struct {
	X0, Y0 float32 // Screen coordinates (top-left)
	X1, Y1 float32 // Screen coordinates (bottom-right)
	U0, V0 float32 // Texture coordinates (top-left)
	U1, V1 float32 // Texture coordinates (bottom-right)
}

// AddGlyphQuads draws a slice of glyph quads with the specified color.
func (dl *DrawList) AddGlyphQuads(quads []GlyphQuad, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	for _, q := range quads {
		dl.addQuad(
			Vertex{Pos: [2]float32{q.X0, q.Y0}, UV: [2]float32{q.U0, q.V0}, Color: color},
			Vertex{Pos: [2]float32{q.X1, q.Y0}, UV: [2]float32{q.U1, q.V0}, Color: color},
			Vertex{Pos: [2]float32{q.X1, q.Y1}, UV: [2]float32{q.U1, q.V1}, Color: color},
			Vertex{Pos: [2]float32{q.X0, q.Y1}, UV: [2]float32{q.U0, q.V1}, Color: color},
		)
	}
}

// AddText draws text with the atlas glyphs at (x, y), the top-left corner
// of the first character cell.
func (dl *DrawList) AddText(atlas *FontAtlas, x, y float32, text string, color uint32, scale float32) {
	if atlas == nil || color&0xFF000000 == 0 || text == "" {
		return
	}
	cw := float32(atlas.CellWidth) * scale
	ch := float32(atlas.CellHeight) * scale
	px := x
	for _, r := range text {
		if r == ' ' {
			px += cw
			continue
		}
		uv := atlas.Glyph(r)
		dl.addQuad(
			Vertex{Pos: [2]float32{px, y}, UV: [2]float32{uv[0], uv[1]}, Color: color},
			Vertex{Pos: [2]float32{px + cw, y}, UV: [2]float32{uv[2], uv[1]}, Color: color},
			Vertex{Pos: [2]float32{px + cw, y + ch}, UV: [2]float32{uv[2], uv[3]}, Color: color},
			Vertex{Pos: [2]float32{px, y + ch}, UV: [2]float32{uv[0], uv[3]}, Color: color},
		)
		px += cw
	}
}

// Finalize removes empty elements commands. Call after all primitives are added.
func (dl *DrawList) Finalize() {
	filtered := dl.Commands[:0]
	for _, cmd := range dl.Commands {
		if e, ok := cmd.(ElementsCmd); ok && e.Count == 0 {
			continue
		}
		filtered = append(filtered, cmd)
	}
	clear(dl.Commands[len(filtered):])
	dl.Commands = filtered
	dl.open = false
}
