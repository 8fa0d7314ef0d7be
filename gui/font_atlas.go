package gui

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	atlasWidth   = 128
	atlasHeight  = 80
	atlasColumns = 16
	firstGlyph   = 32
	lastGlyph    = 126
)

// FontAtlas is the single texture the renderer binds: printable ASCII glyphs
// of a fixed bitmap face laid out in a grid, plus an opaque white texel that
// untextured primitives sample.
type FontAtlas struct {
	Width, Height         int
	CellWidth, CellHeight int

	pix     *image.RGBA
	glyphs  [lastGlyph - firstGlyph + 1][4]float32
	whiteUV [2]float32
	texID   TextureID
}

// NewFontAtlas rasterizes the built-in 7x13 face into an RGBA atlas.
func NewFontAtlas() *FontAtlas {
	face := basicfont.Face7x13
	a := &FontAtlas{
		Width:      atlasWidth,
		Height:     atlasHeight,
		CellWidth:  face.Advance,
		CellHeight: face.Height,
		pix:        image.NewRGBA(image.Rect(0, 0, atlasWidth, atlasHeight)),
	}

	d := font.Drawer{Dst: a.pix, Src: image.White, Face: face}
	for r := rune(firstGlyph); r <= lastGlyph; r++ {
		i := int(r - firstGlyph)
		x := (i % atlasColumns) * a.CellWidth
		y := (i / atlasColumns) * a.CellHeight
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(r))

		a.glyphs[i] = [4]float32{
			float32(x) / atlasWidth,
			float32(y) / atlasHeight,
			float32(x+a.CellWidth) / atlasWidth,
			float32(y+a.CellHeight) / atlasHeight,
		}
	}

	// 2x2 white block in the unused top-right corner, sampled at its center.
	for y := 0; y < 2; y++ {
		for x := atlasWidth - 2; x < atlasWidth; x++ {
			o := a.pix.PixOffset(x, y)
			copy(a.pix.Pix[o:o+4], []byte{0xFF, 0xFF, 0xFF, 0xFF})
		}
	}
	a.whiteUV = [2]float32{float32(atlasWidth-1) / atlasWidth, 1.0 / atlasHeight}

	return a
}

// RGBA returns the atlas pixels for texture upload.
func (a *FontAtlas) RGBA() *image.RGBA {
	return a.pix
}

// Glyph returns the (u0, v0, u1, v1) cell of r, substituting '?' for runes the
// atlas does not carry.
func (a *FontAtlas) Glyph(r rune) [4]float32 {
	r = unicodeFallback(r)
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	return a.glyphs[r-firstGlyph]
}

// WhiteUV returns the texture coordinate of an opaque white texel.
func (a *FontAtlas) WhiteUV() [2]float32 {
	return a.whiteUV
}

// SetTextureID records the backend texture holding the atlas.
func (a *FontAtlas) SetTextureID(id TextureID) {
	a.texID = id
}

// TextureID returns the id set by SetTextureID.
func (a *FontAtlas) TextureID() TextureID {
	return a.texID
}

// MeasureText returns the size of text at the given scale.
func (a *FontAtlas) MeasureText(text string, scale float32) Vec2 {
	n := 0
	for range text {
		n++
	}
	return Vec2{
		X: float32(n*a.CellWidth) * scale,
		Y: float32(a.CellHeight) * scale,
	}
}

// unicodeFallback maps common Unicode symbols to ASCII equivalents
// for the built-in bitmap font.
func unicodeFallback(r rune) rune {
	if r >= firstGlyph && r <= lastGlyph {
		return r
	}
	switch r {
	case '►', '▶', '▸', '→':
		return '>'
	case '◄', '◀', '◂', '←':
		return '<'
	case '▼', '▾', '↓':
		return 'v'
	case '▲', '▴', '↑':
		return '^'
	case '●', '•', '◆':
		return '*'
	case '✓', '✔':
		return '+'
	case '✗', '✘':
		return 'x'
	case '—', '–':
		return '-'
	default:
		return r
	}
}
