package gui

import "github.com/chewxy/math32"

const (
	layerBackground = iota
	layerMain
	layerForeground
	layerCount
)

// Context is the building handle for a single frame.
// It is only valid between Toolkit.NewFrame and Render and must not be
// retained past the frame callback.
type Context struct {
	// Drawing output, rendered back to front.
	BackgroundDrawList *DrawList // Panel backgrounds
	DrawList           *DrawList
	ForegroundDrawList *DrawList // Popups, tooltips, debug markers

	Input       *InputState
	DisplayPos  Vec2
	DisplaySize Vec2
	DeltaTime   float32
	FrameCount  uint64

	toolkit *Toolkit
	style   Style
	fonts   *FontAtlas

	cursor   Vec2
	indentX  float32
	maxX     float32
	sameLine bool
	lastItem Rect

	rendered bool
}

func newContext(t *Toolkit, deltaTime float32) *Context {
	ctx := &Context{
		BackgroundDrawList: t.layers[layerBackground],
		DrawList:           t.layers[layerMain],
		ForegroundDrawList: t.layers[layerForeground],
		Input:              t.input,
		DisplayPos:         t.displayPos,
		DisplaySize:        t.displaySize,
		DeltaTime:          deltaTime,
		FrameCount:         t.frameCount,
		toolkit:            t,
		style:              t.style,
		fonts:              t.fonts,
		cursor:             t.displayPos,
		indentX:            t.displayPos.X,
	}
	return ctx
}

// Style returns the frame's style.
func (ctx *Context) Style() Style {
	return ctx.style
}

// Fonts returns the font atlas.
func (ctx *Context) Fonts() *FontAtlas {
	return ctx.fonts
}

// LineHeight returns the height of one line of text.
func (ctx *Context) LineHeight() float32 {
	return float32(ctx.fonts.CellHeight) * ctx.style.FontScale
}

// MeasureText returns the size of text in the current style.
func (ctx *Context) MeasureText(text string) Vec2 {
	return ctx.fonts.MeasureText(text, ctx.style.FontScale)
}

// SetCursorPos moves the layout cursor to an absolute display position.
func (ctx *Context) SetCursorPos(x, y float32) {
	ctx.cursor = Vec2{X: x, Y: y}
	ctx.indentX = x
	ctx.sameLine = false
}

// CursorPos returns the layout cursor.
func (ctx *Context) CursorPos() Vec2 {
	return ctx.cursor
}

// LastItemRect returns the rectangle of the most recent widget.
func (ctx *Context) LastItemRect() Rect {
	return ctx.lastItem
}

// SameLine places the next widget to the right of the previous one.
func (ctx *Context) SameLine() {
	ctx.sameLine = true
}

// ItemPos returns the position for the next widget.
func (ctx *Context) ItemPos() Vec2 {
	if ctx.sameLine {
		ctx.sameLine = false
		return Vec2{
			X: ctx.lastItem.X + ctx.lastItem.W + ctx.style.ItemSpacing,
			Y: ctx.lastItem.Y,
		}
	}
	return ctx.cursor
}

// AdvanceCursor records an item of the given size at pos and moves the
// cursor to the next line.
func (ctx *Context) AdvanceCursor(pos, size Vec2) {
	ctx.lastItem = Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}
	ctx.maxX = math32.Max(ctx.maxX, pos.X+size.X)
	next := pos.Y + size.Y + ctx.style.ItemSpacing
	ctx.cursor = Vec2{X: ctx.indentX, Y: math32.Max(ctx.cursor.Y, next)}
}

// AddText draws text into the main draw list.
func (ctx *Context) AddText(x, y float32, text string, color uint32) {
	ctx.DrawList.AddText(ctx.fonts, x, y, text, color, ctx.style.FontScale)
}

// PushClipRect restricts subsequent primitives of the main list.
func (ctx *Context) PushClipRect(x1, y1, x2, y2 float32) {
	ctx.DrawList.PushClipRect(x1, y1, x2, y2)
}

// PopClipRect undoes the last PushClipRect.
func (ctx *Context) PopClipRect() {
	ctx.DrawList.PopClipRect()
}

// AddCallback embeds fn into the main list. The renderer calls it in order
// with the list and data; device state afterwards is up to fn.
func (ctx *Context) AddCallback(fn DrawCallback, data any) {
	ctx.DrawList.AddCallback(fn, data)
}

// ResetRenderState asks the renderer to reinstall its state at this point
// of the main list.
func (ctx *Context) ResetRenderState() {
	ctx.DrawList.AddResetRenderState()
}

func (ctx *Context) isHovered(rect Rect) bool {
	if ctx.Input == nil {
		return false
	}
	return rect.Contains(Vec2{ctx.Input.MouseX, ctx.Input.MouseY})
}

func (ctx *Context) isClicked(rect Rect) bool {
	return ctx.isHovered(rect) && ctx.Input.MouseClicked(MouseButtonLeft)
}

func (ctx *Context) isPressed(rect Rect) bool {
	return ctx.isHovered(rect) && ctx.Input.MouseDown(MouseButtonLeft)
}

// Render finalizes the frame and returns its draw data.
// Only non-empty lists are included, back to front.
func (ctx *Context) Render() *DrawData {
	t := ctx.toolkit
	dd := &t.drawData
	if ctx.rendered {
		return dd
	}
	ctx.rendered = true

	clear(dd.Lists)
	*dd = DrawData{
		DisplayPos:  ctx.DisplayPos,
		DisplaySize: ctx.DisplaySize,
		Lists:       dd.Lists[:0],
	}

	dropped := 0
	for _, dl := range t.layers {
		dl.Finalize()
		dropped += dl.Dropped()
		if len(dl.Commands) == 0 {
			continue
		}
		dd.Lists = append(dd.Lists, dl)
		dd.TotalVertices += len(dl.Vertices)
		dd.TotalIndices += len(dl.Indices)
	}
	if dropped > 0 {
		Logger().Warn("gui: primitives dropped, 16-bit index range exhausted",
			"frame", ctx.FrameCount, "dropped", dropped)
	}

	if ctx.Input != nil {
		ctx.Input.Reset()
	}
	return dd
}
