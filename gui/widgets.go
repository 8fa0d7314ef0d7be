package gui

// Text draws text at the current cursor position.
func (ctx *Context) Text(text string) {
	ctx.TextColored(text, ctx.style.TextColor)
}

// TextColored draws text with a specific color.
func (ctx *Context) TextColored(text string, color uint32) {
	pos := ctx.ItemPos()
	ctx.AddText(pos.X, pos.Y, text, color)
	ctx.AdvanceCursor(pos, ctx.MeasureText(text))
}

// TextDisabled draws text with the disabled color.
func (ctx *Context) TextDisabled(text string) {
	ctx.TextColored(text, ctx.style.TextDisabledColor)
}

// LabelText draws "label: value".
func (ctx *Context) LabelText(label, value string) {
	ctx.Text(label + ": " + value)
}

// Button draws a button and returns true if clicked.
func (ctx *Context) Button(label string) bool {
	pos := ctx.ItemPos()
	textSize := ctx.MeasureText(label)
	size := Vec2{
		X: textSize.X + ctx.style.ButtonPadding*2,
		Y: textSize.Y + ctx.style.ButtonPadding*2,
	}
	rect := Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}

	bgColor := ctx.style.ButtonColor
	if ctx.isHovered(rect) {
		bgColor = ctx.style.ButtonHoveredColor
	}
	if ctx.isPressed(rect) {
		bgColor = ctx.style.ButtonActiveColor
	}
	ctx.DrawList.AddRect(pos.X, pos.Y, size.X, size.Y, bgColor)

	// Text centered in the button
	ctx.AddText(pos.X+(size.X-textSize.X)/2, pos.Y+(size.Y-textSize.Y)/2, label, ctx.style.TextColor)

	clicked := ctx.isClicked(rect)
	ctx.AdvanceCursor(pos, size)
	return clicked
}

// Checkbox draws a checkbox with label.
// Returns true if the value changed.
func (ctx *Context) Checkbox(label string, value *bool) bool {
	pos := ctx.ItemPos()
	boxSize := ctx.LineHeight()
	size := Vec2{X: boxSize + ctx.style.ItemSpacing + ctx.MeasureText(label).X, Y: boxSize}
	rect := Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}

	boxColor := ctx.style.InputBgColor
	if ctx.isHovered(rect) {
		boxColor = ctx.style.InputHoveredColor
	}
	ctx.DrawList.AddRect(pos.X, pos.Y, boxSize, boxSize, boxColor)
	ctx.DrawList.AddRectOutline(pos.X, pos.Y, boxSize, boxSize, ctx.style.InputBorderColor, 1)

	if *value {
		pad := boxSize * 0.2
		x1, y1 := pos.X+pad, pos.Y+pad
		x2, y2 := pos.X+boxSize-pad, pos.Y+boxSize-pad
		ctx.DrawList.AddLine(x1, y1, x2, y2, ctx.style.TextColor, 2)
		ctx.DrawList.AddLine(x1, y2, x2, y1, ctx.style.TextColor, 2)
	}

	ctx.AddText(pos.X+boxSize+ctx.style.ItemSpacing, pos.Y, label, ctx.style.TextColor)

	changed := false
	if ctx.isClicked(rect) {
		*value = !*value
		changed = true
	}
	ctx.AdvanceCursor(pos, size)
	return changed
}

// ProgressBar draws a horizontal bar filled to fraction (0..1).
func (ctx *Context) ProgressBar(fraction, width float32) {
	pos := ctx.ItemPos()
	size := Vec2{X: width, Y: ctx.LineHeight()}
	fraction = clampf(fraction, 0, 1)

	ctx.DrawList.AddRect(pos.X, pos.Y, size.X, size.Y, ctx.style.InputBgColor)
	ctx.DrawList.AddRect(pos.X, pos.Y, size.X*fraction, size.Y, ctx.style.ProgressBarColor)
	ctx.AdvanceCursor(pos, size)
}

// Separator draws a horizontal line across width.
func (ctx *Context) Separator(width float32) {
	pos := ctx.ItemPos()
	ctx.DrawList.AddRect(pos.X, pos.Y, width, 1, ctx.style.SeparatorColor)
	ctx.AdvanceCursor(pos, Vec2{X: width, Y: 1})
}

// Spacing adds vertical space.
func (ctx *Context) Spacing(pixels float32) {
	ctx.cursor.Y += pixels
}

// Tooltip draws text next to the mouse cursor on the foreground list.
func (ctx *Context) Tooltip(text string) {
	if ctx.Input == nil {
		return
	}
	size := ctx.MeasureText(text)
	pad := ctx.style.PanelPadding / 2
	x, y := ctx.Input.MouseX+12, ctx.Input.MouseY+12
	ctx.ForegroundDrawList.AddRect(x, y, size.X+pad*2, size.Y+pad*2, ctx.style.PanelColor)
	ctx.ForegroundDrawList.AddText(ctx.fonts, x+pad, y+pad, text, ctx.style.TextColor, ctx.style.FontScale)
}

// PanelOption configures a Panel.
type PanelOption func(*panelOptions)

type panelOptions struct {
	width   float32
	padding float32
}

// Width fixes the panel width and clips its content to it.
func Width(w float32) PanelOption {
	return func(o *panelOptions) { o.width = w }
}

// Padding sets the panel's inner padding.
func Padding(p float32) PanelOption {
	return func(o *panelOptions) { o.padding = p }
}

// Panel draws a titled panel around the widgets produced by the content
// function. Usage:
//
//	ctx.Panel("Stats", gui.Width(240))(func() {
//		ctx.Text("fps: 60")
//	})
//
// The background goes to the background list so it stays behind content
// whose extent is only known after it has been drawn.
func (ctx *Context) Panel(title string, opts ...PanelOption) func(func()) {
	return func(content func()) {
		o := panelOptions{padding: ctx.style.PanelPadding}
		for _, opt := range opts {
			opt(&o)
		}

		start := ctx.ItemPos()
		headerH := ctx.LineHeight() + o.padding

		savedIndent, savedMaxX := ctx.indentX, ctx.maxX
		ctx.indentX = start.X + o.padding
		ctx.maxX = start.X
		ctx.cursor = Vec2{X: ctx.indentX, Y: start.Y + headerH + o.padding}

		if o.width > 0 {
			ctx.DrawList.PushClipRect(start.X, start.Y, start.X+o.width, ctx.DisplayPos.Y+ctx.DisplaySize.Y)
		}
		content()
		if o.width > 0 {
			ctx.DrawList.PopClipRect()
		}

		width := o.width
		if width <= 0 {
			width = max(ctx.maxX-start.X+o.padding, ctx.MeasureText(title).X+o.padding*2)
		}
		height := ctx.cursor.Y - start.Y + o.padding - ctx.style.ItemSpacing

		bg := ctx.BackgroundDrawList
		bg.AddRect(start.X, start.Y, width, height, ctx.style.PanelColor)
		bg.AddRect(start.X, start.Y, width, headerH, ctx.style.PanelHeaderBgColor)
		if ctx.style.BorderSize > 0 {
			bg.AddRectOutline(start.X, start.Y, width, height, ctx.style.PanelBorderColor, ctx.style.BorderSize)
		}
		titleColor := ctx.style.PanelHeaderTextColor
		if titleColor == 0 {
			titleColor = ctx.style.TextColor
		}
		ctx.AddText(start.X+o.padding, start.Y+o.padding/2, title, titleColor)

		ctx.indentX = savedIndent
		ctx.maxX = savedMaxX
		ctx.cursor = Vec2{X: savedIndent, Y: start.Y}
		ctx.AdvanceCursor(start, Vec2{X: width, Y: height})
	}
}
