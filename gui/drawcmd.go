package gui

// DrawCmd is one instruction in a DrawList's command stream.
// The set of variants is closed: ElementsCmd, ResetRenderStateCmd and CallbackCmd.
type DrawCmd interface {
	drawCmd()
}

// ElementsCmd draws Count indices starting at the renderer's running index
// offset, clipped to ClipRect (x1, y1, x2, y2) in display coordinates.
//
// TextureID is the texture the toolkit intended for the primitives. The
// overlay renderer binds only the font atlas, so any other value is ignored.
type ElementsCmd struct {
	Count     uint32
	ClipRect  [4]float32
	TextureID TextureID
}

// ResetRenderStateCmd asks the renderer to reinstall its device state,
// typically after a CallbackCmd changed it.
type ResetRenderStateCmd struct{}

// DrawCallback is invoked by the renderer in place of normal interpretation.
type DrawCallback func(dl *DrawList, data any)

// CallbackCmd hands control to Fn with the owning list and Data.
type CallbackCmd struct {
	Fn   DrawCallback
	Data any
}

func (ElementsCmd) drawCmd()         {}
func (ResetRenderStateCmd) drawCmd() {}
func (CallbackCmd) drawCmd()         {}
