package gui

// Index sizes accepted by WithIndexSize.
const (
	IndexSize16 = 2
	IndexSize32 = 4
)

// Toolkit owns the per-process UI state and produces one DrawData per frame.
type Toolkit struct {
	style     Style
	input     *InputState
	fonts     *FontAtlas
	indexSize int

	displayPos  Vec2
	displaySize Vec2
	frameCount  uint64

	layers   [layerCount]*DrawList
	drawData DrawData
}

// Option configures a Toolkit instance.
type Option func(*Toolkit)

// WithStyle sets the toolkit style.
func WithStyle(style Style) Option {
	return func(t *Toolkit) { t.style = style }
}

// WithIndexSize selects 16-bit (2) or 32-bit (4) indices. Other values are ignored.
func WithIndexSize(size int) Option {
	return func(t *Toolkit) {
		if size == IndexSize16 || size == IndexSize32 {
			t.indexSize = size
		}
	}
}

// WithInput shares a host-owned input state with the toolkit.
func WithInput(input *InputState) Option {
	return func(t *Toolkit) {
		if input != nil {
			t.input = input
		}
	}
}

// WithDisplayPos sets the top-left of the drawable area.
func WithDisplayPos(pos Vec2) Option {
	return func(t *Toolkit) { t.displayPos = pos }
}

// New creates a toolkit with its font atlas already built.
func New(opts ...Option) *Toolkit {
	t := &Toolkit{
		style:     DefaultStyle(),
		input:     NewInputState(),
		fonts:     NewFontAtlas(),
		indexSize: IndexSize16,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Fonts returns the font atlas the renderer uploads as its only texture.
func (t *Toolkit) Fonts() *FontAtlas {
	return t.fonts
}

// IndexSize returns the configured index width in bytes.
func (t *Toolkit) IndexSize() int {
	return t.indexSize
}

// Input returns the input state read by widgets.
func (t *Toolkit) Input() *InputState {
	return t.input
}

// Style returns the current style.
func (t *Toolkit) Style() Style {
	return t.style
}

// SetStyle sets the style used from the next frame on.
func (t *Toolkit) SetStyle(style Style) {
	t.style = style
}

// DisplaySize returns the size of the drawable area.
func (t *Toolkit) DisplaySize() Vec2 {
	return t.displaySize
}

// SetDisplaySize sets the size of the drawable area for subsequent frames.
func (t *Toolkit) SetDisplaySize(size Vec2) {
	t.displaySize = size
}

// DisplayPos returns the top-left of the drawable area.
func (t *Toolkit) DisplayPos() Vec2 {
	return t.displayPos
}

// SetDisplayPos sets the top-left of the drawable area.
func (t *Toolkit) SetDisplayPos(pos Vec2) {
	t.displayPos = pos
}

// FrameCount returns the number of frames started so far.
func (t *Toolkit) FrameCount() uint64 {
	return t.frameCount
}

// NewFrame starts a frame and returns its building handle.
// Draw lists of the previous frame are recycled, so DrawData obtained
// earlier must no longer be used.
func (t *Toolkit) NewFrame(deltaTime float32) *Context {
	t.frameCount++

	maxVertices := 0
	if t.indexSize == IndexSize16 {
		maxVertices = MaxVertices16
	}
	p, s := t.displayPos, t.displaySize
	clip := [4]float32{p.X, p.Y, p.X + s.X, p.Y + s.Y}

	for i := range t.layers {
		releaseDrawList(t.layers[i])
		dl := acquireDrawList()
		dl.Reset(clip, t.fonts.TextureID(), t.fonts.WhiteUV(), maxVertices)
		t.layers[i] = dl
	}

	return newContext(t, deltaTime)
}
