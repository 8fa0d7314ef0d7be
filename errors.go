package overlay

import "errors"

var (
	// ErrInvalidDisplaySize is returned by Render when the built frame has a
	// non-positive width or height. The frame is skipped; try again next frame.
	ErrInvalidDisplaySize = errors.New("overlay: invalid display size")

	// ErrShaderPipeline wraps failures creating the shader pipeline.
	ErrShaderPipeline = errors.New("overlay: create shader pipeline")

	// ErrFontTexture wraps failures uploading the font atlas.
	ErrFontTexture = errors.New("overlay: create font texture")

	// ErrGeometryBuffers wraps failures creating the geometry buffers.
	ErrGeometryBuffers = errors.New("overlay: create geometry buffers")

	// ErrUpload wraps failures writing frame geometry or constants.
	ErrUpload = errors.New("overlay: upload frame geometry")
)
