// Command gen renders sample overlay frames offscreen, captures framebuffer
// pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/overlay"
	"github.com/go-theft-auto/overlay/backend/opengl"
	"github.com/go-theft-auto/overlay/gui"
)

const (
	fbWidth  = 800
	fbHeight = 600
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot is one captured region of a rendered frame.
type screenshot struct {
	name   string                 // filename without extension
	width  int                    // cropped width, from the top-left corner
	height int                    // cropped height
	draw   func(ctx *gui.Context) // overlay content
	input  func(in *gui.InputState)
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	// The hidden window is larger than every screenshot, which is cropped
	// from its top-left corner.
	window, err := glfw.CreateWindow(fbWidth, fbHeight, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(window, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(window *glfw.Window, s screenshot, outDir string) error {
	// Fresh overlay per screenshot so no toolkit state leaks between them.
	input := gui.NewInputState()
	ov, err := opengl.NewOverlay(window,
		overlay.WithToolkitOptions(gui.WithStyle(gui.GTAStyle()), gui.WithInput(input)))
	if err != nil {
		return err
	}
	defer ov.Close()

	// Two frames: the first settles layout-dependent state such as hover.
	for i := 0; i < 2; i++ {
		if s.input != nil {
			s.input(input)
		}
		gl.Viewport(0, 0, fbWidth, fbHeight)
		gl.Disable(gl.SCISSOR_TEST)
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := ov.Render(s.draw); err != nil {
			return err
		}
	}

	// GL's origin is bottom-left: the top-left crop starts fbHeight-height rows up.
	pixels := make([]byte, s.width*s.height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, int32(fbHeight-s.height), int32(s.width), int32(s.height),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	flipRows(pixels, s.width*4, s.height)

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// flipRows reverses the row order of an image buffer in place.
func flipRows(pix []byte, stride, height int) {
	tmp := make([]byte, stride)
	for y := 0; y < height/2; y++ {
		top := y * stride
		bot := (height - 1 - y) * stride
		copy(tmp, pix[top:top+stride])
		copy(pix[top:top+stride], pix[bot:bot+stride])
		copy(pix[bot:bot+stride], tmp)
	}
}

func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name: "text", width: 300, height: 110,
			draw: func(ctx *gui.Context) {
				ctx.SetCursorPos(10, 10)
				ctx.Text("Normal text")
				ctx.TextColored("Colored text", gui.ColorYellow)
				ctx.TextDisabled("Disabled text")
				ctx.LabelText("Label", "value")
			},
		},
		{
			name: "button", width: 260, height: 70,
			draw: func(ctx *gui.Context) {
				ctx.SetCursorPos(10, 10)
				ctx.Button("Normal")
				ctx.SameLine()
				ctx.Button("Hovered")
			},
			input: func(in *gui.InputState) {
				in.SetMousePos(90, 20)
			},
		},
		{
			name: "checkbox", width: 220, height: 70,
			draw: func(ctx *gui.Context) {
				on, off := true, false
				ctx.SetCursorPos(10, 10)
				ctx.Checkbox("Enabled", &on)
				ctx.Checkbox("Disabled", &off)
			},
		},
		{
			name: "progress", width: 240, height: 70,
			draw: func(ctx *gui.Context) {
				ctx.SetCursorPos(10, 10)
				ctx.ProgressBar(0.25, 200)
				ctx.ProgressBar(0.75, 200)
			},
		},
		{
			name: "panel", width: 320, height: 220,
			draw: func(ctx *gui.Context) {
				ctx.SetCursorPos(10, 10)
				ctx.Panel("Player", gui.Width(280))(func() {
					ctx.LabelText("Health", "100")
					ctx.LabelText("Armor", "50")
					ctx.Separator(250)
					ctx.ProgressBar(0.6, 250)
					ctx.Button("Respawn")
				})
			},
		},
		{
			name: "clip", width: 260, height: 80,
			draw: func(ctx *gui.Context) {
				ctx.PushClipRect(10, 10, 130, 60)
				ctx.DrawList.AddRect(0, 0, 400, 400, gui.RGBA(50, 100, 150, 255))
				ctx.AddText(12, 20, "clipped to 120x50 and beyond", gui.ColorWhite)
				ctx.PopClipRect()
			},
		},
		{
			name: "tooltip", width: 260, height: 80,
			draw: func(ctx *gui.Context) {
				ctx.SetCursorPos(10, 10)
				ctx.Text("Hover me")
				ctx.Tooltip("A tooltip")
			},
			input: func(in *gui.InputState) {
				in.SetMousePos(20, 20)
			},
		},
		{
			name: "callback", width: 240, height: 140,
			draw: func(ctx *gui.Context) {
				ctx.SetCursorPos(10, 10)
				ctx.Text("Raw GL inside the overlay:")
				ctx.AddCallback(func(_ *gui.DrawList, _ any) {
					gl.Enable(gl.SCISSOR_TEST)
					gl.Scissor(10, fbHeight-30-100, 100, 100)
					gl.ClearColor(0.05, 0.25, 0.10, 1.0)
					gl.Clear(gl.COLOR_BUFFER_BIT)
				}, nil)
				ctx.ResetRenderState()
				ctx.DrawList.AddRectOutline(10, 30, 100, 100, gui.ColorYellow, 2)
			},
		},
	}
}
