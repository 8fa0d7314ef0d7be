// Example draws a host scene with plain OpenGL and renders the overlay on
// top of it every frame.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// The host owns the window and the GL context. The overlay attaches to the
// already-initialized context and leaves the host's GL state untouched.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/overlay"
	"github.com/go-theft-auto/overlay/backend/opengl"
	"github.com/go-theft-auto/overlay/gui"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "overlay example"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// minimap is passed to the draw callback embedded in the overlay.
type minimap struct {
	x, y, size int32
	fbHeight   int32
}

func run() error {
	overlay.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	// The host initializes GL itself; the overlay only attaches.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	input := gui.NewInputState()
	ov, err := opengl.AttachOverlay(window, 0,
		overlay.WithSyncInterval(1),
		overlay.WithToolkitOptions(gui.WithStyle(gui.GTAStyle()), gui.WithInput(input)),
	)
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	defer ov.Close()

	poller := opengl.NewInputPoller(window, input)

	clickCount := 0
	showMinimap := true
	start := time.Now()

	for !window.ShouldClose() {
		glfw.PollEvents()
		poller.Poll()

		t := float32(time.Since(start).Seconds())
		fbW, fbH := window.GetFramebufferSize()
		drawScene(int32(fbW), int32(fbH), t)

		err := ov.Render(func(ctx *gui.Context) {
			ctx.Panel("Overlay", gui.Width(280))(func() {
				ctx.Text("Hello from the overlay!")
				ctx.LabelText("frame", fmt.Sprint(ctx.FrameCount))
				ctx.Spacing(8)

				if ctx.Button(fmt.Sprintf("Click me (%d)", clickCount)) {
					clickCount++
				}
				if ctx.LastItemRect().Contains(gui.Vec2{X: ctx.Input.MouseX, Y: ctx.Input.MouseY}) {
					ctx.Tooltip("counts clicks")
				}
				ctx.Checkbox("Minimap", &showMinimap)
				ctx.ProgressBar(0.5+0.5*math32.Sin(t), 200)

				stats := ov.Stats()
				ctx.Separator(240)
				ctx.TextDisabled(fmt.Sprintf("%d draws, %d vertices", stats.DrawCalls, stats.Vertices))
			})

			if showMinimap {
				m := minimap{x: int32(ctx.DisplaySize.X) - 170, y: 20, size: 150, fbHeight: int32(fbH)}
				ctx.AddCallback(drawMinimap, m)
				ctx.ResetRenderState()
				ctx.DrawList.AddRectOutline(float32(m.x), float32(m.y), float32(m.size), float32(m.size), gui.ColorYellow, 2)
			}
		})
		switch {
		case errors.Is(err, overlay.ErrInvalidDisplaySize):
			// Minimized; try again next frame.
		case err != nil:
			return err
		}

		ov.Present()
	}

	return nil
}

// drawScene is the host's own rendering: a pulsing clear color.
func drawScene(width, height int32, t float32) {
	pulse := 0.5 + 0.5*math32.Sin(t)
	gl.Viewport(0, 0, width, height)
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(0.10, 0.12+0.06*pulse, 0.16, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// drawMinimap runs between overlay draw calls and clears a square with raw
// GL, leaving the overlay's state changed behind it.
func drawMinimap(_ *gui.DrawList, data any) {
	m := data.(minimap)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(m.x, m.fbHeight-m.y-m.size, m.size, m.size)
	gl.ClearColor(0.05, 0.25, 0.10, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
