/*
Package overlay renders an immediate-mode UI on top of a host application's
own rendering, sharing the host's device context without disturbing it.

# Overview

Each frame the host calls [Overlay.Render] with a function that builds the UI
through a [gui.Context]. Render then:

  - snapshots the device context state,
  - sizes the viewport and render target from the window,
  - installs the overlay's shaders and fixed-function state,
  - builds the frame and uploads its geometry,
  - translates every draw command into device calls,
  - restores the snapshot.

The restore is deferred, so it also runs when Render returns an error or the
build function panics. The host's next draw call sees exactly the state it
left behind.

# Quick Start

	// Setup, with the host's GL context already current and initialized.
	ov, err := opengl.AttachOverlay(window, 0,
	    overlay.WithToolkitOptions(gui.WithStyle(gui.GTAStyle())))
	if err != nil {
	    return err
	}
	defer ov.Close()

	// Host loop
	for !window.ShouldClose() {
	    drawHostScene()

	    err := ov.Render(func(ctx *gui.Context) {
	        ctx.Panel("Menu", gui.Width(240))(func() {
	            ctx.Text("Hello World")
	            if ctx.Button("Click Me") {
	                // Button was clicked
	            }
	        })
	    })
	    if err != nil && !errors.Is(err, overlay.ErrInvalidDisplaySize) {
	        return err
	    }
	    ov.Present()
	}

When the overlay owns the window, [opengl.NewOverlay] makes the context
current and loads the GL entry points itself.

# Draw Commands

A [gui.DrawList] carries three kinds of commands:

	gui.ElementsCmd          indexed triangles clipped to a rectangle
	gui.ResetRenderStateCmd  reinstall the overlay's device state
	gui.CallbackCmd          hand the device to host code mid-frame

Callbacks may change any state. Follow them with a reset command when more
overlay geometry comes after.

Indices of a list are relative to the list's first vertex. Lists are uploaded
back to back and drawn with a running base vertex and start index.

# Backends

Device work goes through the [Backend] interface and its collaborators:

	backend/opengl    OpenGL 4.1 core profile on a GLFW window
	backend/headless  in-memory recording device for tests and inspection

Only the font atlas texture is ever bound. Texture ids recorded on draw
commands are ignored.

# Threading

Render, Present and Close must run on the host's render thread. The package
logger ([SetLogger]) is the only state safe for concurrent use.
*/
package overlay
