package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/overlay"
)

// framebufferBinding pairs a framebuffer target with its binding query.
type framebufferBinding struct {
	target, query uint32
}

// framebufferBindings are the framebuffer targets saved by a snapshot.
var framebufferBindings = [...]framebufferBinding{
	{gl.DRAW_FRAMEBUFFER, gl.DRAW_FRAMEBUFFER_BINDING},
	{gl.READ_FRAMEBUFFER, gl.READ_FRAMEBUFFER_BINDING},
}

// glState is everything the overlay touches on a GL context.
type glState struct {
	activeTexture  int32
	program        int32
	texture        int32 // bound on overlayTextureUnit
	activeBound    int32 // bound on the host's active unit
	arrayBuffer    int32
	vertexArray    int32
	uniformBuffer  int32
	uniformBinding int32
	uniformStart   int64
	uniformSize    int64
	framebuffers   [len(framebufferBindings)]int32
	polygonMode    [2]int32
	viewport       [4]int32
	scissorBox     [4]int32

	blendSrcRGB, blendDstRGB     int32
	blendSrcAlpha, blendDstAlpha int32
	blendEqRGB, blendEqAlpha     int32

	blend, cull, depth, stencil, scissor bool

	surface *Surface
}

func captureState(s *Surface) *glState {
	st := &glState{surface: s}
	gl.GetIntegerv(gl.ACTIVE_TEXTURE, &st.activeTexture)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &st.activeBound)
	gl.ActiveTexture(overlayTextureUnit)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &st.texture)
	gl.ActiveTexture(uint32(st.activeTexture))

	gl.GetIntegerv(gl.CURRENT_PROGRAM, &st.program)
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &st.arrayBuffer)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &st.vertexArray)
	gl.GetIntegerv(gl.UNIFORM_BUFFER_BINDING, &st.uniformBuffer)
	gl.GetIntegeri_v(gl.UNIFORM_BUFFER_BINDING, 0, &st.uniformBinding)
	gl.GetInteger64i_v(gl.UNIFORM_BUFFER_START, 0, &st.uniformStart)
	gl.GetInteger64i_v(gl.UNIFORM_BUFFER_SIZE, 0, &st.uniformSize)
	for i, fb := range framebufferBindings {
		gl.GetIntegerv(fb.query, &st.framebuffers[i])
	}
	gl.GetIntegerv(gl.POLYGON_MODE, &st.polygonMode[0])
	gl.GetIntegerv(gl.VIEWPORT, &st.viewport[0])
	gl.GetIntegerv(gl.SCISSOR_BOX, &st.scissorBox[0])

	gl.GetIntegerv(gl.BLEND_SRC_RGB, &st.blendSrcRGB)
	gl.GetIntegerv(gl.BLEND_DST_RGB, &st.blendDstRGB)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &st.blendSrcAlpha)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &st.blendDstAlpha)
	gl.GetIntegerv(gl.BLEND_EQUATION_RGB, &st.blendEqRGB)
	gl.GetIntegerv(gl.BLEND_EQUATION_ALPHA, &st.blendEqAlpha)

	st.blend = gl.IsEnabled(gl.BLEND)
	st.cull = gl.IsEnabled(gl.CULL_FACE)
	st.depth = gl.IsEnabled(gl.DEPTH_TEST)
	st.stencil = gl.IsEnabled(gl.STENCIL_TEST)
	st.scissor = gl.IsEnabled(gl.SCISSOR_TEST)
	return st
}

// Restore writes the captured state back. The context argument is unused;
// GL state is global to the current context.
func (st *glState) Restore(overlay.DeviceContext) {
	gl.UseProgram(uint32(st.program))
	gl.ActiveTexture(overlayTextureUnit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(st.texture))
	gl.ActiveTexture(uint32(st.activeTexture))
	gl.BindTexture(gl.TEXTURE_2D, uint32(st.activeBound))

	gl.BindVertexArray(uint32(st.vertexArray))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(st.arrayBuffer))
	if st.uniformSize > 0 {
		gl.BindBufferRange(gl.UNIFORM_BUFFER, 0, uint32(st.uniformBinding),
			int(st.uniformStart), int(st.uniformSize))
	} else {
		gl.BindBufferBase(gl.UNIFORM_BUFFER, 0, uint32(st.uniformBinding))
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, uint32(st.uniformBuffer))
	for i, fb := range framebufferBindings {
		gl.BindFramebuffer(fb.target, uint32(st.framebuffers[i]))
	}

	gl.BlendEquationSeparate(uint32(st.blendEqRGB), uint32(st.blendEqAlpha))
	gl.BlendFuncSeparate(uint32(st.blendSrcRGB), uint32(st.blendDstRGB),
		uint32(st.blendSrcAlpha), uint32(st.blendDstAlpha))

	setEnabled(gl.BLEND, st.blend)
	setEnabled(gl.CULL_FACE, st.cull)
	setEnabled(gl.DEPTH_TEST, st.depth)
	setEnabled(gl.STENCIL_TEST, st.stencil)
	setEnabled(gl.SCISSOR_TEST, st.scissor)

	gl.PolygonMode(gl.FRONT_AND_BACK, uint32(st.polygonMode[0]))
	gl.Viewport(st.viewport[0], st.viewport[1], st.viewport[2], st.viewport[3])
	gl.Scissor(st.scissorBox[0], st.scissorBox[1], st.scissorBox[2], st.scissorBox[3])

	if st.surface != nil {
		st.surface.ctx.viewportHeight = st.viewport[3]
	}
}

func setEnabled(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}
