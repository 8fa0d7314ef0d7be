package opengl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/overlay"
)

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

layout (std140) uniform VertexConstants {
    mat4 projection;
};

out vec2 TexCoord;
out vec4 Color;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

const fragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D fontTexture;

void main() {
    FragColor = Color * texture(fontTexture, TexCoord);
}
` + "\x00"

// ShaderPipeline owns the overlay program and vertex array object.
type ShaderPipeline struct {
	program uint32
	vao     uint32
	texLoc  int32
}

var _ overlay.ShaderPipeline = (*ShaderPipeline)(nil)

func newShaderPipeline() (*ShaderPipeline, error) {
	program, err := createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, err
	}

	block := gl.GetUniformBlockIndex(program, gl.Str("VertexConstants\x00"))
	if block == gl.INVALID_INDEX {
		gl.DeleteProgram(program)
		return nil, errors.New("opengl: uniform block VertexConstants not found")
	}
	gl.UniformBlockBinding(program, block, 0)

	p := &ShaderPipeline{
		program: program,
		texLoc:  gl.GetUniformLocation(program, gl.Str("fontTexture\x00")),
	}
	gl.GenVertexArrays(1, &p.vao)
	return p, nil
}

// Install binds the program and vertex array and sets alpha blending with
// scissoring, no depth, stencil or culling and filled polygons.
func (p *ShaderPipeline) Install(overlay.Surface) {
	gl.UseProgram(p.program)
	gl.Uniform1i(p.texLoc, 0)
	gl.BindVertexArray(p.vao)

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.STENCIL_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

// Close deletes the program and vertex array.
func (p *ShaderPipeline) Close() error {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
	return nil
}

func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("opengl: vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("opengl: fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		log := make([]byte, n+1)
		gl.GetProgramInfoLog(program, n, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("opengl: link program: %s", infoLog(log))
	}
	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
		log := make([]byte, n+1)
		gl.GetShaderInfoLog(shader, n, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, errors.New(infoLog(log))
	}
	return shader, nil
}

// infoLog trims the NUL terminator and trailing whitespace of a GL log.
func infoLog(b []byte) string {
	return strings.TrimSpace(strings.TrimRight(string(b), "\x00"))
}
