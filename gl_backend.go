package main

import (
	"image"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// glBackend talks to the OpenGL 3.3 core context made current on the
// calling thread. gl.Init must have succeeded before it is used.
type glBackend struct{}

func (glBackend) CompileShader(stage ShaderStage, source string) (uint32, string, bool) {
	shaderType := uint32(gl.FRAGMENT_SHADER)
	if stage == StageVertex {
		shaderType = gl.VERTEX_SHADER
	}
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		return shader, readInfoLog(logLength, func(buf *uint8) {
			gl.GetShaderInfoLog(shader, logLength, nil, buf)
		}), false
	}
	return shader, "", true
}

func (glBackend) LinkProgram(vertex, fragment uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		return program, readInfoLog(logLength, func(buf *uint8) {
			gl.GetProgramInfoLog(program, logLength, nil, buf)
		}), false
	}
	gl.DetachShader(program, vertex)
	gl.DetachShader(program, fragment)
	return program, "", true
}

func readInfoLog(length int32, read func(*uint8)) string {
	if length <= 0 {
		return ""
	}
	logBytes := make([]byte, length+1)
	read(&logBytes[0])
	return strings.TrimRight(string(logBytes), "\x00 \n")
}

func (glBackend) DeleteShader(handle uint32) {
	if handle != 0 {
		gl.DeleteShader(handle)
	}
}

func (glBackend) DeleteProgram(program uint32) {
	if program != 0 {
		gl.DeleteProgram(program)
	}
}

func (glBackend) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (glBackend) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (glBackend) Uniform1f(location int32, value float32) {
	gl.Uniform1f(location, value)
}

// CreateQuad builds a quad covering clip space. Texture rows are flipped so
// that image row 0 ends up at the top of the window.
func (glBackend) CreateQuad() (uint32, uint32, uint32) {
	vertices := []float32{
		// x, y, u, v
		-1.0, -1.0, 0.0, 1.0, // bottom left
		1.0, -1.0, 1.0, 1.0, // bottom right
		1.0, 1.0, 1.0, 0.0, // top right
		-1.0, 1.0, 0.0, 0.0, // top left
	}
	indices := []uint32{
		0, 1, 2,
		0, 2, 3,
	}

	var vao, vbo, ebo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.GenBuffers(1, &ebo)

	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	// a_position (location 0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	// a_texcoord (location 1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return vao, vbo, ebo
}

func (glBackend) DeleteQuad(vao, vbo, ebo uint32) {
	gl.DeleteBuffers(1, &ebo)
	gl.DeleteBuffers(1, &vbo)
	gl.DeleteVertexArrays(1, &vao)
}

func (glBackend) CreateTexture() uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}

func (glBackend) UploadTexture(texture uint32, img *image.RGBA) {
	bounds := img.Bounds()
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(bounds.Dx()), int32(bounds.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (glBackend) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (glBackend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (glBackend) Clear() {
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (glBackend) DrawQuad(vao, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.BindVertexArray(vao)
	gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}
