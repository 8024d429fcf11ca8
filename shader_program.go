package main

import (
	"math"
)

const glslVersion = "#version 330 core"

// passThroughVertexShader feeds the fullscreen quad to every fragment shader.
// Not user-configurable.
const passThroughVertexShader = glslVersion + `
layout(location = 0) in vec2 a_position;
layout(location = 1) in vec2 a_texcoord;
out vec2 v_texcoord;

void main() {
    v_texcoord = a_texcoord;
    gl_Position = vec4(a_position, 0.0, 1.0);
}
`

// shaderBackend is the slice of OpenGL the shader program needs.
// Diagnostics are returned as text; ok reports COMPILE_STATUS/LINK_STATUS.
type shaderBackend interface {
	CompileShader(stage ShaderStage, source string) (handle uint32, infoLog string, ok bool)
	LinkProgram(vertex, fragment uint32) (program uint32, infoLog string, ok bool)
	DeleteShader(handle uint32)
	DeleteProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	UseProgram(program uint32)
	Uniform1f(location int32, value float32)
}

// ShaderProgram is a linked GL program with a cache of uniform locations.
type ShaderProgram struct {
	backend   shaderBackend
	handle    uint32
	locations map[string]int32
	destroyed bool
}

// CompileProgram builds fragmentSource against the pass-through vertex
// stage. On failure it returns a *ShaderError and leaves no GL objects behind.
func CompileProgram(backend shaderBackend, fragmentSource string) (*ShaderProgram, error) {
	vertex, err := compileStage(backend, StageVertex, passThroughVertexShader)
	if err != nil {
		return nil, err
	}
	defer backend.DeleteShader(vertex)

	fragment, err := compileStage(backend, StageFragment, normalizeShaderSource(fragmentSource))
	if err != nil {
		return nil, err
	}
	defer backend.DeleteShader(fragment)

	program, infoLog, ok := backend.LinkProgram(vertex, fragment)
	if !ok {
		backend.DeleteProgram(program)
		return nil, &ShaderError{Stage: StageLink, Log: diagnostic(infoLog)}
	}

	return &ShaderProgram{
		backend:   backend,
		handle:    program,
		locations: make(map[string]int32),
	}, nil
}

func compileStage(backend shaderBackend, stage ShaderStage, source string) (uint32, error) {
	handle, infoLog, ok := backend.CompileShader(stage, source)
	if !ok {
		backend.DeleteShader(handle)
		return 0, &ShaderError{Stage: stage, Log: diagnostic(infoLog)}
	}
	return handle, nil
}

// Some drivers report failure with an empty info log.
func diagnostic(infoLog string) string {
	if infoLog == "" {
		return "no diagnostic reported by the driver"
	}
	return infoLog
}

// Handle returns the GL program name, or 0 once destroyed.
func (p *ShaderProgram) Handle() uint32 {
	if p.destroyed {
		return 0
	}
	return p.handle
}

// Use makes the program current.
func (p *ShaderProgram) Use() {
	if p.destroyed {
		return
	}
	p.backend.UseProgram(p.handle)
}

// SetUniform writes a float uniform. Names the shader does not declare,
// non-finite values and calls on a destroyed program are ignored.
func (p *ShaderProgram) SetUniform(name string, value float32) {
	if p.destroyed {
		return
	}
	if math.IsNaN(float64(value)) || math.IsInf(float64(value), 0) {
		return
	}
	loc, cached := p.locations[name]
	if !cached {
		loc = p.backend.UniformLocation(p.handle, name)
		p.locations[name] = loc
	}
	if loc < 0 {
		return
	}
	p.backend.UseProgram(p.handle)
	p.backend.Uniform1f(loc, value)
}

// Destroy releases the GL program. Safe to call more than once.
func (p *ShaderProgram) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.backend.DeleteProgram(p.handle)
	p.locations = nil
}
