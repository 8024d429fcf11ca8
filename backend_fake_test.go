package main

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strings"
)

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

// fakeBackend stands in for the GL driver. A fragment shader containing
// "#error" fails to compile, mirroring the GLSL directive.
type fakeBackend struct {
	failDefault bool
	failLink    bool
	emptyLog    bool

	nextHandle uint32
	shaders    map[uint32]string
	programs   map[uint32][]string
	current    uint32

	compiles  int
	uniforms  map[uint32]map[int32]float32
	viewports [][2]int
	uploads   int
	draws     int
	textures  map[uint32]bool
	quads     map[uint32]bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		shaders:  make(map[uint32]string),
		programs: make(map[uint32][]string),
		uniforms: make(map[uint32]map[int32]float32),
		textures: make(map[uint32]bool),
		quads:    make(map[uint32]bool),
	}
}

func (b *fakeBackend) handle() uint32 {
	b.nextHandle++
	return b.nextHandle
}

func (b *fakeBackend) CompileShader(stage ShaderStage, source string) (uint32, string, bool) {
	b.compiles++
	h := b.handle()
	b.shaders[h] = source

	broken := strings.Contains(source, "#error")
	if stage == StageFragment && b.failDefault && source == normalizeShaderSource(defaultFragmentShader) {
		broken = true
	}
	if !broken {
		return h, "", true
	}
	if b.emptyLog {
		return h, "", false
	}
	return h, fmt.Sprintf("0:1(1): error: %s shader rejected", stage), false
}

func (b *fakeBackend) LinkProgram(vertex, fragment uint32) (uint32, string, bool) {
	p := b.handle()
	var names []string
	for _, m := range uniformDecl.FindAllStringSubmatch(b.shaders[fragment], -1) {
		names = append(names, m[1])
	}
	b.programs[p] = names
	if b.failLink {
		return p, "error: linking with uncompiled shader", false
	}
	return p, "", true
}

func (b *fakeBackend) DeleteShader(handle uint32) { delete(b.shaders, handle) }

func (b *fakeBackend) DeleteProgram(program uint32) {
	delete(b.programs, program)
	delete(b.uniforms, program)
}

func (b *fakeBackend) UniformLocation(program uint32, name string) int32 {
	for i, n := range b.programs[program] {
		if n == name {
			return int32(i)
		}
	}
	return -1
}

func (b *fakeBackend) UseProgram(program uint32) { b.current = program }

func (b *fakeBackend) Uniform1f(location int32, value float32) {
	if b.uniforms[b.current] == nil {
		b.uniforms[b.current] = make(map[int32]float32)
	}
	b.uniforms[b.current][location] = value
}

func (b *fakeBackend) CreateQuad() (uint32, uint32, uint32) {
	vao := b.handle()
	b.quads[vao] = true
	return vao, b.handle(), b.handle()
}

func (b *fakeBackend) DeleteQuad(vao, _, _ uint32) { delete(b.quads, vao) }

func (b *fakeBackend) CreateTexture() uint32 {
	t := b.handle()
	b.textures[t] = true
	return t
}

func (b *fakeBackend) UploadTexture(uint32, *image.RGBA) { b.uploads++ }

func (b *fakeBackend) DeleteTexture(texture uint32) { delete(b.textures, texture) }

func (b *fakeBackend) Viewport(width, height int) {
	b.viewports = append(b.viewports, [2]int{width, height})
}

func (b *fakeBackend) Clear() {}

func (b *fakeBackend) DrawQuad(uint32, uint32) { b.draws++ }

// uniformValue reads back a uniform of the given program.
func (b *fakeBackend) uniformValue(program uint32, name string) (float32, bool) {
	loc := b.UniformLocation(program, name)
	v, ok := b.uniforms[program][loc]
	return v, ok
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

const validUserShader = `#version 330 core
in vec2 v_texcoord;
out vec4 fragColor;
uniform sampler2D tex;
uniform float time;

void main() {
    fragColor = texture(tex, v_texcoord) * abs(sin(time));
}
`

const brokenUserShader = `#version 330 core
#error this shader does not build
void main() {}
`
