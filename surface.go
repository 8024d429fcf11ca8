package main

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
)

// surfaceBackend adds the quad, texture and framebuffer calls the render
// surface needs on top of shader compilation.
type surfaceBackend interface {
	shaderBackend
	CreateQuad() (vao, vbo, ebo uint32)
	DeleteQuad(vao, vbo, ebo uint32)
	CreateTexture() uint32
	UploadTexture(texture uint32, img *image.RGBA)
	DeleteTexture(texture uint32)
	Viewport(width, height int)
	Clear()
	DrawQuad(vao, texture uint32)
}

var errSurfaceDestroyed = errors.New("attach shader: surface destroyed")

// UniformSetter receives per-frame uniform values.
type UniformSetter interface {
	SetUniform(name string, value float32)
}

// RenderSurface is the drawable content area: a quad covering the whole
// framebuffer, textured with the text surface and shaded by the attached
// program. It exclusively owns that program.
type RenderSurface struct {
	backend surfaceBackend
	logger  *slog.Logger

	program       *ShaderProgram
	source        ShaderSource
	vao, vbo, ebo uint32
	texture       uint32
	width, height int
	destroyed     bool
}

// NewRenderSurface allocates the quad and texture. No program is attached
// until Attach succeeds.
func NewRenderSurface(backend surfaceBackend, logger *slog.Logger, width, height int) *RenderSurface {
	s := &RenderSurface{
		backend: backend,
		logger:  logger,
	}
	s.vao, s.vbo, s.ebo = backend.CreateQuad()
	s.texture = backend.CreateTexture()
	s.Resize(width, height)
	return s
}

// Attach compiles src and installs it. A user shader that fails to build is
// reported and replaced by the built-in shader. The previous program is
// released only after the new one compiled, so the surface always holds
// exactly one working program. The returned error wraps ErrEnvironment.
func (s *RenderSurface) Attach(src ShaderSource) error {
	if s.destroyed {
		return errSurfaceDestroyed
	}

	program, err := CompileProgram(s.backend, src.Text)
	if err != nil && src.Origin != OriginDefault {
		reportFallback(s.logger, Fallback{Kind: FallbackShaderCompile, Subject: describeSource(src), Err: err})
		src = DefaultShaderSource()
		program, err = CompileProgram(s.backend, src.Text)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEnvironment, err)
	}

	previous := s.program
	s.program = program
	s.source = src
	if previous != nil {
		previous.Destroy()
	}

	s.logger.Debug("shader attached",
		slog.String("origin", src.Origin.String()),
		slog.Uint64("program", uint64(program.Handle())))
	return nil
}

// Source returns the shader text that is actually bound.
func (s *RenderSurface) Source() ShaderSource {
	return s.source
}

// Attached reports whether a compiled program is bound.
func (s *RenderSurface) Attached() bool {
	return s.program != nil
}

// Resize follows the framebuffer. Only the viewport changes.
func (s *RenderSurface) Resize(width, height int) {
	if s.destroyed || width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.backend.Viewport(width, height)
}

// Size returns the current framebuffer size in pixels.
func (s *RenderSurface) Size() (int, int) {
	return s.width, s.height
}

// UploadText replaces the texture sampled as `tex`.
func (s *RenderSurface) UploadText(img *image.RGBA) {
	if s.destroyed || img == nil {
		return
	}
	s.backend.UploadTexture(s.texture, img)
}

// SetUniform forwards to the bound program. Without one the write is
// skipped for this frame.
func (s *RenderSurface) SetUniform(name string, value float32) {
	if s.destroyed || s.program == nil {
		return
	}
	s.program.SetUniform(name, value)
}

// Draw renders one frame.
func (s *RenderSurface) Draw() {
	if s.destroyed {
		return
	}
	s.backend.Clear()
	if s.program == nil {
		return
	}
	s.program.Use()
	s.backend.DrawQuad(s.vao, s.texture)
}

// Destroy releases the program, quad and texture. Further calls on the
// surface are no-ops.
func (s *RenderSurface) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	if s.program != nil {
		s.program.Destroy()
		s.program = nil
	}
	s.backend.DeleteTexture(s.texture)
	s.backend.DeleteQuad(s.vao, s.vbo, s.ebo)
}

func describeSource(src ShaderSource) string {
	if src.Origin == OriginFile {
		return src.Path
	}
	return src.Origin.String()
}
