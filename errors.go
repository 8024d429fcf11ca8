package main

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrEnvironment marks the only fatal path: the built-in shader itself does
// not compile, which points at the graphics driver rather than user input.
var ErrEnvironment = errors.New("graphics environment cannot compile the built-in shader")

// ShaderStage identifies where a shader build failed.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
	StageLink
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageLink:
		return "link"
	default:
		return fmt.Sprintf("ShaderStage(%d)", int(s))
	}
}

// ShaderError carries the compiler or linker diagnostic for a failed build.
type ShaderError struct {
	Stage ShaderStage
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == StageLink {
		return "shader program linking failed: " + e.Log
	}
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// FallbackKind names the input that was replaced by a default.
type FallbackKind string

const (
	FallbackShaderFile    FallbackKind = "shader-file"
	FallbackShaderCompile FallbackKind = "shader-compile"
	FallbackFontSize      FallbackKind = "font-size"
	FallbackFontFamily    FallbackKind = "font-family"
)

// Fallback records one user input that could not be used as given.
// Subject is the offending value (a path, a size, a family name).
type Fallback struct {
	Kind    FallbackKind
	Subject string
	Err     error
}

func (f Fallback) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s %q: using default", f.Kind, f.Subject)
	}
	return fmt.Sprintf("%s %q: %v: using default", f.Kind, f.Subject, f.Err)
}

func (f Fallback) Unwrap() error { return f.Err }

// reportFallback is the single place where degraded inputs are logged.
func reportFallback(logger *slog.Logger, f Fallback) {
	attrs := []any{
		slog.String("kind", string(f.Kind)),
		slog.String("subject", f.Subject),
	}
	if f.Err != nil {
		attrs = append(attrs, slog.String("error", f.Err.Error()))
	}
	var shaderErr *ShaderError
	if errors.As(f.Err, &shaderErr) {
		attrs = append(attrs, slog.String("stage", shaderErr.Stage.String()))
	}
	logger.Warn("falling back to default", attrs...)
}
