package main

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

//go:embed shaders/default.frag
var defaultFragmentShader string

// ShaderOrigin tells where the effective shader text came from.
type ShaderOrigin int

const (
	OriginDefault ShaderOrigin = iota
	OriginFile
	OriginInline
)

func (o ShaderOrigin) String() string {
	switch o {
	case OriginDefault:
		return "default"
	case OriginFile:
		return "file"
	case OriginInline:
		return "inline"
	default:
		return fmt.Sprintf("ShaderOrigin(%d)", int(o))
	}
}

// ShaderSource is resolved fragment shader text plus its provenance.
// Path is only set for OriginFile.
type ShaderSource struct {
	Origin ShaderOrigin
	Path   string
	Text   string
}

// DefaultShaderSource returns the built-in fragment shader.
func DefaultShaderSource() ShaderSource {
	return ShaderSource{Origin: OriginDefault, Text: defaultFragmentShader}
}

var (
	errEmptyShader = errors.New("file is empty")
	errInvalidUTF8 = errors.New("file is not valid UTF-8 text")
)

// ResolveShaderSource picks the effective shader text. A path wins over
// inline text. Any problem with the file degrades to the built-in shader and
// is returned as a Fallback; this never fails.
func ResolveShaderSource(path, inline string, readFile func(string) ([]byte, error)) (ShaderSource, *Fallback) {
	if path == "" {
		if strings.TrimSpace(inline) == "" {
			return DefaultShaderSource(), nil
		}
		return ShaderSource{Origin: OriginInline, Text: inline}, nil
	}

	data, err := readFile(path)
	switch {
	case err != nil:
	case len(strings.TrimSpace(string(data))) == 0:
		err = errEmptyShader
	case !utf8.Valid(data):
		err = errInvalidUTF8
	}
	if err != nil {
		return DefaultShaderSource(), &Fallback{Kind: FallbackShaderFile, Subject: path, Err: err}
	}
	return ShaderSource{Origin: OriginFile, Path: path, Text: string(data)}, nil
}

// normalizeShaderSource prepares text for the GL compiler: it strips a
// UTF-8 BOM, converts CRLF line endings and makes sure a #version directive
// comes first.
func normalizeShaderSource(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if firstDirective(text) != "#version" {
		text = glslVersion + "\n" + text
	}
	return text
}

// firstDirective returns the first token of the first line that is neither
// blank nor a comment.
func firstDirective(code string) string {
	inBlockComment := false
	for _, line := range strings.Split(code, "\n") {
		var visible strings.Builder
		for i := 0; i < len(line); i++ {
			if inBlockComment {
				if i+1 < len(line) && line[i] == '*' && line[i+1] == '/' {
					inBlockComment = false
					i++
				}
				continue
			}
			if i+1 < len(line) && line[i] == '/' && line[i+1] == '*' {
				inBlockComment = true
				i++
				continue
			}
			if i+1 < len(line) && line[i] == '/' && line[i+1] == '/' {
				break
			}
			visible.WriteByte(line[i])
		}
		fields := strings.Fields(visible.String())
		if len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}
