package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShader(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveShaderSource(t *testing.T) {
	valid := writeShader(t, "valid.frag", validUserShader)
	empty := writeShader(t, "empty.frag", "  \n\t\n")
	binary := writeShader(t, "binary.frag", "\xff\xfe\x00garbage")
	missing := filepath.Join(t.TempDir(), "missing.frag")

	tests := []struct {
		name         string
		path         string
		inline       string
		wantOrigin   ShaderOrigin
		wantText     string
		wantFallback bool
	}{
		{name: "no input", wantOrigin: OriginDefault, wantText: defaultFragmentShader},
		{name: "blank inline", inline: "   ", wantOrigin: OriginDefault, wantText: defaultFragmentShader},
		{name: "inline", inline: validUserShader, wantOrigin: OriginInline, wantText: validUserShader},
		{name: "file", path: valid, wantOrigin: OriginFile, wantText: validUserShader},
		{name: "file wins over inline", path: valid, inline: "void main() {}", wantOrigin: OriginFile, wantText: validUserShader},
		{name: "missing file", path: missing, wantOrigin: OriginDefault, wantText: defaultFragmentShader, wantFallback: true},
		{name: "empty file", path: empty, wantOrigin: OriginDefault, wantText: defaultFragmentShader, wantFallback: true},
		{name: "not utf-8", path: binary, wantOrigin: OriginDefault, wantText: defaultFragmentShader, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, fb := ResolveShaderSource(tt.path, tt.inline, os.ReadFile)
			assert.Equal(t, tt.wantOrigin, src.Origin)
			assert.Equal(t, tt.wantText, src.Text)
			assert.NotEmpty(t, src.Text)
			if !tt.wantFallback {
				assert.Nil(t, fb)
				return
			}
			require.NotNil(t, fb)
			assert.Equal(t, FallbackShaderFile, fb.Kind)
			assert.Equal(t, tt.path, fb.Subject)
			assert.Error(t, fb.Err)
			assert.Empty(t, src.Path)
		})
	}
}

func TestResolveShaderSourceMissingFileKeepsCause(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.frag")
	_, fb := ResolveShaderSource(path, "", os.ReadFile)
	require.NotNil(t, fb)
	assert.ErrorIs(t, fb, fs.ErrNotExist)
	assert.Contains(t, fb.Error(), path)
}

func TestResolveShaderSourceReadError(t *testing.T) {
	readFile := func(string) ([]byte, error) { return nil, fs.ErrPermission }
	src, fb := ResolveShaderSource("/srv/effects/locked.frag", "", readFile)
	assert.Equal(t, DefaultShaderSource(), src)
	require.NotNil(t, fb)
	assert.ErrorIs(t, fb, fs.ErrPermission)
}

func TestDefaultShaderDeclaresUniforms(t *testing.T) {
	src := DefaultShaderSource()
	assert.True(t, strings.HasPrefix(src.Text, "#version 330 core"))
	assert.Contains(t, src.Text, "uniform sampler2D tex;")
	assert.Contains(t, src.Text, "uniform float time;")
	assert.Contains(t, src.Text, "0.5 + 0.5 * sin(time)")
}

func TestNormalizeShaderSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "version kept",
			in:   "#version 330 core\nvoid main() {}\n",
			want: "#version 330 core\nvoid main() {}\n",
		},
		{
			name: "version after comments kept",
			in:   "// effect\n/* multi\nline */\n#version 330 core\nvoid main() {}",
			want: "// effect\n/* multi\nline */\n#version 330 core\nvoid main() {}",
		},
		{
			name: "version added",
			in:   "void main() {}",
			want: "#version 330 core\nvoid main() {}",
		},
		{
			name: "crlf and bom",
			in:   "\ufeff#version 330 core\r\nvoid main() {}\r\n",
			want: "#version 330 core\nvoid main() {}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeShaderSource(tt.in))
		})
	}
}
