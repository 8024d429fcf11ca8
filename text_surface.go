package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	TEXT_BACKGROUND_COLOR = "#000000"
	TEXT_FOREGROUND_COLOR = "#00FF00"
	TEXT_PADDING          = 8
)

var errUnknownFamily = errors.New("unknown font family")

// builtinFonts maps lower-cased family names to embedded TrueType data.
var builtinFonts = map[string][]byte{
	"monospace":  gomono.TTF,
	"mono":       gomono.TTF,
	"go mono":    gomono.TTF,
	"sans":       goregular.TTF,
	"sans-serif": goregular.TTF,
	"go":         goregular.TTF,
	"go regular": goregular.TTF,
}

// TextSurface rasterises the terminal text that the fragment shader samples.
// The font only affects this image, never the shader.
type TextSurface struct {
	face       font.Face
	config     FontConfig
	background color.Color
	foreground color.Color
}

// NewTextSurface resolves cfg.Family to a face of cfg.Size pixels.
func NewTextSurface(cfg FontConfig, logger *slog.Logger) *TextSurface {
	face, fb := loadFontFace(cfg, os.ReadFile)
	if fb != nil {
		reportFallback(logger, *fb)
	}
	return &TextSurface{
		face:       face,
		config:     cfg,
		background: parseColor(TEXT_BACKGROUND_COLOR),
		foreground: parseColor(TEXT_FOREGROUND_COLOR),
	}
}

func loadFontFace(cfg FontConfig, readFile func(string) ([]byte, error)) (font.Face, *Fallback) {
	family := strings.ToLower(strings.TrimSpace(cfg.Family))

	var (
		data []byte
		fb   *Fallback
	)
	switch ext := filepath.Ext(family); {
	case ext == ".ttf" || ext == ".otf":
		fileData, err := readFile(cfg.Family)
		if err != nil {
			fb = &Fallback{Kind: FallbackFontFamily, Subject: cfg.Family, Err: err}
			data = gomono.TTF
		} else {
			data = fileData
		}
	case builtinFonts[family] != nil:
		data = builtinFonts[family]
	default:
		fb = &Fallback{Kind: FallbackFontFamily, Subject: cfg.Family, Err: errUnknownFamily}
		data = gomono.TTF
	}

	face, err := newFace(data, cfg.Size)
	if err != nil {
		if fb == nil {
			fb = &Fallback{Kind: FallbackFontFamily, Subject: cfg.Family, Err: err}
		}
		return basicfont.Face7x13, fb
	}
	return face, fb
}

func newFace(data []byte, size int) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}

// Render draws lines top-down on a black background and puts a block cursor
// after the last line. Lines that do not fit are dropped.
func (t *TextSurface) Render(width, height int, lines []string) *image.RGBA {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(t.background), image.Point{}, draw.Src)

	metrics := t.face.Metrics()
	lineHeight := metrics.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = t.config.Size
	}
	ascent := metrics.Ascent.Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(t.foreground),
		Face: t.face,
	}

	y := TEXT_PADDING + ascent
	for i, line := range lines {
		if y-ascent+lineHeight > height {
			break
		}
		d.Dot = fixed.P(TEXT_PADDING, y)
		d.DrawString(line)

		if i == len(lines)-1 {
			t.drawCursor(img, d.Dot.X.Ceil(), y-ascent, lineHeight)
		}
		y += lineHeight
	}
	return img
}

func (t *TextSurface) drawCursor(img *image.RGBA, x, top, lineHeight int) {
	advance, ok := t.face.GlyphAdvance('M')
	width := advance.Ceil()
	if !ok || width <= 0 {
		width = lineHeight / 2
	}
	cursor := image.Rect(x, top, x+width, top+lineHeight)
	draw.Draw(img, cursor.Intersect(img.Bounds()), image.NewUniform(t.foreground), image.Point{}, draw.Src)
}

// Config returns the font configuration the surface was built with.
func (t *TextSurface) Config() FontConfig {
	return t.config
}

// Close releases the font face.
func (t *TextSurface) Close() error {
	return t.face.Close()
}

// parseColor parses hex color string into color.Color
func parseColor(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b uint8
	if len(hex) == 6 {
		fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
