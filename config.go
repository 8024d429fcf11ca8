package main

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	DEFAULT_FONT_FAMILY = "Monospace"
	DEFAULT_FONT_SIZE   = 12
)

var errNonPositiveSize = errors.New("font size must be a positive number of pixels")

// Options are the raw command-line inputs. Empty strings mean "not given";
// FontSizeSet distinguishes an explicit 0 from an absent flag.
type Options struct {
	ShaderPath  string
	ShaderCode  string
	FontFamily  string
	FontSize    int
	FontSizeSet bool
}

// FontConfig styles the text surface. Size is in pixels and always positive.
type FontConfig struct {
	Family string
	Size   int
}

// AppConfig is built once per process and handed to the window unchanged.
type AppConfig struct {
	Shader ShaderSource
	Font   FontConfig
}

// ResolveConfig turns options into a usable configuration, logging every
// fallback it takes. It never fails.
func ResolveConfig(opts Options, logger *slog.Logger) AppConfig {
	cfg, fallbacks := resolveConfig(opts, os.ReadFile)
	for _, f := range fallbacks {
		reportFallback(logger, f)
	}
	if opts.ShaderPath != "" && strings.TrimSpace(opts.ShaderCode) != "" {
		logger.Debug("inline shader ignored, --shader takes precedence", slog.String("path", opts.ShaderPath))
	}
	logger.Debug("configuration resolved",
		slog.String("shader", cfg.Shader.Origin.String()),
		slog.String("shader_path", cfg.Shader.Path),
		slog.String("font_family", cfg.Font.Family),
		slog.Int("font_size", cfg.Font.Size))
	return cfg
}

func resolveConfig(opts Options, readFile func(string) ([]byte, error)) (AppConfig, []Fallback) {
	var fallbacks []Fallback

	shader, fb := ResolveShaderSource(opts.ShaderPath, opts.ShaderCode, readFile)
	if fb != nil {
		fallbacks = append(fallbacks, *fb)
	}

	font := FontConfig{Family: DEFAULT_FONT_FAMILY, Size: DEFAULT_FONT_SIZE}
	if family := strings.TrimSpace(opts.FontFamily); family != "" {
		font.Family = family
	}
	switch {
	case opts.FontSize > 0:
		font.Size = opts.FontSize
	case opts.FontSize < 0 || opts.FontSizeSet:
		fallbacks = append(fallbacks, Fallback{
			Kind:    FallbackFontSize,
			Subject: strconv.Itoa(opts.FontSize),
			Err:     errNonPositiveSize,
		})
	}

	return AppConfig{Shader: shader, Font: font}, fallbacks
}
