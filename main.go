// shaderterm renders a terminal-style text surface through a GLSL fragment
// shader and animates its `time` uniform every frame.
//
// Usage:
//
//	shaderterm [--shader FILE | --shader-code GLSL] [--font-family NAME] [--font-size PX]
//
// Rendering pipeline:
//  1. Resolve the shader text (file, inline or the embedded default) and the
//     font into one immutable AppConfig.
//  2. Compile it against a pass-through vertex stage; a shader that does not
//     build is replaced by the default.
//  3. Draw a fullscreen quad textured with the rendered terminal text.
//  4. Push the elapsed seconds into `time` on every frame clock tick.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/pflag"
)

const (
	// Product identity and window geometry.
	APP_ID                = "com.example.TerminalApp"
	WINDOW_TITLE          = "Terminal with Shader Effects"
	DEFAULT_WINDOW_WIDTH  = 800
	DEFAULT_WINDOW_HEIGHT = 600

	// About window.
	ABOUT_WINDOW_TITLE      = "About"
	ABOUT_WINDOW_WIDTH      = 420
	ABOUT_WINDOW_HEIGHT     = 260
	ABOUT_TEXT_FONT_SIZE    = 12
	OPEN_SHADER_BUTTON_TEXT = "Open shader file"
)

// Exit codes.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func init() {
	runtime.LockOSThread() // OpenGL requires single-threaded execution
}

// cliFlags holds everything parsed from the command line.
type cliFlags struct {
	Options
	About              bool
	Debug              bool
	PrintDefaultShader bool
}

func parseFlags(args []string, output io.Writer) (cliFlags, error) {
	var f cliFlags
	fs := pflag.NewFlagSet("shaderterm", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVarP(&f.ShaderPath, "shader", "s", "", "Path to a GLSL fragment shader file")
	fs.StringVarP(&f.ShaderCode, "shader-code", "c", "", "Inline GLSL fragment shader source (ignored when --shader is set)")
	fs.StringVarP(&f.FontFamily, "font-family", "f", "", "Font family to use (default \""+DEFAULT_FONT_FAMILY+"\")")
	fs.IntVarP(&f.FontSize, "font-size", "z", 0, fmt.Sprintf("Font size to use in pixels (default %d)", DEFAULT_FONT_SIZE))
	fs.BoolVar(&f.About, "about", false, "Show the effective configuration and exit")
	fs.BoolVarP(&f.Debug, "debug", "d", false, "Enable debug output")
	fs.BoolVar(&f.PrintDefaultShader, "print-default-shader", false, "Print the built-in fragment shader and exit")

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	f.FontSizeSet = fs.Changed("font-size")
	return f, nil
}

// newLogger builds the stderr text logger shared by every component.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	if debug {
		level.Set(slog.LevelDebug)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := parseFlags(args, os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}

	if flags.PrintDefaultShader {
		fmt.Print(DefaultShaderSource().Text)
		return exitOK
	}

	logger := newLogger(os.Stderr, flags.Debug)
	if !flags.Debug {
		hideConsoleWindow()
	}

	cfg := ResolveConfig(flags.Options, logger)

	if flags.About {
		runAboutMode(cfg, logger)
		return exitOK
	}

	if err := runTerminalMode(cfg, logger); err != nil {
		logger.Error("cannot start terminal window", slog.Any("error", err))
		return exitFatal
	}
	return exitOK
}

// runTerminalMode owns the glfw lifetime for the terminal window.
func runTerminalMode(cfg AppConfig, logger *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize GLFW: %w", err)
	}
	defer glfw.Terminate()

	window, err := NewTerminalWindow(cfg, logger)
	if err != nil {
		return err
	}
	defer window.Close()

	window.Run()
	return nil
}
