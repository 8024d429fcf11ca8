package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// TerminalWindow owns the glfw window, the render surface bound to it and the
// frame clock that animates it.
type TerminalWindow struct {
	window  *glfw.Window
	surface *RenderSurface
	text    *TextSurface
	clock   *FrameClock
	config  AppConfig
	logger  *slog.Logger
	closed  bool
}

// NewTerminalWindow creates the window and GL context, compiles the
// configured shader (falling back to the built-in one) and binds it. glfw
// must already be initialised on this thread. A returned error wraps
// ErrEnvironment when even the built-in shader fails.
func NewTerminalWindow(cfg AppConfig, logger *slog.Logger) (*TerminalWindow, error) {
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(DEFAULT_WINDOW_WIDTH, DEFAULT_WINDOW_HEIGHT, WINDOW_TITLE, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("initialize OpenGL: %w", err)
	}
	logger.Debug("OpenGL initialised", slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	// The frame clock owns the cadence.
	glfw.SwapInterval(0)
	gl.Disable(gl.DEPTH_TEST)

	fbWidth, fbHeight := window.GetFramebufferSize()
	surface := NewRenderSurface(glBackend{}, logger, fbWidth, fbHeight)
	if err := surface.Attach(cfg.Shader); err != nil {
		surface.Destroy()
		window.Destroy()
		return nil, err
	}

	w := &TerminalWindow{
		window:  window,
		surface: surface,
		text:    NewTextSurface(cfg.Font, logger),
		config:  cfg,
		logger:  logger,
	}
	w.clock = NewFrameClock(surface, FrameInterval)
	w.refreshText()

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resize(width, height)
	})
	window.SetKeyCallback(func(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		if key == glfw.KeyEscape || (key == glfw.KeyQ && mods&glfw.ModControl != 0) {
			win.SetShouldClose(true)
		}
	})

	return w, nil
}

func (w *TerminalWindow) resize(width, height int) {
	if w.closed || width <= 0 || height <= 0 {
		return
	}
	w.surface.Resize(width, height)
	w.refreshText()
}

func (w *TerminalWindow) refreshText() {
	width, height := w.surface.Size()
	w.surface.UploadText(w.text.Render(width, height, terminalLines(w.config, w.surface.Source())))
}

// Run shows the window and drives it until it is closed. Frames are drawn
// only on frame clock ticks; between ticks the loop sleeps in
// WaitEventsTimeout so input stays responsive.
func (w *TerminalWindow) Run() {
	w.window.Show()
	w.clock.Start()

	stats := newTickStats(w.logger)
	for !w.window.ShouldClose() {
		glfw.WaitEventsTimeout(w.clock.Wait().Seconds())
		if w.closed {
			break
		}
		if !w.clock.Poll() {
			continue
		}
		w.surface.Draw()
		w.window.SwapBuffers()
		stats.observe(time.Now())
	}
}

// Close stops the frame clock before releasing GL resources and the window.
func (w *TerminalWindow) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.clock.Stop()
	w.surface.Destroy()
	if err := w.text.Close(); err != nil {
		w.logger.Debug("closing font face", slog.Any("error", err))
	}
	w.window.Destroy()
}

// terminalLines is the placeholder content of the terminal surface.
func terminalLines(cfg AppConfig, bound ShaderSource) []string {
	shader := "built-in default"
	switch bound.Origin {
	case OriginFile:
		shader = bound.Path
	case OriginInline:
		shader = "inline"
	}
	return []string{
		WINDOW_TITLE,
		"shader: " + shader,
		fmt.Sprintf("font:   %s %dpx", cfg.Font.Family, cfg.Font.Size),
		"",
		"$ ",
	}
}

// tickStats logs the achieved tick rate once per second at debug level.
type tickStats struct {
	logger *slog.Logger
	since  time.Time
	count  int
}

func newTickStats(logger *slog.Logger) *tickStats {
	return &tickStats{logger: logger, since: time.Now()}
}

func (s *tickStats) observe(now time.Time) {
	s.count++
	if now.Sub(s.since) < time.Second {
		return
	}
	fps := float64(s.count) / now.Sub(s.since).Seconds()
	s.logger.Debug("frame clock", slog.Float64("ticks_per_second", fps))
	s.count = 0
	s.since = now
}
