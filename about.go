package main

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// runAboutMode shows the effective configuration in a small fyne window.
// It does not open the GL terminal window.
func runAboutMode(cfg AppConfig, logger *slog.Logger) {
	myApp := app.NewWithID(APP_ID)

	aboutWindow := myApp.NewWindow(ABOUT_WINDOW_TITLE)
	aboutWindow.Resize(fyne.NewSize(ABOUT_WINDOW_WIDTH, ABOUT_WINDOW_HEIGHT))
	aboutWindow.SetFixedSize(true)
	aboutWindow.CenterOnScreen()

	titleLabel := widget.NewLabel(WINDOW_TITLE)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.Alignment = fyne.TextAlignCenter

	infoColor := parseColor(TEXT_FOREGROUND_COLOR)
	lines := []fyne.CanvasObject{titleLabel}
	for _, line := range aboutLines(cfg) {
		text := canvas.NewText(line, infoColor)
		text.TextStyle = fyne.TextStyle{Monospace: true}
		text.TextSize = float32(ABOUT_TEXT_FONT_SIZE)
		lines = append(lines, text)
	}

	openButton := widget.NewButton(OPEN_SHADER_BUTTON_TEXT, func() {
		if err := openWithDefaultApp(cfg.Shader.Path); err != nil {
			logger.Warn("opening shader file", slog.String("path", cfg.Shader.Path), slog.Any("error", err))
		}
	})
	if cfg.Shader.Origin != OriginFile {
		openButton.Disable()
	}

	background := canvas.NewRectangle(parseColor(TEXT_BACKGROUND_COLOR))
	content := container.NewPadded(container.NewVBox(append(lines, openButton)...))

	aboutWindow.SetContent(container.NewStack(background, content))
	aboutWindow.ShowAndRun()
}

// aboutLines lists the configuration the terminal window would use.
func aboutLines(cfg AppConfig) []string {
	path := "-"
	if cfg.Shader.Origin == OriginFile {
		path = cfg.Shader.Path
	}
	return []string{
		"shader origin: " + cfg.Shader.Origin.String(),
		"shader path:   " + path,
		fmt.Sprintf("shader size:   %d bytes", len(cfg.Shader.Text)),
		"font family:   " + cfg.Font.Family,
		fmt.Sprintf("font size:     %dpx", cfg.Font.Size),
	}
}
