//go:build !windows
// +build !windows

package main

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openWithDefaultApp opens a file or URL with the desktop's default handler.
func openWithDefaultApp(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", target)
	default:
		return fmt.Errorf("opening files is not supported on %s", runtime.GOOS)
	}
	return cmd.Start()
}
