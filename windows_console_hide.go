//go:build windows
// +build windows

package main

import "syscall"

// hideConsoleWindow hides the console a double-clicked binary gets on
// Windows. main leaves it alone in debug mode so log output stays visible.
func hideConsoleWindow() {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	user32 := syscall.NewLazyDLL("user32.dll")
	procGetConsoleWindow := kernel32.NewProc("GetConsoleWindow")
	procShowWindow := user32.NewProc("ShowWindow")

	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return
	}

	const SW_HIDE = 0
	procShowWindow.Call(hwnd, SW_HIDE)
}
