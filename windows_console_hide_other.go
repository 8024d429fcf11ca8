//go:build !windows
// +build !windows

package main

// hideConsoleWindow is a no-op outside Windows; the terminal the program was
// started from keeps its log output.
func hideConsoleWindow() {}
