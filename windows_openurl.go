//go:build windows
// +build windows

// Windows-specific opener.
// Uses ShellExecuteW so the shader file opens in the user's associated editor.
package main

import (
	"syscall"
	"unsafe"
)

var (
	shell32           = syscall.NewLazyDLL("shell32.dll")
	procShellExecuteW = shell32.NewProc("ShellExecuteW")
)

// openWithDefaultApp opens a file or URL with its default handler.
func openWithDefaultApp(target string) error {
	operationUTF16, err := syscall.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	targetUTF16, err := syscall.UTF16PtrFromString(target)
	if err != nil {
		return err
	}

	ret, _, callErr := procShellExecuteW.Call(
		0, // hwnd (NULL)
		uintptr(unsafe.Pointer(operationUTF16)),
		uintptr(unsafe.Pointer(targetUTF16)),
		0, // lpParameters (NULL)
		0, // lpDirectory (NULL)
		1, // SW_SHOWNORMAL
	)

	// ShellExecute returns a value > 32 on success
	if ret <= 32 {
		if errno, ok := callErr.(syscall.Errno); ok && errno != 0 {
			return errno
		}
		return syscall.Errno(ret)
	}
	return nil
}
