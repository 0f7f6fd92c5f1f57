//go:build windows

package dylib

import (
	"path/filepath"

	"golang.org/x/sys/windows"
)

func osOpen(target string) (uintptr, error) {
	h, err := windows.LoadLibrary(target)
	if err != nil {
		return 0, &UnsatisfiedLinkError{Op: "open", Name: target, Msg: err.Error()}
	}
	return uintptr(h), nil
}

func osClose(h uintptr) error {
	if err := windows.FreeLibrary(windows.Handle(h)); err != nil {
		return &UnsatisfiedLinkError{Op: "close", Msg: err.Error()}
	}
	return nil
}

func osSymbol(h uintptr, name string) (uintptr, error) {
	u, err := windows.GetProcAddress(windows.Handle(h), name)
	if err != nil {
		return 0, &UnsatisfiedLinkError{Op: "symbol", Name: name, Msg: err.Error()}
	}
	return u, nil
}

func osResolvedPath(h uintptr, target string) (string, error) {
	buf := make([]uint16, windows.MAX_PATH)
	for {
		n, err := windows.GetModuleFileName(windows.Handle(h), &buf[0], uint32(len(buf)))
		if err != nil {
			return "", &UnsatisfiedLinkError{Op: "path", Name: target, Msg: err.Error()}
		}
		if int(n) < len(buf) {
			return filepath.Abs(windows.UTF16ToString(buf[:n]))
		}
		buf = make([]uint16, len(buf)*2)
	}
}
