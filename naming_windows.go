//go:build windows

package dylib

import "strings"

const (
	libPrefix = ""
	libSuffix = ".dll"
)

// the Windows loader is case-insensitive about the extension.
func extMatch(ext string) bool { return strings.EqualFold(ext, libSuffix) }
