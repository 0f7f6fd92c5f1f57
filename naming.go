package dylib

import (
	"path/filepath"
	"strings"
)

// LibraryFilename transforms a bare library name ("c", "ssl") into this
// platform's shared library filename ("libc.so", "libssl.dylib", "ssl.dll").
// The name must not contain a directory separator; the transform is pure and
// total.
func LibraryFilename(name string) string {
	return libPrefix + name + libSuffix
}

// IsLibraryFilename reports whether candidate carries the platform prefix and
// extension of a shared library filename. Trailing version suffixes are
// stripped until the platform extension remains ("libc.so.6",
// "libfoo.so.1.2.3") or nothing is left to strip.
func IsLibraryFilename(candidate string) bool {
	if !strings.HasPrefix(candidate, libPrefix) {
		return false
	}
	for {
		ext := filepath.Ext(candidate)
		if ext == "" {
			return false
		}
		if extMatch(ext) {
			return true
		}
		candidate = strings.TrimSuffix(candidate, ext)
	}
}

// IsLibraryPath reports whether path names a file whose base name satisfies
// IsLibraryFilename. A path is handed to the OS loader as-is, a bare name is
// transformed first; this predicate tells the two apart.
func IsLibraryPath(path string) bool {
	if path == "" || strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return false
	}
	return IsLibraryFilename(filepath.Base(path))
}
