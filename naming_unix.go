//go:build linux || freebsd

package dylib

const (
	libPrefix = "lib"
	libSuffix = ".so"
)

func extMatch(ext string) bool { return ext == libSuffix }
