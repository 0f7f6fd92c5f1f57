//go:build darwin

package dylib

const (
	libPrefix = "lib"
	libSuffix = ".dylib"
)

func extMatch(ext string) bool { return ext == libSuffix }
