package dylib

import (
	"errors"

	"github.com/ZenLiuCN/fn"
)

// IsLoadable reports whether the OS loader can open name, by opening and
// discarding a transient handle. Only the UnsatisfiedLinkError failure kind
// downgrades to false; any other failure is a defect and panics. A close
// failure after a successful open does not negate loadability.
func IsLoadable(name string) bool {
	l, err := Open(name, nil, false)
	if err != nil {
		var ule *UnsatisfiedLinkError
		if errors.As(err, &ule) {
			return false
		}
		panic(err)
	}
	fn.IgnoreClose(l)
	return true
}

// LibraryPath resolves the absolute on-disk path of name through a transient
// lazily-bound Library. The transient open bumps the loader's reference
// count until the handle closes on return; treat the result as informational,
// not as proof the caller already loaded the library. On success the path
// satisfies IsLibraryPath.
func LibraryPath(name string) (p string, err error) {
	var l Library
	if l, err = Open(name, nil, false); err != nil {
		return
	}
	defer fn.IgnoreClose(l)
	return l.ResolvedPath()
}
