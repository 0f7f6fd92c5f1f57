//go:build linux || freebsd

package dylib

import (
	"path/filepath"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// rtldDILinkMap asks dlinfo for the link_map entry backing a handle.
const rtldDILinkMap = 2

// linkMap mirrors the leading fields of the loader's struct link_map.
type linkMap struct {
	addr uintptr
	name *byte
	ld   uintptr
	next *linkMap
	prev *linkMap
}

var (
	dlinfoOnce sync.Once
	dlinfo     func(handle uintptr, request int32, info unsafe.Pointer) int32
)

// osResolvedPath walks the handle's link map entry for the on-disk path the
// loader actually mapped.
func osResolvedPath(h uintptr, target string) (string, error) {
	dlinfoOnce.Do(func() {
		if _, err := purego.Dlsym(purego.RTLD_DEFAULT, "dlinfo"); err == nil {
			purego.RegisterLibFunc(&dlinfo, purego.RTLD_DEFAULT, "dlinfo")
		}
	})
	if dlinfo == nil {
		return "", &UnsatisfiedLinkError{Op: "path", Name: target, Msg: "loader lacks dlinfo"}
	}
	loaderMu.Lock()
	defer loaderMu.Unlock()
	var lm *linkMap
	if rc := dlinfo(h, rtldDILinkMap, unsafe.Pointer(&lm)); rc != 0 || lm == nil {
		return "", &UnsatisfiedLinkError{Op: "path", Name: target, Msg: "dlinfo(RTLD_DI_LINKMAP) failed"}
	}
	p := goString(lm.name)
	if p == "" {
		return "", &UnsatisfiedLinkError{Op: "path", Name: target, Msg: "link map entry has no name"}
	}
	return filepath.Abs(p)
}

// goString copies a NUL terminated C string.
func goString(p *byte) string {
	if p == nil {
		return ""
	}
	var b []byte
	for i := 0; ; i++ {
		c := *(*byte)(unsafe.Add(unsafe.Pointer(p), i))
		if c == 0 {
			return string(b)
		}
		b = append(b, c)
	}
}
