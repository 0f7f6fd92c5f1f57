//go:build linux || darwin || freebsd

package dylib

import (
	"sync"

	"github.com/ebitengine/purego"
)

// loaderMu serializes the loader's error readout. dlerror state is process
// global: clear, operate, inspect is one critical section, and concurrent
// resolutions on different handles would corrupt each other's diagnostics.
var loaderMu sync.Mutex

func osOpen(target string) (uintptr, error) {
	loaderMu.Lock()
	defer loaderMu.Unlock()
	h, err := purego.Dlopen(target, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, &UnsatisfiedLinkError{Op: "open", Name: target, Msg: err.Error()}
	}
	return h, nil
}

func osClose(h uintptr) error {
	loaderMu.Lock()
	defer loaderMu.Unlock()
	if err := purego.Dlclose(h); err != nil {
		return &UnsatisfiedLinkError{Op: "close", Msg: err.Error()}
	}
	return nil
}

func osSymbol(h uintptr, name string) (uintptr, error) {
	loaderMu.Lock()
	defer loaderMu.Unlock()
	u, err := purego.Dlsym(h, name)
	if err != nil {
		return 0, &UnsatisfiedLinkError{Op: "symbol", Name: name, Msg: err.Error()}
	}
	return u, nil
}
