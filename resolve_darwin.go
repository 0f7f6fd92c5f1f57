//go:build darwin

package dylib

import (
	"path/filepath"
	"sync"

	"github.com/ebitengine/purego"
)

// rtldNoLoad makes dlopen return the existing handle without loading.
const rtldNoLoad = 0x10

var (
	dyldOnce   sync.Once
	imageCount func() int32
	imageName  func(i int32) string
)

// osResolvedPath matches h against a RTLD_NOLOAD reopen of every dyld image,
// the only introspection dyld offers short of dladdr on an already bound
// symbol. Iteration runs newest image first, open libraries sit at the tail.
func osResolvedPath(h uintptr, target string) (string, error) {
	dyldOnce.Do(func() {
		purego.RegisterLibFunc(&imageCount, purego.RTLD_DEFAULT, "_dyld_image_count")
		purego.RegisterLibFunc(&imageName, purego.RTLD_DEFAULT, "_dyld_get_image_name")
	})
	loaderMu.Lock()
	defer loaderMu.Unlock()
	for i := imageCount() - 1; i >= 0; i-- {
		name := imageName(i)
		cand, err := purego.Dlopen(name, purego.RTLD_LAZY|rtldNoLoad)
		if err != nil || cand == 0 {
			continue
		}
		_ = purego.Dlclose(cand)
		if cand == h {
			return filepath.Abs(name)
		}
	}
	return "", &UnsatisfiedLinkError{Op: "path", Name: target, Msg: "handle not in dyld image list"}
}
