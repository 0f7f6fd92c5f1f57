package dylib

import (
	"log"
	"strings"
)

type (
	/*Library binds a declared foreign symbol set against one shared library.

	Use Steps:

	1. Open with a library name, filename or path and a shared Symbols.
	2. LoadFunction or LoadAllFunctions to bind addresses into the Symbols.
	3. Use the bound addresses directly, see [Symbols.Func] and [Symbols.Addr].
	4. Close to release the loader handle.

	Note:

	1. Close never clears bound addresses; a call through one after the
	   loader dropped its last reference is undefined. Unbind first when the
	   library may go away.
	2. The loader handle is exclusively owned; Handle exposes it read-only.
	   Copying it elsewhere creates a second closer and a double-close hazard.
	*/
	Library interface {
		LoadFunction(name string) error //bind one declared symbol, no-op when already bound
		UnloadFunction(name string)     //clear one declared slot, never fails
		LoadAllFunctions() error        //bind every declared symbol in declaration order, fail fast
		UnloadAllFunctions()            //clear every declared slot
		LoadedFunctions() []string      //bound names in declaration order
		IsLoaded() bool                 //whether the loader handle is open
		ResolvedPath() (string, error)  //absolute on-disk path of the open library
		Handle() uintptr                //raw loader handle, zero after Close
		Target() string                 //the filename or path handed to the OS loader
		Close() error                   //release the loader handle, idempotent
		internal()
	}
	library struct {
		target string
		sym    *symtab
		handle uintptr
		debug  bool
	}
)

// Open resolves nameOrPath to a load target, opens it with the OS loader in
// resolve-now mode and, when loadAllNow, binds every declared symbol. A bare
// name ("ssl") is transformed by LibraryFilename; an exact filename or a path
// ("libssl.so.1.1", "/opt/lib/libcustom.so") goes to the loader as-is. A nil
// sym is an empty declared set. An optional debug parameter enables debug
// logging.
func Open(nameOrPath string, sym Symbols, loadAllNow bool, debug ...bool) (Library, error) {
	x := new(library)
	x.debug = len(debug) > 0 && debug[0]
	if sym == nil {
		sym = noSymbols
	}
	x.sym = sym.internal()
	x.target = loadTarget(nameOrPath)
	h, err := osOpen(x.target)
	if err != nil {
		return nil, err
	}
	x.handle = h
	if x.debug {
		log.Printf("opened %s: %#x", x.target, h)
	}
	if loadAllNow {
		if err = x.LoadAllFunctions(); err != nil {
			_ = x.Close()
			return nil, err
		}
	}
	return x, nil
}

// loadTarget keeps a path or an exact filename as-is, a bare name transforms.
func loadTarget(nameOrPath string) string {
	if strings.ContainsAny(nameOrPath, `/\`) || IsLibraryFilename(nameOrPath) {
		return nameOrPath
	}
	return LibraryFilename(nameOrPath)
}

func (s *library) internal() {}

func (s *library) Target() string { return s.target }

func (s *library) Handle() uintptr { return s.handle }

func (s *library) IsLoaded() bool { return s.handle != 0 }

func (s *library) LoadFunction(name string) (err error) {
	if s.handle == 0 {
		panic(ErrClosed)
	}
	i, ok := s.sym.index[name]
	if !ok {
		panic(ErrUndeclared)
	}
	if s.sym.slots[i].addr != 0 {
		return
	}
	var u uintptr
	if u, err = osSymbol(s.handle, name); err != nil {
		return
	}
	s.sym.slots[i].addr = u
	if s.debug {
		log.Printf("bound %s: %#x", name, u)
	}
	return
}

func (s *library) UnloadFunction(name string) {
	i, ok := s.sym.index[name]
	if !ok {
		panic(ErrUndeclared)
	}
	s.sym.slots[i].addr = 0
}

// LoadAllFunctions binds in declaration order and fails fast: symbols bound
// before the failure point stay bound, the rest stay unbound.
func (s *library) LoadAllFunctions() (err error) {
	for _, sl := range s.sym.slots {
		if err = s.LoadFunction(sl.sym.Name); err != nil {
			return
		}
	}
	return
}

func (s *library) UnloadAllFunctions() {
	for i := range s.sym.slots {
		s.sym.slots[i].addr = 0
	}
}

func (s *library) LoadedFunctions() []string { return s.sym.Loaded() }

func (s *library) ResolvedPath() (string, error) {
	if s.handle == 0 {
		panic(ErrClosed)
	}
	return osResolvedPath(s.handle, s.target)
}

// Close releases the loader handle; closing twice is a no-op. Bound addresses
// are left as-is and dangle once the loader drops its last reference.
func (s *library) Close() (err error) {
	if s.handle == 0 {
		return
	}
	if err = osClose(s.handle); err != nil {
		return
	}
	if s.debug {
		log.Printf("closed %s", s.target)
	}
	s.handle = 0
	return
}
