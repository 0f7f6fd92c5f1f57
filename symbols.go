package dylib

import (
	"github.com/ebitengine/purego"
)

type (
	// Signature describes one foreign function: return type, ordered
	// parameter types, calling convention tag and variadic flag. Signatures
	// are opaque data to the runtime, declared once and immutable for the
	// process lifetime. No check against what the library actually exports is
	// performed at bind time; a mismatch is undefined behavior exactly as it
	// is for a mis-cast function pointer.
	Signature struct {
		Return     string   `toml:"return"`
		Params     []string `toml:"params"`
		Convention string   `toml:"convention"` // defaults to CallC
		Variadic   bool     `toml:"variadic"`
	}
	//Symbol declares one foreign function by name and Signature.
	Symbol struct {
		Name string `toml:"name"`
		Signature
	}
	/*Symbols is the declared set of foreign functions plus the storage for
	their bound addresses.

	Note:

	1. One Symbols may back any number of Library instances; all of them
	   observe and mutate the same slots. Bound addresses are meant to be
	   called directly by ordinary code, not through an instance.
	2. Load and unload against a shared Symbols are not synchronized here;
	   callers mutating from several goroutines must serialize externally.
	*/
	Symbols interface {
		Names() []string                         //declared names in declaration order
		Loaded() []string                        //currently bound names in declaration order
		Signature(name string) (Signature, bool) //declared signature of name
		Addr(name string) uintptr                //bound address of name, zero when unbound
		Func(fptr any, name string)              //materialize the bound address of name as the Go function *fptr
		internal() *symtab
	}
	slot struct {
		sym  Symbol
		addr uintptr
	}
	symtab struct {
		slots []slot
		index map[string]int
	}
)

// CallC is the only calling convention this runtime binds.
const CallC = "C"

// noSymbols backs probe style opens that declare nothing.
var noSymbols = &symtab{index: map[string]int{}}

// NewSymbols declares an ordered foreign symbol set with every slot unbound.
// An empty or duplicated name is a declaration error. A Convention left empty
// defaults to CallC.
func NewSymbols(decl ...Symbol) (Symbols, error) {
	t := &symtab{index: make(map[string]int, len(decl))}
	for _, d := range decl {
		if d.Name == "" {
			return nil, ErrEmptyName
		}
		if _, ok := t.index[d.Name]; ok {
			return nil, ErrDuplicated
		}
		if d.Convention == "" {
			d.Convention = CallC
		}
		t.index[d.Name] = len(t.slots)
		t.slots = append(t.slots, slot{sym: d})
	}
	return t, nil
}

func (t *symtab) internal() *symtab { return t }

func (t *symtab) Names() (n []string) {
	n = make([]string, len(t.slots))
	for i, s := range t.slots {
		n[i] = s.sym.Name
	}
	return
}

func (t *symtab) Loaded() (n []string) {
	for _, s := range t.slots {
		if s.addr != 0 {
			n = append(n, s.sym.Name)
		}
	}
	return
}

func (t *symtab) Signature(name string) (Signature, bool) {
	if i, ok := t.index[name]; ok {
		return t.slots[i].sym.Signature, true
	}
	return Signature{}, false
}

func (t *symtab) Addr(name string) uintptr {
	if i, ok := t.index[name]; ok {
		return t.slots[i].addr
	}
	return 0
}

// Func registers the bound address of name over *fptr via purego.RegisterFunc
// so call sites can use it as an ordinary Go function. The Go-side function
// shape is validated by purego only; the declared Signature is not consulted.
// Panics ErrUndeclared for an undeclared name and defers to purego for an
// unbound (zero) address.
func (t *symtab) Func(fptr any, name string) {
	i, ok := t.index[name]
	if !ok {
		panic(ErrUndeclared)
	}
	purego.RegisterFunc(fptr, t.slots[i].addr)
}
