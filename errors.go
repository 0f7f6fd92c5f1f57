package dylib

import (
	"errors"
	"fmt"
)

// UnsatisfiedLinkError is the single recoverable failure kind of this
// package: a library the loader cannot open or close, or a symbol it cannot
// resolve. Msg carries the OS loader's native diagnostic text.
type UnsatisfiedLinkError struct {
	Op   string // "open", "close", "symbol" or "path"
	Name string // library target or symbol name
	Msg  string // loader diagnostic
}

func (e *UnsatisfiedLinkError) Error() string {
	return fmt.Sprintf("unsatisfied link: %s %s: %s", e.Op, e.Name, e.Msg)
}

var (
	// ErrClosed occurs when operating a Library after Close; raised by panic,
	// a closed handle is a programming error, not a link failure.
	ErrClosed = errors.New("library already closed")
	// ErrUndeclared occurs when binding a symbol name outside the declared
	// set; raised by panic, declarations are fixed before binding is reachable.
	ErrUndeclared = errors.New("symbol not declared")
	// ErrDuplicated occurs when declaring one symbol name twice in a Symbols.
	ErrDuplicated = errors.New("symbol declared twice")
	// ErrEmptyName occurs when declaring a symbol with an empty name.
	ErrEmptyName = errors.New("symbol with empty name")
)
