//go:build linux

package dylib

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ZenLiuCN/fn"
	"github.com/google/go-cmp/cmp"
)

const (
	libcFile  = "libc.so.6"
	symGetpid = "getpid"
	symStrlen = "strlen"
	symGhost  = "dylib_no_such_symbol"
)

func declare(t *testing.T, names ...string) Symbols {
	t.Helper()
	decl := make([]Symbol, len(names))
	for i, n := range names {
		decl[i] = Symbol{Name: n, Signature: Signature{Return: "int"}}
	}
	return fn.Panic1(NewSymbols(decl...))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open("dylib-test-missing", nil, false)
	if err == nil {
		t.Fatal("opened a fabricated library name")
	}
	var ule *UnsatisfiedLinkError
	if !errors.As(err, &ule) {
		t.Fatalf("error kind %T: %v", err, err)
	}
	if ule.Op != "open" || ule.Msg == "" {
		t.Errorf("diagnostic not carried: %+v", ule)
	}
}

func TestOpenLibcLazy(t *testing.T) {
	sym := declare(t, symGetpid, symStrlen)
	l := fn.Panic1(Open(libcFile, sym, false))
	if !l.IsLoaded() {
		t.Error("IsLoaded() = false on an open library")
	}
	if got := l.LoadedFunctions(); len(got) != 0 {
		t.Errorf("lazy open already bound %v", got)
	}
	fn.Panic(l.Close())
	if l.IsLoaded() {
		t.Error("IsLoaded() = true after Close")
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close not a no-op: %v", err)
	}
}

func TestLoadUnloadOrder(t *testing.T) {
	sym := declare(t, symGetpid, symStrlen)
	l := fn.Panic1(Open(libcFile, sym, false))
	defer fn.IgnoreClose(l)

	fn.Panic(l.LoadFunction(symStrlen))
	if diff := cmp.Diff([]string{symStrlen}, l.LoadedFunctions()); diff != "" {
		t.Errorf("after one load (-want +got):\n%s", diff)
	}
	fn.Panic(l.LoadFunction(symGetpid))
	// declaration order, not binding order
	if diff := cmp.Diff([]string{symGetpid, symStrlen}, l.LoadedFunctions()); diff != "" {
		t.Errorf("after both loads (-want +got):\n%s", diff)
	}
	l.UnloadFunction(symStrlen)
	if diff := cmp.Diff([]string{symGetpid}, l.LoadedFunctions()); diff != "" {
		t.Errorf("after unload (-want +got):\n%s", diff)
	}
	l.UnloadFunction(symStrlen) // never fails, bound or not
}

func TestLoadIdempotent(t *testing.T) {
	sym := declare(t, symStrlen)
	l := fn.Panic1(Open(libcFile, sym, false))
	defer fn.IgnoreClose(l)
	fn.Panic(l.LoadFunction(symStrlen))
	u := sym.Addr(symStrlen)
	if u == 0 {
		t.Fatal("bound address is zero")
	}
	fn.Panic(l.LoadFunction(symStrlen))
	if sym.Addr(symStrlen) != u {
		t.Error("rebinding moved the address")
	}
}

func TestLoadAllPartialProgress(t *testing.T) {
	sym := declare(t, symGetpid, symStrlen, symGhost)
	l := fn.Panic1(Open(libcFile, sym, false))
	defer fn.IgnoreClose(l)

	err := l.LoadAllFunctions()
	var ule *UnsatisfiedLinkError
	if !errors.As(err, &ule) || ule.Name != symGhost {
		t.Fatalf("declared-but-absent symbol: %v", err)
	}
	if sym.Addr(symGhost) != 0 {
		t.Error("failed slot left bound")
	}
	if diff := cmp.Diff([]string{symGetpid, symStrlen}, l.LoadedFunctions()); diff != "" {
		t.Errorf("partial progress (-want +got):\n%s", diff)
	}
	l.UnloadAllFunctions()
	if got := l.LoadedFunctions(); len(got) != 0 {
		t.Errorf("unload all left %v", got)
	}
}

func TestLoadAllRoundTrip(t *testing.T) {
	sym := declare(t, symGetpid, symStrlen)
	l := fn.Panic1(Open(libcFile, sym, true))
	defer fn.IgnoreClose(l)
	if diff := cmp.Diff(sym.Names(), l.LoadedFunctions()); diff != "" {
		t.Errorf("eager open (-want +got):\n%s", diff)
	}
	l.UnloadAllFunctions()
	if got := l.LoadedFunctions(); len(got) != 0 {
		t.Errorf("round trip left %v", got)
	}
}

func TestEagerOpenFailsOnAbsentSymbol(t *testing.T) {
	sym := declare(t, symGetpid, symGhost)
	if _, err := Open(libcFile, sym, true); err == nil {
		t.Fatal("eager open bound a fabricated symbol")
	}
}

func TestSharedTable(t *testing.T) {
	sym := declare(t, symStrlen)
	a := fn.Panic1(Open(libcFile, sym, false))
	defer fn.IgnoreClose(a)
	b := fn.Panic1(Open(libcFile, sym, false))
	defer fn.IgnoreClose(b)

	fn.Panic(a.LoadFunction(symStrlen))
	// same declared set, same slots
	if diff := cmp.Diff([]string{symStrlen}, b.LoadedFunctions()); diff != "" {
		t.Errorf("sharing not observed (-want +got):\n%s", diff)
	}
	b.UnloadFunction(symStrlen)
	if got := a.LoadedFunctions(); len(got) != 0 {
		t.Errorf("unload through the peer left %v", got)
	}
}

func TestUndeclaredPanics(t *testing.T) {
	sym := declare(t, symStrlen)
	l := fn.Panic1(Open(libcFile, sym, false))
	defer fn.IgnoreClose(l)
	defer func() {
		if r := recover(); r != ErrUndeclared {
			t.Errorf("recovered %v, want ErrUndeclared", r)
		}
	}()
	_ = l.LoadFunction(symGhost)
}

func TestClosedPanics(t *testing.T) {
	sym := declare(t, symStrlen)
	l := fn.Panic1(Open(libcFile, sym, false))
	fn.Panic(l.Close())
	defer func() {
		if r := recover(); r != ErrClosed {
			t.Errorf("recovered %v, want ErrClosed", r)
		}
	}()
	_ = l.LoadFunction(symStrlen)
}

func TestFuncStrlen(t *testing.T) {
	sym := fn.Panic1(NewSymbols(
		Symbol{Name: symStrlen, Signature: Signature{Return: "size_t", Params: []string{"const char *"}}},
	))
	l := fn.Panic1(Open(libcFile, sym, true))
	defer fn.IgnoreClose(l)
	var strlen func(string) int
	sym.Func(&strlen, symStrlen)
	if n := strlen("dylib"); n != 5 {
		t.Errorf("strlen(\"dylib\") = %d", n)
	}
}

func TestIsLoadable(t *testing.T) {
	if !IsLoadable(libcFile) {
		t.Errorf("%s not loadable", libcFile)
	}
	if IsLoadable("dylib-test-missing") {
		t.Error("fabricated name loadable")
	}
}

func TestLibraryPath(t *testing.T) {
	p := fn.Panic1(LibraryPath(libcFile))
	t.Log(p)
	if !filepath.IsAbs(p) {
		t.Errorf("path %q not absolute", p)
	}
	if !IsLibraryPath(p) {
		t.Errorf("path %q fails IsLibraryPath", p)
	}
	if !IsLibraryFilename(filepath.Base(p)) {
		t.Errorf("base %q fails IsLibraryFilename", filepath.Base(p))
	}
	if _, err := LibraryPath("dylib-test-missing"); err == nil {
		t.Error("resolved a fabricated name")
	}
}

func TestResolvedPathMatchesLibraryPath(t *testing.T) {
	sym := declare(t, symGetpid)
	l := fn.Panic1(Open(libcFile, sym, false))
	defer fn.IgnoreClose(l)
	p := fn.Panic1(l.ResolvedPath())
	q := fn.Panic1(LibraryPath(libcFile))
	if p != q {
		t.Errorf("ResolvedPath %q != LibraryPath %q", p, q)
	}
}
