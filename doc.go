/*
Package dylib is a runtime binder for native shared libraries over the OS
dynamic loader (the dlopen family on POSIX, LoadLibrary on Windows).

A caller declares the foreign functions it expects once, as an ordered
[Symbols] set, and defers until run time the decision of which shared library
provides them, or whether any library is present at all. Addresses are bound
per symbol or in bulk into the shared set, and call sites use them directly.

# Underwater

 1. Library handles are opened in resolve-now mode and owned by exactly one
    [Library]; closing is idempotent and never clears bound addresses.
 2. One [Symbols] set may back any number of [Library] instances; all of them
    observe and mutate the same slots. That sharing is the point: bound
    addresses are called by ordinary code, not through an instance.
 3. The only recoverable failure kind is [UnsatisfiedLinkError], carrying the
    loader's own diagnostic. Misuse (undeclared names, a closed Library) is a
    programming error and panics.

# Notes

 1. Load and unload against a shared Symbols set are not synchronized here.
    Callers that mutate from several goroutines must serialize externally;
    the usual shape is one owner goroutine binding, everyone else calling.
 2. Closing a Library does not synchronize with in-flight calls through
    addresses resolved from it. Calling after close is undefined.
 3. [IsLoadable] is the only operation that turns a link failure into a
    boolean; everything else surfaces the error to its caller.

# Inspect tool

The inspect CLI probes, validates and resolves libraries against declared
TOML symbol manifests. It can be installed by:

	go install github.com/ZenLiuCN/dylib/inspect@latest

For more details see the cli help:

	inspect -h

# Samples

See testdata and tests.
*/
package dylib
