package dylib

import (
	"os"

	"github.com/ZenLiuCN/fn"
	"github.com/pelletier/go-toml/v2"
)

type (
	/*Manifest is the declarative TOML form of a library plus its foreign
	symbol set, for callers that keep declarations in data rather than code:

		library = "libc.so.6"

		[[symbols]]
		name = "strlen"
		return = "size_t"
		params = ["const char *"]
	*/
	Manifest struct {
		Library string   `toml:"library"` //name, filename or path
		Symbols []Symbol `toml:"symbols"`
	}
)

// ReadManifest decodes a TOML manifest file.
func ReadManifest(path string) (m *Manifest, err error) {
	var f *os.File
	if f, err = os.Open(path); err != nil {
		return
	}
	defer fn.IgnoreClose(f)
	m = new(Manifest)
	if err = toml.NewDecoder(f).Decode(m); err != nil {
		m = nil
	}
	return
}

// Declare builds the ordered Symbols the manifest declares.
func (m *Manifest) Declare() (Symbols, error) {
	return NewSymbols(m.Symbols...)
}

// Open declares the manifest symbols and opens its library over them.
func (m *Manifest) Open(loadAllNow bool, debug ...bool) (l Library, sym Symbols, err error) {
	if sym, err = m.Declare(); err != nil {
		return
	}
	l, err = Open(m.Library, sym, loadAllNow, debug...)
	return
}
