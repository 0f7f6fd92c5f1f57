package pool

import (
	"errors"
	"slices"
	"sync"

	. "github.com/ZenLiuCN/dylib"
)

// Pool keeps a set of open libraries over one shared Symbols, so a declared
// set can be satisfied piecewise from several libraries, or from whichever
// versioned candidate of one library is present on the host.
type Pool struct {
	Symbols
	Libraries map[string]Library // keyed by the nameOrPath they were loaded as
	Loaded    []Library          // in load order
	sync.RWMutex
}

var (
	ErrAlreadyLoad = errors.New("library already loaded")
	ErrNotLoad     = errors.New("library not loaded")
	ErrNoCandidate = errors.New("no loadable candidate")
)

func New(sym Symbols) *Pool {
	return &Pool{Symbols: sym, Libraries: make(map[string]Library)}
}

// Load opens one library over the pool's shared Symbols without binding
// anything. Binding stays with the caller, per symbol or in bulk.
func (p *Pool) Load(nameOrPath string) (Library, error) {
	p.Lock()
	defer p.Unlock()
	return p.load(nameOrPath)
}

func (p *Pool) load(nameOrPath string) (l Library, err error) {
	if _, ok := p.Libraries[nameOrPath]; ok {
		return nil, ErrAlreadyLoad
	}
	if l, err = Open(nameOrPath, p.Symbols, false); err != nil {
		return
	}
	p.Libraries[nameOrPath] = l
	p.Loaded = append(p.Loaded, l)
	return
}

// LoadFirst opens the first loadable candidate, the graceful degradation
// idiom for a library shipped under several versioned names. It reports the
// winning candidate, or the joined open failures when none is loadable. A
// candidate already in the pool wins immediately.
func (p *Pool) LoadFirst(candidates ...string) (name string, l Library, err error) {
	p.Lock()
	defer p.Unlock()
	var errs error
	for _, c := range candidates {
		var e error
		if l, e = p.load(c); e == nil {
			return c, l, nil
		}
		if errors.Is(e, ErrAlreadyLoad) {
			return c, p.Libraries[c], nil
		}
		errs = errors.Join(errs, e)
	}
	err = errors.Join(ErrNoCandidate, errs)
	return
}

// Unload closes one library and forgets it. Symbols bound through it keep
// their now stale addresses, see Library.Close; unbind first when call sites
// may still run.
func (p *Pool) Unload(nameOrPath string) (err error) {
	p.Lock()
	defer p.Unlock()
	l, ok := p.Libraries[nameOrPath]
	if !ok {
		return ErrNotLoad
	}
	if err = l.Close(); err != nil {
		return
	}
	delete(p.Libraries, nameOrPath)
	if i := slices.Index(p.Loaded, l); i >= 0 {
		p.Loaded = slices.Delete(p.Loaded, i, i+1)
	}
	return
}

// Paths resolves the on-disk path of every open library in load order.
func (p *Pool) Paths() (v []string, err error) {
	p.RLock()
	defer p.RUnlock()
	var s string
	for _, l := range p.Loaded {
		if s, err = l.ResolvedPath(); err != nil {
			return
		}
		v = append(v, s)
	}
	return
}

// Close unbinds every declared symbol and closes all libraries in reverse
// load order.
func (p *Pool) Close() (err error) {
	p.Lock()
	defer p.Unlock()
	for i := len(p.Loaded) - 1; i >= 0; i-- {
		l := p.Loaded[i]
		l.UnloadAllFunctions()
		if e := l.Close(); e != nil {
			err = errors.Join(err, e)
		}
	}
	p.Loaded = nil
	p.Libraries = make(map[string]Library)
	return
}
