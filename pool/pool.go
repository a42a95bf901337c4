package pool

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ZenLiuCN/fn"
	. "github.com/ZenLiuCN/native"
	"github.com/ZenLiuCN/native/manifest"
)

// Pool holds the bindings of several native libraries keyed by logical name.
type Pool struct {
	*Loader
	Modules map[string]Bindings
	Paths   map[string]string
	sync.RWMutex
}

var (
	ErrAlreadyLoad = errors.New("module already loaded")
	ErrNotLoad     = errors.New("module not loaded")
)

// Load resolves name inside base, then opens it and binds sigs.
// When some symbols fail the module is still registered with the symbols that did bind.
func (p *Pool) Load(name, base string, sigs Signatures) (err error) {
	var path string
	if path, err = Resolve(base, name); err != nil {
		return
	}
	return p.LoadPath(name, path, sigs)
}

// LoadPath registers the library at path under name.
func (p *Pool) LoadPath(name, path string, sigs Signatures) (err error) {
	p.Lock()
	defer p.Unlock()
	if _, ok := p.Modules[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyLoad, name)
	}
	var lib *Library
	if lib, err = p.Open(path); err != nil {
		return
	}
	b, err := lib.BindAll(sigs)
	p.Modules[name] = b
	p.Paths[name] = lib.Path()
	return
}

// LoadManifest registers the library declared by m under its name.
func (p *Pool) LoadManifest(m *manifest.Manifest) (err error) {
	var sigs Signatures
	if sigs, err = m.Signatures(); err != nil {
		return
	}
	return p.Load(m.Name, m.Dir, sigs)
}

// Lookup fetch a bound function of a module.
func (p *Pool) Lookup(name, symbol string) (*Func, error) {
	p.RLock()
	defer p.RUnlock()
	m, ok := p.Modules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotLoad, name)
	}
	if f, ok := m[symbol]; ok {
		return f, nil
	}
	return nil, &SymbolNotFoundError{Path: p.Paths[name], Symbol: symbol}
}

// Require fetch a bound function of a module, panics when missing.
func (p *Pool) Require(name, symbol string) *Func {
	return fn.Panic1(p.Lookup(name, symbol))
}

// Names of the loaded modules, sorted.
func (p *Pool) Names() []string {
	p.RLock()
	defer p.RUnlock()
	n := fn.MapKeys(p.Modules)
	slices.Sort(n)
	return n
}

// NewPool create new pool on the Loader, nil uses the global Loader.
func NewPool(l *Loader) (p *Pool) {
	if l == nil {
		l = Global()
	}
	p = new(Pool)
	p.Loader = l
	p.Modules = make(map[string]Bindings)
	p.Paths = make(map[string]string)
	return
}
