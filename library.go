package native

import (
	"errors"
	"fmt"
	"log"
	"reflect"
)

// Library is a shared library mapped into the process. It is owned by the [Loader] that opened it and is never unloaded.
type Library struct {
	path   string
	handle uintptr
	debug  bool
}

// Path is the canonical path the library was opened from.
func (l *Library) Path() string { return l.path }

// Handle is the operating system handle of the library.
func (l *Library) Handle() uintptr { return l.handle }

// Lookup resolves the address of an exported symbol.
func (l *Library) Lookup(name string) (uintptr, error) {
	p, err := lookupSymbol(l.handle, name)
	if err == nil && p == 0 {
		err = errors.New("nil address")
	}
	if err != nil {
		return 0, &SymbolNotFoundError{Path: l.path, Symbol: name, Err: err}
	}
	if l.debug {
		log.Printf("found symbol %s: %x", name, p)
	}
	return p, nil
}

// Bind resolves name and attaches sig, producing a callable [Func].
func (l *Library) Bind(name string, sig Signature) (f *Func, err error) {
	if err = sig.Validate(); err != nil {
		return nil, &SignatureError{Symbol: name, Err: err}
	}
	var p uintptr
	if p, err = l.Lookup(name); err != nil {
		return
	}
	ft := sig.FuncType()
	fp := reflect.New(ft)
	if err = register(fp.Interface(), p); err != nil {
		return nil, &SignatureError{Symbol: name, Err: err}
	}
	if l.debug {
		log.Printf("bind %s%s as %s", name, sig, ft)
	}
	return &Func{
		name: name,
		sig:  sig,
		addr: p,
		lib:  l,
		fn:   fp.Elem(),
	}, nil
}

// BindAll binds each declared symbol independently.
// Symbols that fail are reported in the joined error, the others are still returned.
func (l *Library) BindAll(sigs Signatures) (b Bindings, err error) {
	b = make(Bindings, len(sigs))
	var errs []error
	for _, name := range sigs.Names() {
		f, e := l.Bind(name, sigs[name])
		if e != nil {
			errs = append(errs, e)
			continue
		}
		b[name] = f
	}
	return b, errors.Join(errs...)
}

// Exports lists exported function names of the library file.
func (l *Library) Exports() ([]string, error) {
	return Exports(l.path)
}

func (l *Library) String() string {
	return fmt.Sprintf("Library(%s@%x)", l.path, l.handle)
}

// register wraps the purego panic of an unsupported function type into an error.
func register(fptr any, addr uintptr) (err error) {
	defer func() {
		switch y := recover().(type) {
		case nil:
		case error:
			err = y
		default:
			err = fmt.Errorf("%v", y)
		}
	}()
	registerFunc(fptr, addr)
	return
}
