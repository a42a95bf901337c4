package native

import (
	"fmt"
	"reflect"
	"runtime"
	"slices"

	"github.com/ZenLiuCN/fn"
)

type (
	// Func is a native symbol bound with its declared signature. It is immutable and can be shared between goroutines,
	// calling it is as safe as the native function itself.
	Func struct {
		name string
		sig  Signature
		addr uintptr
		lib  *Library
		fn   reflect.Value
	}
	// Bindings are the bound functions of one load, keyed by symbol name.
	Bindings map[string]*Func
)

func (f *Func) Name() string         { return f.name }
func (f *Func) Signature() Signature { return f.sig }
func (f *Func) Addr() uintptr        { return f.addr }
func (f *Func) Library() *Library    { return f.lib }
func (f *Func) Type() reflect.Type   { return f.fn.Type() }
func (f *Func) Interface() any       { return f.fn.Interface() }
func (f *Func) String() string       { return f.name + f.sig.String() }

// Call invokes the function. Arguments are converted to the declared types, integers out of the declared width are refused.
// The result is the typed return value, nil for Void.
func (f *Func) Call(args ...any) (any, error) {
	if len(args) != len(f.sig.Args) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArguments, f.name, len(f.sig.Args), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		v, err := convert(f.sig.Args[i], a)
		if err != nil {
			return nil, fmt.Errorf("%w: %s argument %d: %v", ErrArguments, f.name, i, err)
		}
		in[i] = v
	}
	out := f.fn.Call(in)
	// pointer arguments travel as uintptr, the referenced go values must outlive the native call
	runtime.KeepAlive(args)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

// Names of the bound functions, sorted.
func (b Bindings) Names() []string {
	n := fn.MapKeys(b)
	slices.Sort(n)
	return n
}

// Call invokes the named function.
func (b Bindings) Call(name string, args ...any) (any, error) {
	f, ok := b[name]
	if !ok {
		return nil, &SymbolNotFoundError{Symbol: name}
	}
	return f.Call(args...)
}

// As convert a bound Func to the contract type, which must be exactly the function type of its signature.
func As[T any](f *Func) (x T, err error) {
	want := reflect.TypeFor[T]()
	if want != f.fn.Type() {
		err = fmt.Errorf("%w: %s is %s, not %s", ErrArguments, f.name, f.fn.Type(), want)
		return
	}
	x = f.fn.Interface().(T)
	return
}

// MustAs is As panics on mismatch.
func MustAs[T any](f *Func) T {
	return fn.Panic1(As[T](f))
}

// Use create a function to convert and use a Func on the fly, a mismatch is delivered as error.
func Use[T any](f *Func) func(func(t T, err error)) {
	return func(act func(t T, err error)) {
		var x T
		defer func() {
			switch y := recover().(type) {
			case nil:
				act(x, nil)
			case error:
				act(x, y)
			default:
				act(x, fmt.Errorf("%v", y))
			}
		}()
		x = MustAs[T](f)
	}
}
