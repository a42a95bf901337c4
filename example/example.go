// Package example binds the example native library, which exports
//
//	int add(int x, int y);
//	int fibonacci(int n);
//
// Any library exporting these two symbols with these signatures can be used.
package example

import (
	"path/filepath"
	"sync"

	"github.com/ZenLiuCN/native"
)

// Name is the logical library name.
const Name = "example"

// Signatures of the exported symbols.
var Signatures = native.Signatures{
	"add":       native.Sig(native.Int32, native.Int32, native.Int32),
	"fibonacci": native.Sig(native.Int32, native.Int32),
}

// Library is the bound example library.
type Library struct {
	lib       *native.Library
	add       func(int32, int32) int32
	fibonacci func(int32) int32
}

// Add returns x + y computed by the native side.
func (l *Library) Add(x, y int32) int32 { return l.add(x, y) }

// Fibonacci returns the n-th Fibonacci number computed by the native side, 0 for n <= 0.
func (l *Library) Fibonacci(n int32) int32 { return l.fibonacci(n) }

// Path of the loaded library file.
func (l *Library) Path() string { return l.lib.Path() }

var (
	mu     sync.Mutex
	loaded = make(map[string]*Library)
)

// Load binds the example library inside dir with the global Loader. Only a successful load is kept:
// once bound, later calls for the same dir return the same Library; a failed load can be retried after the library is built.
func Load(dir string) (*Library, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	defer mu.Unlock()
	if l, ok := loaded[abs]; ok {
		return l, nil
	}
	l, err := Bind(native.Global(), abs)
	if err != nil {
		return nil, err
	}
	loaded[abs] = l
	return l, nil
}

// Bind loads the example library inside dir with l.
func Bind(l *native.Loader, dir string) (x *Library, err error) {
	var b native.Bindings
	if b, err = l.LoadNamed(dir, Name, Signatures); err != nil {
		return
	}
	x = &Library{lib: b["add"].Library()}
	if x.add, err = native.As[func(int32, int32) int32](b["add"]); err != nil {
		return nil, err
	}
	if x.fibonacci, err = native.As[func(int32) int32](b["fibonacci"]); err != nil {
		return nil, err
	}
	return
}
