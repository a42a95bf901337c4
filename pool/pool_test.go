package pool

import (
	"path/filepath"
	"testing"

	"github.com/ZenLiuCN/fn"
	"github.com/ZenLiuCN/native"
	"github.com/ZenLiuCN/native/internal/testutil"
	"github.com/ZenLiuCN/native/manifest"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sigs = native.Signatures{
	"add":       native.Sig(native.Int32, native.Int32, native.Int32),
	"fibonacci": native.Sig(native.Int32, native.Int32),
}

func TestNewPool(t *testing.T) {
	dir := t.TempDir()
	testutil.BuildLibrary(t, dir, testutil.LibraryName("example"), "example.c")
	p := NewPool(native.NewLoader(native.DefaultRemedy))
	fn.Panic(p.Load("example", dir, sigs))
	s0 := p.Require("example", "add")
	t.Log(native.MustAs[func(int32, int32) int32](s0)(5, 7))
	sp := spew.NewDefaultConfig()
	sp.MaxDepth = 3
	s1 := p.Require("example", "fibonacci")
	assert.Equal(t, int32(55), native.MustAs[func(int32) int32](s1)(10))
	for name, b := range p.Modules {
		sp.Dump(name, b.Names())
		for s, f := range b {
			sp.Dump(s, f.Signature())
		}
	}
	assert.Equal(t, []string{"example"}, p.Names())
	assert.Equal(t, []string{p.Paths["example"]}, p.Libraries())
}

func TestPoolAlreadyLoad(t *testing.T) {
	dir := t.TempDir()
	testutil.BuildLibrary(t, dir, testutil.LibraryName("example"), "example.c")
	p := NewPool(native.NewLoader(native.DefaultRemedy))
	fn.Panic(p.Load("example", dir, sigs))
	assert.ErrorIs(t, p.Load("example", dir, sigs), ErrAlreadyLoad)

	// a second logical name over the same file shares the mapped library
	fn.Panic(p.Load("again", dir, native.Signatures{"add": sigs["add"]}))
	assert.Same(t, p.Require("example", "add").Library(), p.Require("again", "add").Library())
	assert.Len(t, p.Libraries(), 1)
}

func TestPoolPartial(t *testing.T) {
	dir := t.TempDir()
	testutil.BuildLibrary(t, dir, testutil.LibraryName("partial"), "partial.c")
	p := NewPool(native.NewLoader(native.DefaultRemedy))
	err := p.Load("partial", dir, sigs)
	require.ErrorIs(t, err, native.ErrSymbolNotFound)
	_, err = p.Lookup("partial", "fibonacci")
	assert.ErrorIs(t, err, native.ErrSymbolNotFound)
	f, err := p.Lookup("partial", "add")
	require.NoError(t, err)
	v, err := f.Call(2, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(5), v)
}

func TestPoolNotLoad(t *testing.T) {
	p := NewPool(nil)
	assert.Same(t, native.Global(), p.Loader)
	_, err := p.Lookup("nothing", "add")
	assert.ErrorIs(t, err, ErrNotLoad)
	assert.Panics(t, func() { p.Require("nothing", "add") })
}

func TestPoolNotFound(t *testing.T) {
	if native.CurrentPlatform() == native.PlatformOther {
		t.Skip()
	}
	p := NewPool(native.NewLoader(native.DefaultRemedy))
	err := p.Load("example", t.TempDir(), sigs)
	assert.ErrorIs(t, err, native.ErrLibraryNotFound)
	assert.Empty(t, p.Names())
}

func TestPoolLoadManifest(t *testing.T) {
	dir := t.TempDir()
	testutil.BuildLibrary(t, dir, testutil.LibraryName("example"), "example.c")
	m := fn.Panic1(manifest.Load(testutil.Testdata("example.yaml")))
	m.Dir = dir
	p := NewPool(native.NewLoader(m.NativeRemedy()))
	fn.Panic(p.LoadManifest(m))
	v, err := p.Require("example", "fibonacci").Call(10)
	require.NoError(t, err)
	assert.Equal(t, int32(55), v)
	assert.Equal(t, fn.Panic1(filepath.EvalSymlinks(dir)), filepath.Dir(p.Paths["example"]))
}
