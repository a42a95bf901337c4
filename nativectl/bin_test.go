package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZenLiuCN/native"
	"github.com/ZenLiuCN/native/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	out := new(bytes.Buffer)
	app.Writer = out
	app.ErrWriter = out
	err := app.Run(append([]string{"nativectl"}, args...))
	return out.String(), err
}

func TestResolve(t *testing.T) {
	tests := []struct {
		os   string
		want string
	}{
		{"linux", "libexample.so"},
		{"darwin", "libexample.dylib"},
		{"windows", "example.dll"},
	}
	for _, tt := range tests {
		t.Run(tt.os, func(t *testing.T) {
			out, err := run(t, "resolve", "--dir", "lib", "--name", "example", "--os", tt.os)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join("lib", tt.want), strings.TrimSpace(out))
		})
	}
	_, err := run(t, "resolve", "--name", "example", "--os", "plan9")
	assert.ErrorIs(t, err, native.ErrUnsupportedPlatform)
}

func TestResolveManifest(t *testing.T) {
	out, err := run(t, "-m", testutil.Testdata("example.yaml"), "resolve", "--os", "linux")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(testutil.Testdata("example.yaml")), "libexample.so"), strings.TrimSpace(out))
}

func TestSymbols(t *testing.T) {
	dir := t.TempDir()
	path := testutil.BuildLibrary(t, dir, testutil.LibraryName("example"), "example.c")
	out, err := run(t, "symbols", path)
	require.NoError(t, err)
	assert.Contains(t, out, "\tadd\n")
	assert.Contains(t, out, "\tfibonacci\n")
}

func TestCall(t *testing.T) {
	dir := t.TempDir()
	testutil.BuildLibrary(t, dir, testutil.LibraryName("example"), "example.c")
	t.Setenv("NATIVE_DIR", dir)
	m := testutil.Testdata("example.yaml")

	out, err := run(t, "-m", m, "call", "add", "5", "7")
	require.NoError(t, err)
	assert.Equal(t, "add(5, 7) = 12\n", out)

	out, err = run(t, "-m", m, "call", "fibonacci", "10")
	require.NoError(t, err)
	assert.Equal(t, "fibonacci(10) = 55\n", out)

	_, err = run(t, "-m", m, "call", "fibonacci")
	assert.ErrorIs(t, err, native.ErrArguments)
	_, err = run(t, "-m", m, "call", "add", "1", "x")
	assert.ErrorIs(t, err, native.ErrArguments)
	_, err = run(t, "-m", m, "call", "subtract", "1", "2")
	assert.Error(t, err)
}

func TestCallNotFound(t *testing.T) {
	if native.CurrentPlatform() == native.PlatformOther {
		t.Skip()
	}
	t.Setenv("NATIVE_DIR", t.TempDir())
	_, err := run(t, "-m", testutil.Testdata("example.yaml"), "call", "add", "1", "2")
	var nf *native.LibraryNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, err.Error(), "cc -shared -fPIC -g -o")
}

func TestDemo(t *testing.T) {
	dir := t.TempDir()
	testutil.BuildLibrary(t, dir, testutil.LibraryName("example"), "example.c")
	out, err := run(t, "demo", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "add(5, 7) = 12\n")
	assert.Contains(t, out, "fibonacci(10) = 55\n")
	assert.Contains(t, out, "All tests completed!")
}
