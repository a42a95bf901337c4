// Package testutil builds the native fixtures used by tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// Testdata returns the absolute path of a file under the module testdata directory.
func Testdata(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", name)
}

// Compiler finds a C compiler, the test is skipped when the platform or the toolchain can't build fixtures.
func Compiler(t testing.TB) string {
	t.Helper()
	switch runtime.GOOS {
	case "linux", "darwin":
	default:
		t.Skipf("native fixtures are not built on %s", runtime.GOOS)
	}
	for _, c := range []string{os.Getenv("CC"), "cc", "gcc", "clang"} {
		if c == "" {
			continue
		}
		if p, err := exec.LookPath(c); err == nil {
			return p
		}
	}
	t.Skip("no C compiler found")
	return ""
}

// BuildLibrary compiles testdata sources into dir as file, returning the library path.
func BuildLibrary(t testing.TB, dir, file string, sources ...string) string {
	t.Helper()
	cc := Compiler(t)
	out := filepath.Join(dir, file)
	args := []string{"-shared", "-fPIC", "-o", out}
	for _, s := range sources {
		args = append(args, Testdata(s))
	}
	cmd := exec.Command(cc, args...)
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build %s: %v\n%s", file, err, b)
	}
	return out
}

// LibraryName is the platform file name of a logical library, for fixtures.
// It mirrors native.FileName, which can't be imported here: the native tests import this package.
func LibraryName(name string) string {
	switch runtime.GOOS {
	case "darwin":
		return "lib" + name + ".dylib"
	case "windows":
		return name + ".dll"
	default:
		return "lib" + name + ".so"
	}
}
