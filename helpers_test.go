package native

import (
	"testing"

	"github.com/ZenLiuCN/native/internal/testutil"
)

var exampleSigs = Signatures{
	"add":       Sig(Int32, Int32, Int32),
	"fibonacci": Sig(Int32, Int32),
}

type (
	typeAdd       = func(int32, int32) int32
	typeFibonacci = func(int32) int32
)

// exampleLibrary builds testdata/example.c into a fresh directory.
func exampleLibrary(t testing.TB) string {
	t.Helper()
	return testutil.BuildLibrary(t, t.TempDir(), testutil.LibraryName("example"), "example.c")
}
