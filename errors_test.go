package native

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemedyCommand(t *testing.T) {
	assert.Equal(t, "g++ -shared -fPIC -g -o libexample.so cpp.cc", DefaultRemedy.Command("libexample.so"))
	assert.Equal(t, "cc -shared -o example.dll a.c b.c", Remedy{
		Compiler: "cc",
		Flags:    []string{"-shared"},
		Sources:  []string{"a.c", "b.c"},
	}.Command("example.dll"))
	assert.Equal(t, "g++ -o libx.so", Remedy{}.Command("libx.so"))
}

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("cause")
	nf := &LibraryNotFoundError{Path: "/opt/lib/libexample.so", Dir: "/opt/lib", Command: "make"}
	assert.ErrorIs(t, nf, ErrLibraryNotFound)
	assert.Equal(t, "lib not exists: /opt/lib/libexample.so\n  cd /opt/lib\n  make", nf.Error())
	assert.Equal(t, "cd /opt/lib\nmake", nf.Hint())

	le := &LibraryLoadError{Path: "p", Err: cause}
	assert.ErrorIs(t, le, ErrLibraryLoad)
	assert.ErrorIs(t, le, cause)
	assert.NotErrorIs(t, le, ErrLibraryNotFound)

	se := &SymbolNotFoundError{Path: "p", Symbol: "fibonacci", Err: cause}
	assert.ErrorIs(t, se, ErrSymbolNotFound)
	assert.ErrorIs(t, se, cause)
	assert.Equal(t, "symbol fibonacci not found in p: cause", se.Error())
	assert.Equal(t, "symbol x not found", (&SymbolNotFoundError{Symbol: "x"}).Error())

	assert.ErrorIs(t, &UnsupportedPlatformError{OS: "plan9"}, ErrUnsupportedPlatform)
	assert.ErrorIs(t, &SignatureError{Symbol: "s", Err: cause}, ErrInvalidSignature)
}
