package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobal(t *testing.T) {
	path := exampleLibrary(t)
	b, err := Load(path, exampleSigs)
	require.NoError(t, err)
	assert.Equal(t, int32(55), MustAs[typeFibonacci](b["fibonacci"])(10))

	lib, err := Open(path)
	require.NoError(t, err)
	assert.Same(t, b["add"].Library(), lib)
	assert.Contains(t, GlobalLibraries(), lib.Path())
	got, ok := Global().Library(path)
	assert.True(t, ok)
	assert.Same(t, lib, got)
}

func TestGlobalLoadNamedNotFound(t *testing.T) {
	if CurrentPlatform() == PlatformOther {
		t.Skip()
	}
	_, err := LoadNamed(t.TempDir(), "example", exampleSigs)
	assert.ErrorIs(t, err, ErrLibraryNotFound)
}
