package native

import (
	"path/filepath"
	"runtime"
	"strings"
)

// FileName expands a logical library name to the file name used by the platform.
func FileName(p Platform, name string) (string, error) {
	return fileName(p, p.String(), name)
}

// ResolveFor computes the library path inside base for the platform. It never touches the filesystem.
func ResolveFor(p Platform, base, name string) (string, error) {
	return resolve(p, p.String(), base, name)
}

// Resolve computes the library path inside base for the running platform.
func Resolve(base, name string) (string, error) {
	return resolve(CurrentPlatform(), runtime.GOOS, base, name)
}

func resolve(p Platform, goos, base, name string) (string, error) {
	f, err := fileName(p, goos, name)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, f), nil
}

func fileName(p Platform, goos, name string) (f string, err error) {
	switch p {
	case PlatformLinux:
		f = "lib" + name + ".so"
	case PlatformDarwin:
		f = "lib" + name + ".dylib"
	case PlatformWindows:
		f = name + ".dll"
	default:
		return "", &UnsupportedPlatformError{OS: goos}
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidName
	}
	return
}
