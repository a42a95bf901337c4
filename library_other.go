//go:build !darwin && !linux && !windows

package native

import "runtime"

func openLibrary(string) (uintptr, error) {
	return 0, &UnsupportedPlatformError{OS: runtime.GOOS}
}

func lookupSymbol(uintptr, string) (uintptr, error) {
	return 0, &UnsupportedPlatformError{OS: runtime.GOOS}
}

func registerFunc(any, uintptr) {
	panic(&UnsupportedPlatformError{OS: runtime.GOOS})
}
