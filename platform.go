package native

import (
	"runtime"
	"sync"
)

// Platform is the operating system kind that decides the shared library naming convention.
type Platform uint8

const (
	PlatformOther Platform = iota
	PlatformLinux
	PlatformDarwin
	PlatformWindows
)

var currentPlatform = sync.OnceValue(func() Platform {
	return PlatformOf(runtime.GOOS)
})

// CurrentPlatform returns the platform of the running process, computed once.
func CurrentPlatform() Platform {
	return currentPlatform()
}

// PlatformOf maps a GOOS value to a Platform. Anything unknown is PlatformOther.
func PlatformOf(goos string) Platform {
	switch goos {
	case "linux":
		return PlatformLinux
	case "darwin":
		return PlatformDarwin
	case "windows":
		return PlatformWindows
	default:
		return PlatformOther
	}
}

func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformDarwin:
		return "darwin"
	case PlatformWindows:
		return "windows"
	default:
		return "other"
	}
}
