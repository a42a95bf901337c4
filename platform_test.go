package native

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformOf(t *testing.T) {
	tests := []struct {
		goos string
		want Platform
	}{
		{"linux", PlatformLinux},
		{"darwin", PlatformDarwin},
		{"windows", PlatformWindows},
		{"freebsd", PlatformOther},
		{"android", PlatformOther},
		{"ios", PlatformOther},
		{"js", PlatformOther},
		{"", PlatformOther},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, PlatformOf(tt.goos))
		})
	}
}

func TestCurrentPlatform(t *testing.T) {
	assert.Equal(t, PlatformOf(runtime.GOOS), CurrentPlatform())
	assert.Equal(t, CurrentPlatform(), CurrentPlatform())
}

func TestPlatformString(t *testing.T) {
	assert.Equal(t, "linux", PlatformLinux.String())
	assert.Equal(t, "darwin", PlatformDarwin.String())
	assert.Equal(t, "windows", PlatformWindows.String())
	assert.Equal(t, "other", PlatformOther.String())
	assert.Equal(t, "other", Platform(42).String())
}
