package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nalinbhardwaj/connectkit/types"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		want      types.Platform
	}{
		{name: "iphone", userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", want: types.PlatformIOS},
		{name: "ipad", userAgent: "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X)", want: types.PlatformIOS},
		{name: "android", userAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8)", want: types.PlatformAndroid},
		{name: "desktop", userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", want: types.PlatformOther},
		{name: "empty", userAgent: "", want: types.PlatformOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.userAgent))
		})
	}
}
