package utils

import (
	"strings"

	"github.com/nalinbhardwaj/connectkit/types"
)

// DetectPlatform classifies a user-agent string into the platform the
// order service uses to pick external options and redirect flows.
func DetectPlatform(userAgent string) types.Platform {
	switch {
	case strings.Contains(userAgent, "iPhone") || strings.Contains(userAgent, "iPad"):
		return types.PlatformIOS
	case strings.Contains(userAgent, "Android"):
		return types.PlatformAndroid
	default:
		return types.PlatformOther
	}
}
