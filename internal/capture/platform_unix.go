//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

func runningOnWayland() bool {
	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	if sessionType == "wayland" {
		return true
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return true
	}
	return false
}

// Default returns the portal inside Wayland sessions and the native screen
// provider for display otherwise.
func Default(display int) Provider {
	if runningOnWayland() {
		logrus.WithField("display", display).Debug("wayland session, capturing through the portal")
		return Portal{}
	}
	return Screen{Display: display}
}
