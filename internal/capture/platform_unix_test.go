//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import "testing"

func TestRunningOnWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	t.Setenv("WAYLAND_DISPLAY", "")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when XDG_SESSION_TYPE=wayland")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when WAYLAND_DISPLAY is set")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
	if runningOnWayland() {
		t.Fatalf("did not expect wayland session when indicators are absent")
	}
}

func TestDefaultProvider(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	if _, ok := Default(0).(Portal); !ok {
		t.Fatalf("expected portal provider on wayland")
	}
	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
	if s, ok := Default(2).(Screen); !ok || s.Display != 2 {
		t.Fatalf("expected screen provider for display 2, got %#v", Default(2))
	}
}
