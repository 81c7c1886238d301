//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

// Default returns the native screen provider for display.
func Default(display int) Provider {
	return Screen{Display: display}
}
