//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"
	"errors"
	"image"
)

var errPortalUnsupported = errors.New("portal screenshot is not supported on this platform")

// Portal is unavailable outside freedesktop platforms.
type Portal struct {
	IncludeCursor bool
}

func (Portal) Fullscreen(context.Context) (*image.RGBA, error) {
	return nil, errPortalUnsupported
}

func (Portal) Region(context.Context, image.Rectangle) (*image.RGBA, error) {
	return nil, errPortalUnsupported
}
