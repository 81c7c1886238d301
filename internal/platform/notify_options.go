// Package platform sends desktop notifications through the host's
// notification service.
package platform

// AppName is reported to notification services.
const AppName = "Snapmark"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// TimeoutMillis is how long the notification stays visible. Zero uses
	// DefaultTimeoutMillis.
	TimeoutMillis int32
}

// DefaultTimeoutMillis is used when Options.TimeoutMillis is zero.
const DefaultTimeoutMillis = 5000

func (o Options) timeout() int32 {
	if o.TimeoutMillis <= 0 {
		return DefaultTimeoutMillis
	}
	return o.TimeoutMillis
}
