// Package platform delivers desktop notifications through the host's
// notification service.
package platform

// AppName identifies the sender to the notification service.
const AppName = "Cookie Cutter"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// TimeoutMillis is how long the notification stays visible where the
	// platform honours it. Zero selects five seconds.
	TimeoutMillis int32
}

func (o Options) timeout() int32 {
	if o.TimeoutMillis <= 0 {
		return 5000
	}
	return o.TimeoutMillis
}
