package platform

import "time"

// AppName is reported to the host notification service.
const AppName = "tacboard"

// DefaultTimeout is how long a notification stays visible when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file shown next to the
	// notification where the platform supports it.
	IconPath string
	// Timeout overrides DefaultTimeout on platforms that honour it.
	Timeout time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}
