package overlay

import (
	"time"

	"github.com/go-theft-auto/overlay/gui"
)

type config struct {
	syncInterval   int
	toolkitOptions []gui.Option
	now            func() time.Time
}

func defaultConfig() config {
	return config{
		syncInterval: 1,
		now:          time.Now,
	}
}

// Option configures an Overlay.
type Option func(*config)

// WithSyncInterval sets the vertical-sync interval passed to Present.
// Defaults to 1.
func WithSyncInterval(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.syncInterval = n
		}
	}
}

// WithToolkitOptions forwards options to the gui toolkit the overlay creates.
func WithToolkitOptions(opts ...gui.Option) Option {
	return func(c *config) { c.toolkitOptions = append(c.toolkitOptions, opts...) }
}

// WithClock replaces the time source used to compute frame delta time.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
