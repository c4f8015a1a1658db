package module

import (
	"time"

	"yukbul/internal/platform/config"
)

// Options holds configuration settings for the events module
type Options struct {
	Enabled    bool
	Batch      int
	FlushEvery time.Duration
	Queue      int
}

// FromConfig reads EVENTS_* settings
func FromConfig(cfg config.Conf) Options {
	ev := cfg.Prefix("EVENTS_")
	return Options{
		Enabled:    ev.MayBool("ENABLED", true),
		Batch:      ev.MayInt("BATCH", 256),
		FlushEvery: ev.MayDuration("FLUSH_EVERY", 2*time.Second),
		Queue:      ev.MayInt("QUEUE", 4096),
	}
}
