package source

import (
	"context"
	"time"

	"github.com/imageforge/imageforge/pkg/errors"
)

// DefaultPollInterval is how often Watch checks for changes.
const DefaultPollInterval = 400 * time.Millisecond

// Watch polls location every interval and sends the program text each time
// it differs from the last text seen, starting from last. Load failures are
// logged and skipped: a file caught mid-save is read again on the next tick.
// A poll never overlaps the previous one; ticks that arrive while a load
// or a slow receiver is busy are dropped.
//
// The channel is closed when ctx is done.
func (l *Loader) Watch(ctx context.Context, location, last string, interval time.Duration) <-chan string {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	out := make(chan string)

	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			src, err := l.poll(ctx, location)
			if err != nil {
				l.logger().Debug("poll failed", "source", Describe(location), "code", errors.GetCode(err), "err", err)
				continue
			}
			if src == last {
				continue
			}
			last = src
			select {
			case out <- src:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// poll loads once, without retries; the next tick is the retry.
func (l *Loader) poll(ctx context.Context, location string) (string, error) {
	if errors.IsURL(location) {
		return l.loadURL(ctx, location, 1)
	}
	return loadFile(location)
}
