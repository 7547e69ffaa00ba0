package pricing

import "time"

// SetClock overrides the updater's time source for tests.
func SetClock(u *Updater, now func() time.Time) {
	u.now = now
}
