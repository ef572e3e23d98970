package ports

import "time"

// Clock is the source of "now" for deadlines and expiry sweeps.
type Clock interface {
	Now() time.Time
}
