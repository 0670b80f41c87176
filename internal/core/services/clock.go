package services

import "time"

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
