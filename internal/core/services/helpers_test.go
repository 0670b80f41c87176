package services

import "time"

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
