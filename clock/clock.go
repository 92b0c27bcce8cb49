package clock

import "time"

type Clock interface {
	Now() time.Time
}

// Func turns a time source into a Clock reporting UTC.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f().UTC()
}

func NewSystem() Clock {
	return Func(time.Now)
}

// NewFixed is stopped at t, "today" queries then see a known date.
func NewFixed(t time.Time) Clock {
	return Func(func() time.Time {
		return t
	})
}
