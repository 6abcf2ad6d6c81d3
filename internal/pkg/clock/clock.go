// Package clock provides time utilities for the application
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/petbot/internal/pkg/clock Clock

// DateLayout is the storage layout of a civil UTC date
const DateLayout = "2006-01-02"

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time, always in UTC
type Real struct{}

// Now returns the current UTC time
func (c *Real) Now() time.Time {
	return time.Now().UTC()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Date is a UTC calendar date in YYYY-MM-DD form. The zero value means "never".
type Date string

// DateOf returns the UTC calendar date containing t
func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(DateLayout))
}

// IsZero reports whether the date was never set
func (d Date) IsZero() bool {
	return d == ""
}

// Before reports whether d is strictly earlier than other.
// A zero date is before every non-zero date.
func (d Date) Before(other Date) bool {
	// YYYY-MM-DD sorts lexically in calendar order
	return d < other
}

// String returns the date in YYYY-MM-DD form
func (d Date) String() string {
	return string(d)
}
