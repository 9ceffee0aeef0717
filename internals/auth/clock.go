package auth

import "time"

// Clock returns the current time. The stores take one at construction so
// tests can drive expiry and lockout windows without sleeping.
type Clock func() time.Time

// SystemClock is the Clock used outside of tests.
func SystemClock() time.Time {
	return time.Now()
}
