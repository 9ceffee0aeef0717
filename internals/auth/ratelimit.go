package auth

import (
	"sync"
	"time"
)

const (
	shortLockThreshold = 3
	shortLockDuration  = 5 * time.Minute
	longLockThreshold  = 5
	longLockDuration   = 15 * time.Minute

	attemptStaleAfter = time.Hour
	attemptSweepEvery = 5 * time.Minute
)

type attemptRecord struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time // zero when not locked
}

// AttemptTracker counts failed logins per source IP and locks an IP out for
// escalating windows: 5 minutes after 3 failures, 15 minutes after 5.
// A successful login clears the record.
type AttemptTracker struct {
	mu        sync.Mutex
	attempts  map[string]*attemptRecord
	now       Clock
	lastSweep time.Time
}

func NewAttemptTracker(now Clock) *AttemptTracker {
	return &AttemptTracker{
		attempts:  make(map[string]*attemptRecord),
		now:       now,
		lastSweep: now(),
	}
}

// IsLockedOut reports whether the IP is currently inside a lockout window.
// An expired lockout is recovered lazily: the record resets to zero failures
// so the next failure counts from 1.
func (t *AttemptTracker) IsLockedOut(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sweepLocked()

	rec, ok := t.attempts[ip]
	if !ok {
		return false
	}

	now := t.now()

	if !rec.lockedUntil.IsZero() {
		if now.Before(rec.lockedUntil) {
			return true
		}
		// Lockout has passed: start over rather than resuming the old count.
		t.attempts[ip] = &attemptRecord{firstAttempt: now}
	}

	return false
}

// RecordAttempt registers the outcome of a login attempt from ip. Success
// resets the record; failure increments the counter and applies the lockout
// thresholds, strongest first.
func (t *AttemptTracker) RecordAttempt(ip string, success bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	rec, ok := t.attempts[ip]
	if !ok {
		rec = &attemptRecord{firstAttempt: now}
		t.attempts[ip] = rec
	}

	if success {
		t.attempts[ip] = &attemptRecord{firstAttempt: now}
		return
	}

	rec.count++

	if rec.count >= longLockThreshold {
		rec.lockedUntil = now.Add(longLockDuration)
	} else if rec.count >= shortLockThreshold {
		rec.lockedUntil = now.Add(shortLockDuration)
	}
}

// LockoutRemaining returns how long the IP stays locked out, and whether it
// is locked out at all.
func (t *AttemptTracker) LockoutRemaining(ip string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.attempts[ip]
	if !ok || rec.lockedUntil.IsZero() {
		return 0, false
	}

	remaining := rec.lockedUntil.Sub(t.now())
	if remaining <= 0 {
		return 0, false
	}
	return remaining, true
}

// Sweep purges records whose first attempt is more than an hour old,
// throttled to once per sweep interval.
func (t *AttemptTracker) Sweep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sweepLocked()
}

// Tracked reports the number of IPs with live records.
func (t *AttemptTracker) Tracked() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.attempts)
}

func (t *AttemptTracker) sweepLocked() {
	now := t.now()
	if now.Sub(t.lastSweep) < attemptSweepEvery {
		return
	}

	for ip, rec := range t.attempts {
		if now.Sub(rec.firstAttempt) > attemptStaleAfter {
			delete(t.attempts, ip)
		}
	}

	t.lastSweep = now
}
