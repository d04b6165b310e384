package security

import (
	"sync"
	"time"
)

// attemptWindow is how long failed attempts count before the counter
// resets on its own.
const attemptWindow = 30 * time.Minute

// LoginLockout counts failed logins per account and locks the account once
// the threshold is reached.
type LoginLockout struct {
	accounts map[string]*lockoutState
	mu       sync.Mutex

	threshold int
	duration  time.Duration
}

type lockoutState struct {
	failed      int
	lockedUntil time.Time
	lastAttempt time.Time
	mu          sync.Mutex
}

// NewLoginLockout creates a tracker that locks an account for duration
// after threshold failed attempts.
func NewLoginLockout(threshold int, duration time.Duration) *LoginLockout {
	return &LoginLockout{
		accounts:  make(map[string]*lockoutState),
		threshold: threshold,
		duration:  duration,
	}
}

// RecordFailure registers a failed login. Returns true when this failure
// triggered a lockout.
func (l *LoginLockout) RecordFailure(account string) bool {
	l.mu.Lock()
	state, ok := l.accounts[account]
	if !ok {
		l.accounts[account] = &lockoutState{failed: 1, lastAttempt: time.Now()}
		l.mu.Unlock()
		return false
	}
	l.mu.Unlock()

	state.mu.Lock()
	defer state.mu.Unlock()

	if time.Since(state.lastAttempt) > attemptWindow {
		state.failed = 1
		state.lastAttempt = time.Now()
		return false
	}

	state.failed++
	state.lastAttempt = time.Now()

	if state.failed >= l.threshold {
		state.lockedUntil = time.Now().Add(l.duration)
		return true
	}
	return false
}

// IsLocked reports whether the account is currently locked.
func (l *LoginLockout) IsLocked(account string) bool {
	l.mu.Lock()
	state, ok := l.accounts[account]
	l.mu.Unlock()
	if !ok {
		return false
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.lockedUntil.IsZero() {
		return false
	}
	if time.Now().After(state.lockedUntil) {
		state.failed = 0
		state.lockedUntil = time.Time{}
		return false
	}
	return true
}

// Clear resets the account's counter. Call it on successful login.
func (l *LoginLockout) Clear(account string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.accounts, account)
}
