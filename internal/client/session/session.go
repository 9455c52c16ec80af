// Package session caches the caller's bearer token and principal on the
// client side and enforces the inactivity timeout.
package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// InactivityLimit is how long a session survives without user interaction.
const InactivityLimit = 30 * time.Minute

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrSessionTimeout = errors.New("session timed out after 30 minutes of inactivity, please log in again")
)

// State is the observable state of the cache.
type State int

const (
	StateLoggedOut State = iota
	StateActive
	// StateExpired is reported once, by the check that discovers the timeout.
	// The cache is already cleared at that point.
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateExpired:
		return "expired"
	default:
		return "logged out"
	}
}

// Principal is the snapshot of the logged-in account kept with the token.
type Principal struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"`
}

// Snapshot is the persistable form of an active session.
type Snapshot struct {
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Principal    Principal `json:"principal"`
	LastActivity time.Time `json:"last_activity"`
}

// Cache holds at most one session. All reads and transitions happen under a
// single mutex, so no caller can observe a half-cleared session.
type Cache struct {
	mu    sync.Mutex
	now   func() time.Time
	limit time.Duration

	token        string
	expiresAt    time.Time
	principal    Principal
	lastActivity time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New returns an empty, logged-out cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		now:   time.Now,
		limit: InactivityLimit,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Login replaces whatever session exists with a fresh, active one.
func (c *Cache) Login(token string, expiresAt time.Time, principal Principal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
	c.expiresAt = expiresAt
	c.principal = principal
	c.lastActivity = c.now()
}

// Logout discards the session.
func (c *Cache) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clear()
}

// Begin starts a user interaction: it checks the inactivity limit, refreshes
// last activity and returns the token to attach. A timed-out session is
// cleared before the token could be used.
func (c *Cache) Begin() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkLocked(); err != nil {
		return "", err
	}
	c.lastActivity = c.now()

	return c.token, nil
}

// Touch records a user interaction without needing the token.
func (c *Cache) Touch() error {
	_, err := c.Begin()

	return err
}

// Reject clears the session after the server refused token. A token from an
// older session does not clear a newer login. It reports whether anything was cleared.
func (c *Cache) Reject(token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" || c.token != token {
		return false
	}
	c.clear()

	return true
}

// Token returns the cached token without counting as an interaction.
func (c *Cache) Token() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.token, c.token != ""
}

// Profile returns the principal snapshot of the active session.
func (c *Cache) Profile() (Principal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		return Principal{}, false
	}

	return c.principal, true
}

// UpdateProfile refreshes the principal snapshot, e.g. after an email change.
func (c *Cache) UpdateProfile(principal Principal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		c.principal = principal
	}
}

// State classifies the session now. Discovering a timeout clears the cache and
// reports StateExpired; the next call reports StateLoggedOut.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch err := c.checkLocked(); {
	case err == nil:
		return StateActive
	case errors.Is(err, ErrSessionTimeout):
		return StateExpired
	default:
		return StateLoggedOut
	}
}

// Remaining reports how long the session survives without another interaction.
func (c *Cache) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		return 0
	}
	remaining := c.limit - c.now().Sub(c.lastActivity)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// Snapshot returns the active session for persistence.
func (c *Cache) Snapshot() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		return Snapshot{}, false
	}

	return Snapshot{
		Token:        c.token,
		ExpiresAt:    c.expiresAt,
		Principal:    c.principal,
		LastActivity: c.lastActivity,
	}, true
}

// Restore loads a persisted session as-is. The inactivity limit is checked on
// the next interaction, not here.
func (c *Cache) Restore(snapshot Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if snapshot.Token == "" {
		c.clear()

		return
	}
	c.token = snapshot.Token
	c.expiresAt = snapshot.ExpiresAt
	c.principal = snapshot.Principal
	c.lastActivity = snapshot.LastActivity
}

func (c *Cache) checkLocked() error {
	if c.token == "" {
		return ErrNotLoggedIn
	}
	if c.now().Sub(c.lastActivity) >= c.limit {
		c.clear()

		return ErrSessionTimeout
	}

	return nil
}

func (c *Cache) clear() {
	c.token = ""
	c.expiresAt = time.Time{}
	c.principal = Principal{}
	c.lastActivity = time.Time{}
}
