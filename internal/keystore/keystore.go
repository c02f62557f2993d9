// Package keystore implements the in-memory credential table: provisioned
// API keys with expiry dates, an optional daily quota, and usage counters.
//
// The store is process-lifetime state. All reads and writes (validation,
// usage commits, the lazy daily sweep) run under a single store-wide mutex;
// update work is O(1) and contention is low, so finer locking buys nothing.
//
// The current time is injectable so expiry and day-rollover behavior can be
// tested deterministically.
package keystore

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// StatusActive and StatusInactive are the recognized credential statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Unlimited marks a credential with no daily quota.
const Unlimited = 0

// Credential is one provisioned API key. Quota of Unlimited (0) means the
// key has no daily cap.
type Credential struct {
	Name   string
	Expiry time.Time // date; time-of-day is irrelevant
	Status string
	Quota  int

	usedToday int
	totalUsed int
}

// KeyInfo is the usage snapshot attached to API responses after a
// successful validation. RemainingToday is a decimal count or "unlimited".
type KeyInfo struct {
	Name           string `json:"name"`
	Expiry         string `json:"expiry"`
	DaysLeft       int    `json:"days_left"`
	Status         string `json:"status"`
	Quota          int    `json:"daily_quota,omitempty"`
	UsedToday      int    `json:"used_today"`
	RemainingToday string `json:"remaining_today"`
	TotalUsed      int    `json:"total_used"`
}

// PublicCredential is the admin-facing projection of a credential. It never
// exposes usage counters.
type PublicCredential struct {
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	Status string `json:"status"`
	Quota  int    `json:"daily_quota,omitempty"`
}

// Store holds the credential table and the day marker for the lazy reset.
// It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	creds    map[string]*Credential
	resetDay time.Time // calendar day the used-today counters belong to
	now      func() time.Time
}

// Option customizes a Store at construction time.
type Option func(*Store)

// WithClock replaces the wall clock, letting tests simulate expiry and
// day-rollover deterministically.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore builds a Store from a static credential table. The seed map is
// copied; later mutations of the argument do not affect the store.
func NewStore(seed map[string]Credential, opts ...Option) *Store {
	s := &Store{
		creds: make(map[string]*Credential, len(seed)),
		now:   time.Now,
	}
	for k, c := range seed {
		cc := c
		s.creds[k] = &cc
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetDay = dateOf(s.now())
	return s
}

// Validate checks a key against the table and returns its usage snapshot.
//
// Checks run in order and short-circuit: missing key, lazy daily reset
// (store-wide, before any quota check), unknown key, expiry, inactive
// status, quota. It does not charge usage; see CommitUsage.
func (s *Store) Validate(key string) (KeyInfo, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return KeyInfo{}, ErrKeyMissing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.resetIfNewDay(now)

	c, ok := s.creds[key]
	if !ok {
		return KeyInfo{}, ErrKeyNotFound
	}
	if dateOf(now).After(dateOf(c.Expiry)) {
		return KeyInfo{}, &ExpiredError{Expiry: c.Expiry}
	}
	if c.Status == StatusInactive {
		return KeyInfo{}, ErrKeyInactive
	}
	if c.Quota != Unlimited && c.usedToday >= c.Quota {
		return KeyInfo{}, &QuotaError{Quota: c.Quota, UsedToday: c.usedToday}
	}
	return c.info(now), nil
}

// CommitUsage charges one call against the credential and returns the
// post-charge snapshot. It is called exactly once per request that passed
// validation and proceeds to an upstream dispatch attempt; usage is charged
// on attempt, not on result, so a failed upstream call still consumes quota.
func (s *Store) CommitUsage(key string) KeyInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.creds[strings.TrimSpace(key)]
	if !ok {
		return KeyInfo{}
	}
	c.usedToday++
	c.totalUsed++
	return c.info(s.now())
}

// Snapshot returns the public projection of every credential, keyed by the
// credential key. Usage counters are excluded.
func (s *Store) Snapshot() map[string]PublicCredential {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]PublicCredential, len(s.creds))
	for k, c := range s.creds {
		out[k] = PublicCredential{
			Name:   c.Name,
			Expiry: c.Expiry.Format("2006-01-02"),
			Status: c.Status,
			Quota:  c.Quota,
		}
	}
	return out
}

// ActiveCount reports how many credentials are currently flagged active.
func (s *Store) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, c := range s.creds {
		if c.Status == StatusActive {
			n++
		}
	}
	return n
}

// resetIfNewDay zeroes every used-today counter when the calendar day has
// advanced past the stored marker. Applied at most once per boundary
// crossing, not per credential. Caller must hold s.mu.
func (s *Store) resetIfNewDay(now time.Time) {
	day := dateOf(now)
	if day.Equal(s.resetDay) {
		return
	}
	for _, c := range s.creds {
		c.usedToday = 0
	}
	s.resetDay = day
}

// info builds the snapshot for a credential. Caller must hold s.mu.
func (c *Credential) info(now time.Time) KeyInfo {
	remaining := "unlimited"
	if c.Quota != Unlimited {
		left := c.Quota - c.usedToday
		if left < 0 {
			left = 0
		}
		remaining = strconv.Itoa(left)
	}
	return KeyInfo{
		Name:           c.Name,
		Expiry:         c.Expiry.Format("2006-01-02"),
		DaysLeft:       int(dateOf(c.Expiry).Sub(dateOf(now)).Hours() / 24),
		Status:         c.Status,
		Quota:          c.Quota,
		UsedToday:      c.usedToday,
		RemainingToday: remaining,
		TotalUsed:      c.totalUsed,
	}
}

// dateOf truncates a time to its calendar date in UTC, so expiry and
// rollover comparisons ignore time-of-day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
