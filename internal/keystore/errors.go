// Package keystore – denial errors
//
// This file centralizes the credential-denial error values and types so
// callers (the lookup service and HTTP handlers) can branch on the precise
// denial reason instead of matching strings.
package keystore

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel denials with no extra detail.
var (
	// ErrKeyMissing is returned when no key was supplied at all.
	ErrKeyMissing = errors.New("api key missing")

	// ErrKeyNotFound is returned when the key is not in the table. The
	// message is deliberately the generic "access denied" so unknown keys
	// are indistinguishable from revoked ones.
	ErrKeyNotFound = errors.New("access denied")

	// ErrKeyInactive is returned when a stored credential is flagged
	// inactive. Inactive keys deny explicitly rather than being ignored.
	ErrKeyInactive = errors.New("key inactive")
)

// ExpiredError is returned when the current date is strictly after the
// credential's expiry date. A key stays valid through the whole expiry day.
type ExpiredError struct {
	Expiry time.Time
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("key expired on %s", e.Expiry.Format("2006-01-02"))
}

// QuotaError is returned when a quota-bearing credential has already used
// its full daily allowance.
type QuotaError struct {
	Quota     int
	UsedToday int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("daily limit exceeded (%d/%d)", e.UsedToday, e.Quota)
}
