// Package keystore – seed table
//
// Credentials are provisioned at process start from this static table.
// There is no runtime create/delete and no persistence across restarts.
package keystore

import "time"

// DefaultCredentials returns the provisioned key table the server is seeded
// with. Keys with Quota set are capped per calendar day; Unlimited keys are
// not.
func DefaultCredentials() map[string]Credential {
	return map[string]Credential{
		"DEMO_PREMIUM": {
			Name:   "Premium User",
			Expiry: time.Date(2030, time.March, 30, 0, 0, 0, 0, time.UTC),
			Status: StatusActive,
			Quota:  Unlimited,
		},
		"DEMO_PAID30DAYS": {
			Name:   "VIP User",
			Expiry: time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
			Status: StatusActive,
			Quota:  Unlimited,
		},
		"DEMO_TRIAL": {
			Name:   "Trial User",
			Expiry: time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
			Status: StatusActive,
			Quota:  50,
		},
	}
}
