// Package domain defines the core value types of the lookup gateway: the
// classified query, the record extracted from the upstream page, and the
// persisted lookup audit entry. Query and Record are plain values with no
// behavior; Lookup is mapped with GORM for the operational audit trail.
package domain

import (
	"time"
)

// QueryKind discriminates the two accepted query shapes.
type QueryKind string

const (
	// KindMobile is a mobile number: literal "92" followed by 9-12 digits.
	KindMobile QueryKind = "mobile"
	// KindNationalID is a 13-digit national identity number.
	KindNationalID QueryKind = "national_id"
)

// Query is a validated, normalized user input. A Query value is always one
// of exactly two kinds; invalid inputs never produce a Query.
type Query struct {
	Kind  QueryKind `json:"kind"`
	Value string    `json:"value"`
}

// Record is one normalized result row scraped from the upstream table.
// Fields carry the upstream cell text as-is apart from whitespace cleanup;
// no further validation is applied.
type Record struct {
	Mobile     string `json:"mobile"`
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
	Address    string `json:"address"`
}

// Lookup is the audit row persisted once per dispatched lookup request.
// It records operational history only; credential and quota state live
// in memory and are never persisted.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Key: the credential key that made the request; indexed.
//   - QueryKind: "mobile" or "national_id".
//   - Status: "ok" or "upstream_error".
//   - Results: number of records extracted (0 on upstream failure).
//   - DurationMS: wall time of the upstream fetch + extraction.
type Lookup struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	Key        string    `json:"key"         gorm:"type:varchar(64);not null;index:idx_key_lookups"`
	QueryKind  string    `json:"query_kind"  gorm:"type:varchar(16);not null;check:query_kind IN ('mobile','national_id')"`
	Status     string    `json:"status"      gorm:"type:varchar(32);not null"`
	Results    int       `json:"results"     gorm:"not null;default:0"`
	DurationMS int64     `json:"duration_ms" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"  gorm:"index"`
}

// TableName returns the database table name for Lookup.
func (Lookup) TableName() string { return "lookups" }
