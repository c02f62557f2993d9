// Package repo implements the persistence layer for the lookup audit
// trail, backed by GORM. This file provides the repository functions for
// the Lookup model.
//
// The repository follows a "thin" approach: it performs persistence and
// simple query composition, leaving orchestration rules to the services
// package. Raw GORM errors are propagated; translation happens upstream.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simdex/go-lookup-gateway/internal/domain"
)

// SaveLookup inserts one audit row for a dispatched lookup.
func SaveLookup(ctx context.Context, db *gorm.DB, key string, kind domain.QueryKind, status string, results int, dur time.Duration) error {
	row := &domain.Lookup{
		ID:         uuid.NewString(),
		Key:        key,
		QueryKind:  string(kind),
		Status:     status,
		Results:    results,
		DurationMS: dur.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(row).Error
}

// CountLookups returns the total number of audit rows.
func CountLookups(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Lookup{}).Count(&n).Error
	return n, err
}

// RecentLookups returns the most recent audit rows, newest first.
func RecentLookups(ctx context.Context, db *gorm.DB, limit int) ([]domain.Lookup, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []domain.Lookup
	err := db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
