// Package services – LookupService
//
// This file implements the request orchestrator: it composes credential
// validation, query classification, the throttled upstream fetch, and
// record extraction into the end-to-end handling of one lookup, and decides
// which failures reach the caller as which error kinds.
//
// Ordering rules it enforces:
//   - Credential denial and input validation happen before any usage is
//     charged and before the throttle gate is touched.
//   - Usage is committed immediately before the upstream attempt and is not
//     refunded when the attempt fails; retries against the rate-limited
//     upstream are never free.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/simdex/go-lookup-gateway/internal/classify"
	"github.com/simdex/go-lookup-gateway/internal/domain"
	"github.com/simdex/go-lookup-gateway/internal/extract"
	"github.com/simdex/go-lookup-gateway/internal/keystore"
	"github.com/simdex/go-lookup-gateway/internal/repo"
)

// Keystore is the credential-store contract required by LookupService.
type Keystore interface {
	// Validate checks the key and returns its usage snapshot without
	// charging usage.
	Validate(key string) (keystore.KeyInfo, error)
	// CommitUsage charges one call and returns the post-charge snapshot.
	CommitUsage(key string) keystore.KeyInfo
}

// Fetcher is the upstream-client contract: one throttled call returning
// raw HTML.
type Fetcher interface {
	Fetch(ctx context.Context, q domain.Query) (string, error)
}

// LookupResult is the assembled outcome of a dispatched lookup.
type LookupResult struct {
	KeyDetails keystore.KeyInfo
	Query      domain.Query
	Records    []domain.Record
}

// LookupService orchestrates one lookup request end to end.
type LookupService struct {
	Keys     Keystore
	Upstream Fetcher

	// DB is the optional audit handle; when nil, no audit rows are written.
	DB *gorm.DB
}

// NewLookupService constructs a LookupService. db may be nil to disable the
// audit trail (tests use this).
func NewLookupService(keys Keystore, up Fetcher, db *gorm.DB) *LookupService {
	return &LookupService{Keys: keys, Upstream: up, DB: db}
}

// Lookup runs the full pipeline for one request.
//
// Error mapping for callers: keystore denials mean the request never
// reached validation's far side (no usage charged, gate untouched);
// ErrNumberRequired and classify.ErrInvalidFormat mean bad input (no usage
// charged); *upstream.Error means the dispatch failed after usage was
// charged. On an upstream failure the returned result is non-nil and still
// carries the credential snapshot, so callers can echo it.
func (s *LookupService) Lookup(ctx context.Context, rawQuery, key string) (*LookupResult, error) {
	if _, err := s.Keys.Validate(key); err != nil {
		return nil, err
	}

	if strings.TrimSpace(rawQuery) == "" {
		return nil, ErrNumberRequired
	}
	q, err := classify.Classify(rawQuery)
	if err != nil {
		return nil, err
	}

	// Charged on attempt, before the upstream call resolves.
	info := s.Keys.CommitUsage(key)
	res := &LookupResult{KeyDetails: info, Query: q}

	start := time.Now()
	html, err := s.Upstream.Fetch(ctx, q)
	if err != nil {
		s.audit(ctx, key, q, "upstream_error", 0, time.Since(start))
		return res, err
	}

	res.Records = extract.Extract(html)
	s.audit(ctx, key, q, "ok", len(res.Records), time.Since(start))
	return res, nil
}

// audit records the dispatched lookup. Best effort: an audit failure is
// logged and never fails the request.
func (s *LookupService) audit(ctx context.Context, key string, q domain.Query, status string, results int, dur time.Duration) {
	if s.DB == nil {
		return
	}
	if err := repo.SaveLookup(ctx, s.DB, key, q.Kind, status, results, dur); err != nil {
		log.Warn().Err(err).Str("status", status).Msg("lookup audit write failed")
	}
}
