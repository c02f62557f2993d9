package keystore

import (
	"errors"
	"testing"
	"time"
)

// fixedClock returns a settable clock for deterministic tests.
type fixedClock struct {
	t time.Time
}

func (f *fixedClock) now() time.Time { return f.t }

func newTestStore(clk *fixedClock) *Store {
	seed := map[string]Credential{
		"UNLIMITED": {
			Name:   "Premium User",
			Expiry: time.Date(2030, time.March, 30, 0, 0, 0, 0, time.UTC),
			Status: StatusActive,
		},
		"CAPPED": {
			Name:   "Trial User",
			Expiry: time.Date(2030, time.March, 30, 0, 0, 0, 0, time.UTC),
			Status: StatusActive,
			Quota:  2,
		},
		"EXPIRED": {
			Name:   "Old User",
			Expiry: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
			Status: StatusActive,
		},
		"INACTIVE": {
			Name:   "Disabled User",
			Expiry: time.Date(2030, time.March, 30, 0, 0, 0, 0, time.UTC),
			Status: StatusInactive,
		},
	}
	return NewStore(seed, WithClock(clk.now))
}

func TestValidate_MissingKey(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestStore(clk)

	for _, key := range []string{"", "   "} {
		if _, err := s.Validate(key); !errors.Is(err, ErrKeyMissing) {
			t.Fatalf("Validate(%q): err=%v, want ErrKeyMissing", key, err)
		}
	}
}

func TestValidate_NotFound(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestStore(clk)

	if _, err := s.Validate("NOPE"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("err=%v, want ErrKeyNotFound", err)
	}
}

func TestValidate_Expired(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestStore(clk)

	var exp *ExpiredError
	_, err := s.Validate("EXPIRED")
	if !errors.As(err, &exp) {
		t.Fatalf("err=%v, want *ExpiredError", err)
	}
	if got := exp.Expiry.Format("2006-01-02"); got != "2025-01-10" {
		t.Fatalf("expiry=%s", got)
	}
}

func TestValidate_ExpiryBoundary(t *testing.T) {
	// A key remains valid through the whole expiry day and expires at the
	// start of the following day, regardless of time-of-day.
	clk := &fixedClock{t: time.Date(2025, time.January, 10, 23, 59, 0, 0, time.UTC)}
	s := newTestStore(clk)

	if _, err := s.Validate("EXPIRED"); err != nil {
		t.Fatalf("on expiry day: err=%v, want valid", err)
	}

	clk.t = time.Date(2025, time.January, 11, 0, 1, 0, 0, time.UTC)
	var exp *ExpiredError
	if _, err := s.Validate("EXPIRED"); !errors.As(err, &exp) {
		t.Fatalf("day after expiry: err=%v, want *ExpiredError", err)
	}
}

func TestValidate_Inactive(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestStore(clk)

	if _, err := s.Validate("INACTIVE"); !errors.Is(err, ErrKeyInactive) {
		t.Fatalf("err=%v, want ErrKeyInactive", err)
	}
}

func TestValidate_ExpiredBeatsQuota(t *testing.T) {
	// Expiry denies regardless of quota state.
	clk := &fixedClock{t: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)}
	seed := map[string]Credential{
		"K": {
			Name:   "x",
			Expiry: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			Status: StatusActive,
			Quota:  100,
		},
	}
	s := NewStore(seed, WithClock(clk.now))

	var exp *ExpiredError
	if _, err := s.Validate("K"); !errors.As(err, &exp) {
		t.Fatalf("err=%v, want *ExpiredError", err)
	}
}

func TestQuota_ExhaustionSequence(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)}
	s := newTestStore(clk)

	// Quota is 2: two validate+commit cycles pass, the third validation
	// is denied and used_today never exceeds the quota.
	for i := 0; i < 2; i++ {
		info, err := s.Validate("CAPPED")
		if err != nil {
			t.Fatalf("request %d: unexpected denial %v", i+1, err)
		}
		if info.UsedToday != i {
			t.Fatalf("request %d: used_today=%d, want %d", i+1, info.UsedToday, i)
		}
		s.CommitUsage("CAPPED")
	}

	var q *QuotaError
	_, err := s.Validate("CAPPED")
	if !errors.As(err, &q) {
		t.Fatalf("err=%v, want *QuotaError", err)
	}
	if q.Quota != 2 || q.UsedToday != 2 {
		t.Fatalf("quota error detail: %+v", q)
	}
}

func TestCommitUsage_Snapshot(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)}
	s := newTestStore(clk)

	info := s.CommitUsage("CAPPED")
	if info.UsedToday != 1 || info.TotalUsed != 1 {
		t.Fatalf("post-commit snapshot: %+v", info)
	}
	if info.RemainingToday != "1" {
		t.Fatalf("remaining_today=%q, want 1", info.RemainingToday)
	}

	info = s.CommitUsage("UNLIMITED")
	if info.RemainingToday != "unlimited" {
		t.Fatalf("remaining_today=%q, want unlimited", info.RemainingToday)
	}
}

func TestDailyReset_OncePerBoundary(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)}
	s := newTestStore(clk)

	s.CommitUsage("CAPPED")
	s.CommitUsage("CAPPED")
	s.CommitUsage("UNLIMITED")

	// Roll the clock past midnight: the first validation resets every
	// counter, once.
	clk.t = time.Date(2026, time.June, 2, 0, 5, 0, 0, time.UTC)

	info, err := s.Validate("CAPPED")
	if err != nil {
		t.Fatalf("after rollover: unexpected denial %v", err)
	}
	if info.UsedToday != 0 {
		t.Fatalf("after rollover: used_today=%d, want 0", info.UsedToday)
	}
	if info.TotalUsed != 2 {
		t.Fatalf("total_used=%d, want 2 (never reset)", info.TotalUsed)
	}

	// A later commit the same day must not re-trigger the reset.
	s.CommitUsage("CAPPED")
	info, err = s.Validate("CAPPED")
	if err != nil {
		t.Fatalf("unexpected denial %v", err)
	}
	if info.UsedToday != 1 {
		t.Fatalf("used_today=%d, want 1", info.UsedToday)
	}

	// The reset also applied to credentials not being validated.
	uinfo, err := s.Validate("UNLIMITED")
	if err != nil {
		t.Fatalf("unexpected denial %v", err)
	}
	if uinfo.UsedToday != 0 {
		t.Fatalf("UNLIMITED used_today=%d, want 0", uinfo.UsedToday)
	}
}

func TestDailyReset_ReopensExhaustedQuota(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)}
	s := newTestStore(clk)

	s.CommitUsage("CAPPED")
	s.CommitUsage("CAPPED")
	if _, err := s.Validate("CAPPED"); err == nil {
		t.Fatal("expected quota denial before rollover")
	}

	clk.t = clk.t.Add(24 * time.Hour)
	if _, err := s.Validate("CAPPED"); err != nil {
		t.Fatalf("after rollover: err=%v, want valid", err)
	}
}

func TestSnapshot_NoUsageCounters(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)}
	s := newTestStore(clk)

	snap := s.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("snapshot size=%d, want 4", len(snap))
	}
	pc, ok := snap["CAPPED"]
	if !ok {
		t.Fatal("CAPPED missing from snapshot")
	}
	if pc.Name != "Trial User" || pc.Quota != 2 || pc.Status != StatusActive {
		t.Fatalf("snapshot entry: %+v", pc)
	}
	if pc.Expiry != "2030-03-30" {
		t.Fatalf("expiry=%q", pc.Expiry)
	}
}

func TestActiveCount(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)}
	s := newTestStore(clk)

	// 3 active (UNLIMITED, CAPPED, EXPIRED) + 1 inactive.
	if n := s.ActiveCount(); n != 3 {
		t.Fatalf("ActiveCount=%d, want 3", n)
	}
}

func TestValidate_DaysLeft(t *testing.T) {
	clk := &fixedClock{t: time.Date(2030, time.March, 20, 12, 0, 0, 0, time.UTC)}
	s := newTestStore(clk)

	info, err := s.Validate("UNLIMITED")
	if err != nil {
		t.Fatalf("unexpected denial %v", err)
	}
	if info.DaysLeft != 10 {
		t.Fatalf("days_left=%d, want 10", info.DaysLeft)
	}
}
