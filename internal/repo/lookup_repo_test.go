package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/simdex/go-lookup-gateway/internal/domain"
)

var testDBCounter int

// newTestDB opens an isolated in-memory SQLite database with the audit
// schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBCounter++
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSaveLookup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := SaveLookup(ctx, db, "DEMO", domain.KindMobile, "ok", 2, 150*time.Millisecond); err != nil {
		t.Fatalf("save: %v", err)
	}

	var row domain.Lookup
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("read back: %v", err)
	}
	if row.ID == "" {
		t.Fatal("id not assigned")
	}
	if row.Key != "DEMO" || row.QueryKind != "mobile" || row.Status != "ok" {
		t.Fatalf("row: %+v", row)
	}
	if row.Results != 2 || row.DurationMS != 150 {
		t.Fatalf("row detail: %+v", row)
	}
	if row.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
}

func TestCountLookups(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if n, err := CountLookups(ctx, db); err != nil || n != 0 {
		t.Fatalf("empty count: n=%d err=%v", n, err)
	}

	for i := 0; i < 3; i++ {
		if err := SaveLookup(ctx, db, "DEMO", domain.KindNationalID, "ok", 0, time.Millisecond); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	n, err := CountLookups(ctx, db)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("count=%d, want 3", n)
	}
}

func TestRecentLookups_NewestFirstAndLimited(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Insert with explicit timestamps so ordering is deterministic.
	base := time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		row := &domain.Lookup{
			ID:        fmt.Sprintf("id-%d", i),
			Key:       "DEMO",
			QueryKind: "mobile",
			Status:    "ok",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	rows, err := RecentLookups(ctx, db, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len=%d, want 3", len(rows))
	}
	if rows[0].ID != "id-4" || rows[1].ID != "id-3" || rows[2].ID != "id-2" {
		t.Fatalf("order: %s, %s, %s", rows[0].ID, rows[1].ID, rows[2].ID)
	}
}

func TestRecentLookups_DefaultLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		if err := SaveLookup(ctx, db, "DEMO", domain.KindMobile, "ok", 0, 0); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	rows, err := RecentLookups(ctx, db, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 50 {
		t.Fatalf("len=%d, want default limit 50", len(rows))
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	if _, err := OpenSQLite("/definitely/not/a/dir/lookups.db", false); err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}

func TestOpenSQLite_CreatesFile(t *testing.T) {
	path := t.TempDir() + "/lookups.db"
	db, err := OpenSQLite(path, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := SaveLookup(context.Background(), db, "DEMO", domain.KindMobile, "ok", 1, time.Millisecond); err != nil {
		t.Fatalf("save: %v", err)
	}
}
