package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tbourn/go-feedback-backend/internal/domain"
)

func TestOpenSQLite_And_AutoMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	// schema is usable end to end
	r, err := CreateReview(context.Background(), db, &domain.Review{
		Rating: 5, ReviewText: "works", UserResponse: "u", AISummary: "s", RecommendedActions: "a",
	})
	if err != nil {
		t.Fatalf("CreateReview on file DB: %v", err)
	}
	if r.ID == 0 {
		t.Fatalf("expected assigned ID")
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "no-such-dir", "reviews.db"))
	if err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}
