package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreateAndGetIdempotency(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec, err := CreateIdempotency(ctx, db, "u1", "key-1", 42, 201, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.ID == "" || rec.ReviewID != 42 || rec.Status != 201 {
		t.Fatalf("record fields unexpected: %+v", rec)
	}
	if !rec.ExpiresAt.After(rec.CreatedAt) {
		t.Fatalf("expiry must be after creation: %+v", rec)
	}

	got, err := GetIdempotency(ctx, db, "u1", "key-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("GetIdempotency: %v", err)
	}
	if got.ReviewID != 42 {
		t.Fatalf("lookup mismatch: %+v", got)
	}
}

func TestGetIdempotency_MissEmptyKeyAndExpiry(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// empty key short-circuits
	if _, err := GetIdempotency(ctx, db, "u1", "   ", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty key expected ErrNotFound, got %v", err)
	}

	// absent record
	if _, err := GetIdempotency(ctx, db, "u1", "nope", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("miss expected ErrNotFound, got %v", err)
	}

	// expired record is invisible
	if _, err := CreateIdempotency(ctx, db, "u1", "short", 1, 201, time.Millisecond); err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	future := time.Now().UTC().Add(time.Minute)
	if _, err := GetIdempotency(ctx, db, "u1", "short", future); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired record expected ErrNotFound, got %v", err)
	}
}

func TestCreateIdempotency_DuplicateKey(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "u1", "dup", 1, 201, time.Hour); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := CreateIdempotency(ctx, db, "u1", "dup", 2, 201, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// same key under a different user is a separate tuple
	if _, err := CreateIdempotency(ctx, db, "u2", "dup", 3, 201, time.Hour); err != nil {
		t.Fatalf("different user should not conflict: %v", err)
	}

	// scoping: u2's record must not replay for u1
	got, err := GetIdempotency(ctx, db, "u2", "dup", time.Now().UTC())
	if err != nil {
		t.Fatalf("GetIdempotency u2: %v", err)
	}
	if got.ReviewID != 3 {
		t.Fatalf("u2 record mismatch: %+v", got)
	}
	got, err = GetIdempotency(ctx, db, "u1", "dup", time.Now().UTC())
	if err != nil {
		t.Fatalf("GetIdempotency u1: %v", err)
	}
	if got.ReviewID != 1 {
		t.Fatalf("u1 must keep its original record: %+v", got)
	}
}
