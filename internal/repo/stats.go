// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides a small aggregate query used for
// conditional responses (ETag generation) on the admin listing.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-feedback-backend/internal/domain"
)

// ReviewsStats returns aggregate metadata for the review table: the total
// number of rows and the maximum CreatedAt timestamp among them. Because
// reviews are append-only, (count, maxCreatedAt) changes exactly when the
// result of any read path would change, which makes the pair a cheap and
// correct ETag source.
//
// When no reviews exist, count is 0 and maxCreatedAt is nil.
func ReviewsStats(ctx context.Context, db *gorm.DB) (count int64, maxCreatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Review{})

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
