// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Review
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Reviews are append-only — there are
// deliberately no update or delete functions here.
//
// Error semantics:
//   - When a review is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-feedback-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateReview inserts a fully-enriched Review row. The caller supplies all
// generated fields; CreatedAt is set to UTC here and the monotonically
// increasing ID is assigned by the database.
func CreateReview(ctx context.Context, db *gorm.DB, r *domain.Review) (*domain.Review, error) {
	r.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetReview fetches a single review by ID, or ErrNotFound if missing.
func GetReview(ctx context.Context, db *gorm.DB, id uint) (*domain.Review, error) {
	var r domain.Review
	if err := db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// CountReviews returns the total number of stored reviews.
func CountReviews(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Review{}).Count(&total).Error
	return total, err
}

// ListReviewsPage returns a slice of reviews ordered by creation time
// descending (newest first), skipping offset rows and returning at most
// limit rows. The caller is responsible for clamping offset and limit.
func ListReviewsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Review, error) {
	var out []domain.Review
	err := db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListAllReviews returns every stored review in insertion order. Analytics
// and insights are computed over the full set on each request.
func ListAllReviews(ctx context.Context, db *gorm.DB) ([]domain.Review, error) {
	var out []domain.Review
	err := db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

// HighestRatedReviews returns up to limit reviews ordered by rating
// descending, ties broken by most-recent-first. Used to sample the
// representative "what customers love" set for insights.
func HighestRatedReviews(ctx context.Context, db *gorm.DB, limit int) ([]domain.Review, error) {
	var out []domain.Review
	err := db.WithContext(ctx).
		Order("rating desc, created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// LowestRatedReviews returns up to limit reviews ordered by rating
// ascending, ties broken by most-recent-first.
func LowestRatedReviews(ctx context.Context, db *gorm.DB, limit int) ([]domain.Review, error) {
	var out []domain.Review
	err := db.WithContext(ctx).
		Order("rating asc, created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}
