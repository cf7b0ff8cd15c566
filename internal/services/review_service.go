// Package services – ReviewService
//
// This file implements ReviewService, the application-level component that
// owns review submission. It validates the rating and text length, asks the
// AI adapter for the three enrichment fields (which always succeeds, by
// construction), and persists the fully-formed record. There is no
// partially-enriched state visible to readers: either validation rejects
// the submission before any generation happens, or a complete Review row is
// written.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// the rating and pagination parameters where applicable.
package services

import (
	"context"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/go-feedback-backend/internal/ai"
	"github.com/tbourn/go-feedback-backend/internal/domain"
	"github.com/tbourn/go-feedback-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxReviewRunes bounds accepted review text when the service is not
// configured with an explicit limit.
const DefaultMaxReviewRunes = 5000

// Enricher is the AI-capability contract ReviewService and InsightsService
// depend on. Implementations must be infallible: on any external failure
// they return deterministic fallback text instead of an error.
type Enricher interface {
	// ReviewAnalysis generates the three enrichment fields for one review.
	ReviewAnalysis(ctx context.Context, rating int, reviewText string) ai.Analysis
	// Insights generates the aggregate narrative for the admin dashboard.
	Insights(ctx context.Context, samples []ai.ReviewSample, stats ai.Stats) string
}

// ReviewService coordinates validation, enrichment, and persistence of
// customer reviews. It holds no mutable state between calls and is safe for
// concurrent use.
type ReviewService struct {
	DB *gorm.DB
	AI Enricher

	// MaxReviewRunes caps accepted review text length; <= 0 means the
	// default of 5000.
	MaxReviewRunes int
}

// maxRunes returns the configured text bound or the default.
func (s *ReviewService) maxRunes() int {
	if s.MaxReviewRunes > 0 {
		return s.MaxReviewRunes
	}
	return DefaultMaxReviewRunes
}

// Submit validates the submission, generates the enrichment fields, and
// persists the review.
//
// Validation happens before any generation is attempted:
//   - rating must be an integer in 1..5 (ErrInvalidRating)
//   - reviewText must be at most the configured rune bound (ErrReviewTooLong);
//     empty text is permitted.
//
// The AI adapter is consulted exactly once per submission and cannot fail,
// so the only post-validation error source is the database write, which is
// propagated unchanged.
func (s *ReviewService) Submit(ctx context.Context, rating int, reviewText string) (*domain.Review, error) {
	tr := otel.Tracer("services/ReviewService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(attribute.Int("review.rating", rating)),
	)
	defer span.End()

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if utf8.RuneCountInString(reviewText) > s.maxRunes() {
		return nil, ErrReviewTooLong
	}

	analysis := s.AI.ReviewAnalysis(ctx, rating, reviewText)

	r := &domain.Review{
		Rating:             rating,
		ReviewText:         reviewText,
		UserResponse:       analysis.UserResponse,
		AISummary:          analysis.Summary,
		RecommendedActions: analysis.RecommendedActions,
	}
	return repo.CreateReview(ctx, s.DB, r)
}

// ListPage returns at most limit stored reviews, newest first, skipping the
// first skip rows, along with the total count. Negative skip and
// non-positive limit are coerced to the defaults (0 and 100).
func (s *ReviewService) ListPage(ctx context.Context, skip, limit int) ([]domain.Review, int64, error) {
	tr := otel.Tracer("services/ReviewService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.Int("skip", skip),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}

	total, err := repo.CountReviews(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Review{}, 0, nil
	}

	items, err := repo.ListReviewsPage(ctx, s.DB, skip, limit)
	return items, total, err
}

// Get fetches a single review by ID. Used by the idempotent-replay path of
// the submission endpoint.
func (s *ReviewService) Get(ctx context.Context, id uint) (*domain.Review, error) {
	return repo.GetReview(ctx, s.DB, id)
}
