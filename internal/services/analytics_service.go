// Package services – analytics aggregation
//
// This file implements the analytics snapshot: total count, average rating,
// the 1..5 rating histogram, and the three-bucket sentiment split. The
// aggregation itself (ComputeAnalytics) is a pure function over a review
// slice so it can be tested without a database; AnalyticsService wraps it
// with the repository fetch.
package services

import (
	"context"
	"math"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"

	"github.com/tbourn/go-feedback-backend/internal/domain"
	"github.com/tbourn/go-feedback-backend/internal/repo"
)

// RatingDistribution is the per-star histogram. All five buckets are always
// present, zero-filled when empty.
type RatingDistribution struct {
	Rating1 int64 `json:"rating_1"`
	Rating2 int64 `json:"rating_2"`
	Rating3 int64 `json:"rating_3"`
	Rating4 int64 `json:"rating_4"`
	Rating5 int64 `json:"rating_5"`
}

// SentimentAnalysis partitions reviews into negative (1-2 stars), neutral
// (3 stars), and positive (4-5 stars) buckets with per-bucket percentages.
//
// Percentages are rounded independently per bucket and may not sum to
// exactly 100; that is accepted behavior, not something to normalize away.
type SentimentAnalysis struct {
	Positive           int64   `json:"positive"`
	PositivePercentage float64 `json:"positive_percentage"`
	Neutral            int64   `json:"neutral"`
	NeutralPercentage  float64 `json:"neutral_percentage"`
	Negative           int64   `json:"negative"`
	NegativePercentage float64 `json:"negative_percentage"`
}

// AnalyticsSnapshot is the derived, never-persisted analytics view computed
// fresh from the full review set on each request.
type AnalyticsSnapshot struct {
	TotalReviews       int64              `json:"total_reviews"`
	AverageRating      float64            `json:"average_rating"`
	RatingDistribution RatingDistribution `json:"rating_distribution"`
	SentimentAnalysis  SentimentAnalysis  `json:"sentiment_analysis"`
}

// RatingCounts returns the histogram as a map keyed 1..5, zero-filled.
func (d RatingDistribution) RatingCounts() map[int]int64 {
	return map[int]int64{
		1: d.Rating1, 2: d.Rating2, 3: d.Rating3, 4: d.Rating4, 5: d.Rating5,
	}
}

// ComputeAnalytics aggregates the given reviews into a snapshot. It is
// deterministic, performs no I/O, and handles the empty slice without
// division errors (all numeric fields zero). The average is rounded to one
// decimal place.
func ComputeAnalytics(reviews []domain.Review) AnalyticsSnapshot {
	snap := AnalyticsSnapshot{TotalReviews: int64(len(reviews))}
	if snap.TotalReviews == 0 {
		return snap
	}

	var sum int64
	counts := map[int]int64{}
	for _, r := range reviews {
		sum += int64(r.Rating)
		counts[r.Rating]++
	}
	snap.AverageRating = round1(float64(sum) / float64(snap.TotalReviews))
	snap.RatingDistribution = RatingDistribution{
		Rating1: counts[1],
		Rating2: counts[2],
		Rating3: counts[3],
		Rating4: counts[4],
		Rating5: counts[5],
	}

	negative := counts[1] + counts[2]
	neutral := counts[3]
	positive := counts[4] + counts[5]
	total := float64(snap.TotalReviews)
	snap.SentimentAnalysis = SentimentAnalysis{
		Positive:           positive,
		PositivePercentage: round1(float64(positive) / total * 100),
		Neutral:            neutral,
		NeutralPercentage:  round1(float64(neutral) / total * 100),
		Negative:           negative,
		NegativePercentage: round1(float64(negative) / total * 100),
	}
	return snap
}

// AnalyticsService computes the analytics snapshot over the stored review
// set. Stateless between calls; safe for concurrent use.
type AnalyticsService struct {
	DB *gorm.DB
}

// Snapshot fetches all reviews and aggregates them. Nothing is cached: the
// result always reflects the record set at call time.
func (s *AnalyticsService) Snapshot(ctx context.Context) (AnalyticsSnapshot, error) {
	tr := otel.Tracer("services/AnalyticsService")
	ctx, span := tr.Start(ctx, "Snapshot")
	defer span.End()

	reviews, err := repo.ListAllReviews(ctx, s.DB)
	if err != nil {
		return AnalyticsSnapshot{}, err
	}
	return ComputeAnalytics(reviews), nil
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
