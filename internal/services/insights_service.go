// Package services – InsightsService
//
// This file implements the insights synthesizer: it samples a bounded
// number of the highest- and lowest-rated reviews, computes the current
// analytics snapshot, and asks the AI adapter for a narrative insights
// block. The adapter degrades to a templated stats-to-prose narrative on
// any external failure, so this service never fails for AI reasons.
//
// Results are recomputed on every call — never cached — so they always
// reflect the record set at call time.
package services

import (
	"context"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tbourn/go-feedback-backend/internal/ai"
	"github.com/tbourn/go-feedback-backend/internal/domain"
	"github.com/tbourn/go-feedback-backend/internal/repo"
)

// DefaultInsightSampleSize bounds how many highest- and lowest-rated
// reviews are sampled for the narrative prompt (N of each).
const DefaultInsightSampleSize = 5

// EmptyInsightsNarrative is returned when no reviews exist yet. The AI
// capability is never consulted in that case.
const EmptyInsightsNarrative = "No reviews available yet. Start collecting feedback to get AI-powered insights!"

// InsightsResult is the derived, never-persisted insights view.
type InsightsResult struct {
	Insights             string  `json:"insights"`
	TotalReviewsAnalyzed int64   `json:"total_reviews_analyzed"`
	AverageRating        float64 `json:"average_rating"`
}

// InsightsService synthesizes the admin insights narrative. Stateless
// between calls; safe for concurrent use.
type InsightsService struct {
	DB *gorm.DB
	AI Enricher

	// SampleSize caps each of the high/low review samples; <= 0 means the
	// default of 5.
	SampleSize int
}

// sampleSize returns the configured bound or the default.
func (s *InsightsService) sampleSize() int {
	if s.SampleSize > 0 {
		return s.SampleSize
	}
	return DefaultInsightSampleSize
}

// Synthesize computes the insights block for the current review set.
//
// With no reviews stored it returns the fixed "no data" narrative and a
// zero count without touching the AI capability. Otherwise it aggregates
// the full set, samples up to SampleSize highest- and lowest-rated reviews
// (ties broken by most-recent-first), and passes sample plus stats to the
// adapter.
func (s *InsightsService) Synthesize(ctx context.Context) (InsightsResult, error) {
	tr := otel.Tracer("services/InsightsService")
	ctx, span := tr.Start(ctx, "Synthesize")
	defer span.End()

	reviews, err := repo.ListAllReviews(ctx, s.DB)
	if err != nil {
		return InsightsResult{}, err
	}
	if len(reviews) == 0 {
		return InsightsResult{Insights: EmptyInsightsNarrative}, nil
	}

	snap := ComputeAnalytics(reviews)
	span.SetAttributes(
		attribute.Int64("reviews.total", snap.TotalReviews),
		attribute.Float64("reviews.average_rating", snap.AverageRating),
	)

	samples, err := s.sample(ctx)
	if err != nil {
		return InsightsResult{}, err
	}

	narrative := s.AI.Insights(ctx, samples, ai.Stats{
		TotalReviews:  snap.TotalReviews,
		AverageRating: snap.AverageRating,
		RatingCounts:  snap.RatingDistribution.RatingCounts(),
	})

	return InsightsResult{
		Insights:             narrative,
		TotalReviewsAnalyzed: snap.TotalReviews,
		AverageRating:        snap.AverageRating,
	}, nil
}

// sample collects the representative high/low review sample, deduplicating
// rows that appear in both halves (possible when the store holds fewer than
// 2*SampleSize reviews).
func (s *InsightsService) sample(ctx context.Context) ([]ai.ReviewSample, error) {
	n := s.sampleSize()

	high, err := repo.HighestRatedReviews(ctx, s.DB, n)
	if err != nil {
		return nil, err
	}
	low, err := repo.LowestRatedReviews(ctx, s.DB, n)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{}, len(high)+len(low))
	out := make([]ai.ReviewSample, 0, len(high)+len(low))
	appendSamples := func(rows []domain.Review) {
		for _, r := range rows {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			out = append(out, ai.ReviewSample{Rating: r.Rating, Text: r.ReviewText})
		}
	}
	appendSamples(high)
	appendSamples(low)
	return out, nil
}
