// Package ai implements review enrichment: a client for an external
// OpenAI-compatible text-generation service, a deterministic rule-based
// fallback, and the adapter that selects between them. Callers never see
// an AI failure; the worst case is templated (rather than generated) text.
//
// This file contains the deterministic fallback. It is pure, performs no
// I/O, and is total over every valid rating (1..5) and any review text.
package ai

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// summaryExcerptRunes caps how much of the review text is quoted inside a
// fallback summary line.
const summaryExcerptRunes = 150

// Analysis holds the three enrichment fields generated for one review.
type Analysis struct {
	UserResponse       string
	Summary            string
	RecommendedActions string
}

// ReviewSample is one review passed to insights generation, reduced to the
// fields the prompt (or the templated fallback) needs.
type ReviewSample struct {
	Rating int
	Text   string
}

// Stats carries the aggregate numbers insights generation must reference.
type Stats struct {
	TotalReviews  int64
	AverageRating float64
	RatingCounts  map[int]int64 // keys 1..5, zero-filled
}

// tier describes the canned material for one rating value.
type tier struct {
	Label    string // short characterization used in summaries
	Response string // user-facing reply template
	Actions  string // recommended action list
}

// tiers maps each rating 1..5 to its response tier. Index 0 is unused.
var tiers = [6]tier{
	{},
	{
		Label:    "Poor",
		Response: "We are truly sorry your experience fell this short. Your feedback has been flagged for immediate attention, and we are committed to making this right and improving for you.",
		Actions:  "1. Escalate to a manager immediately\n2. Investigate the issues mentioned\n3. Offer a resolution or compensation\n4. Follow up within 24 hours",
	},
	{
		Label:    "Below expectations",
		Response: "Thank you for sharing your experience with us. We take your feedback seriously and will work to address the concerns you raised.",
		Actions:  "1. Escalate to a manager\n2. Review the issues mentioned\n3. Follow up with the customer within 24 hours",
	},
	{
		Label:    "Mixed",
		Response: "Thank you for your feedback. We appreciate your honest input and are always looking for ways to improve our service.",
		Actions:  "1. Follow up with the customer to understand concerns\n2. Review service processes\n3. Implement targeted improvements",
	},
	{
		Label:    "Positive",
		Response: "Thank you for your positive feedback! We're glad you had a good experience and appreciate you taking the time to share it.",
		Actions:  "1. Send a thank-you message\n2. Maintain current service quality\n3. Consider requesting a testimonial",
	},
	{
		Label:    "Exceptional",
		Response: "Thank you for your wonderful feedback! We're delighted to hear about your great experience. Your satisfaction is our top priority!",
		Actions:  "1. No corrective action needed\n2. Send a thank-you message\n3. Consider requesting a public testimonial",
	},
}

// Fallback generates deterministic, rule-based enrichment text. The zero
// value is ready to use. Every method returns a non-empty string for every
// rating 1..5; out-of-range ratings are clamped so the generator can never
// fail even on unvalidated input.
type Fallback struct{}

// clampRating coerces a rating into 1..5.
func clampRating(rating int) int {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}

// UserResponse returns the canned reviewer-facing reply for the rating tier.
func (Fallback) UserResponse(rating int, _ string) string {
	return tiers[clampRating(rating)].Response
}

// Summary returns a one-line characterization combining the rating tier and
// a truncated excerpt of the review text. Empty review text yields a fixed
// "no additional comments" line.
func (Fallback) Summary(rating int, reviewText string) string {
	t := tiers[clampRating(rating)]
	text := strings.TrimSpace(reviewText)
	if text == "" {
		return fmt.Sprintf("%s %d-star review with no additional comments.", t.Label, clampRating(rating))
	}
	return fmt.Sprintf("%s %d-star review: %q", t.Label, clampRating(rating), excerpt(text, summaryExcerptRunes))
}

// RecommendedActions returns the rating-tier action list.
func (Fallback) RecommendedActions(rating int, _ string) string {
	return tiers[clampRating(rating)].Actions
}

// ReviewAnalysis assembles all three enrichment fields at once.
func (f Fallback) ReviewAnalysis(rating int, reviewText string) Analysis {
	return Analysis{
		UserResponse:       f.UserResponse(rating, reviewText),
		Summary:            f.Summary(rating, reviewText),
		RecommendedActions: f.RecommendedActions(rating, reviewText),
	}
}

// Insights renders a templated narrative from the aggregate stats: overall
// insight, strengths, weaknesses, and recommendations, in that order. The
// supplied totals and average are quoted directly so admins see the same
// numbers the analytics endpoint reports.
func (Fallback) Insights(_ []ReviewSample, stats Stats) string {
	var (
		positive = stats.RatingCounts[4] + stats.RatingCounts[5]
		neutral  = stats.RatingCounts[3]
		negative = stats.RatingCounts[1] + stats.RatingCounts[2]
	)

	var b strings.Builder
	fmt.Fprintf(&b, "Overall insight: based on %d reviews with an average rating of %.1f out of 5, ",
		stats.TotalReviews, stats.AverageRating)
	switch {
	case stats.AverageRating >= 4:
		b.WriteString("customer satisfaction is strong.")
	case stats.AverageRating >= 3:
		b.WriteString("customer satisfaction is mixed.")
	default:
		b.WriteString("customer satisfaction needs urgent attention.")
	}

	b.WriteString("\n\nStrengths: ")
	if positive > 0 {
		fmt.Fprintf(&b, "%d customers left positive (4-5 star) reviews, indicating the core experience works well for them.", positive)
	} else {
		b.WriteString("no positive reviews recorded yet.")
	}

	b.WriteString("\n\nWeaknesses: ")
	if negative > 0 {
		fmt.Fprintf(&b, "%d customers left negative (1-2 star) reviews; recurring complaints in these should be reviewed first.", negative)
	} else {
		b.WriteString("no negative reviews recorded.")
	}

	b.WriteString("\n\nRecommendations: ")
	switch {
	case negative > positive:
		b.WriteString("prioritize root-cause analysis of negative feedback and follow up with affected customers.")
	case neutral >= positive:
		b.WriteString("dig into neutral feedback to find what prevents a higher rating, and close the loop with those customers.")
	default:
		b.WriteString("maintain current service quality and consider asking satisfied customers for testimonials.")
	}

	return b.String()
}

// excerpt truncates s to at most n runes, appending an ellipsis when cut.
func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
