// Package ai – capability adapter.
//
// Adapter is the only AI entry point the rest of the application uses. It
// issues one external attempt per enrichment task and converts every
// failure — missing configuration, timeout, transport error, empty or
// malformed content — into deterministic fallback text. Its methods never
// return an error: enrichment degrades in quality, never in availability.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// summaryPromptRunes caps how much review text is sent in the summary
// prompt; very long reviews are truncated for the API, not for storage.
const summaryPromptRunes = 2000

// Prompts for the per-review enrichment tasks and the aggregate insights
// task. Plain text is requested throughout because the generated fields are
// rendered verbatim in non-markdown contexts.
const (
	userResponseSystemPrompt = "You are a friendly customer service assistant. Write a personalized, " +
		"empathetic reply to the customer's review, addressed to them directly. Keep it to 2-3 sentences " +
		"and acknowledge their rating and feedback appropriately."

	summarySystemPrompt = "You summarize customer reviews for an internal dashboard. " +
		"Provide a concise summary (1-2 sentences) highlighting the key points and sentiment."

	actionsSystemPrompt = "You recommend actions based on customer feedback. Provide 2-4 specific, " +
		"actionable recommendations for the business as a simple numbered list. Plain text only, no markdown."

	insightsSystemPrompt = "You are a business analytics assistant. Analyze customer feedback data and " +
		"provide actionable insights. Be specific and concise, and focus on what the business should do. " +
		"Plain text only, no markdown."
)

// Adapter selects between the external capability and the deterministic
// fallback. The zero value (no LLM) is valid and runs in fallback-only
// mode; absence of configuration is not an error.
type Adapter struct {
	// LLM is the external capability, nil when none is configured.
	LLM Completer

	fb Fallback
}

// NewAdapter builds an adapter around the given completer; pass nil for
// fallback-only mode.
func NewAdapter(llm Completer) *Adapter {
	return &Adapter{LLM: llm}
}

// complete runs one external attempt and falls back on any failure. The
// failure is logged, never surfaced.
func (a *Adapter) complete(ctx context.Context, task, system, user string, fallback func() string) string {
	if a.LLM == nil {
		return fallback()
	}
	out, err := a.LLM.Complete(ctx, system, user)
	if err != nil {
		log.Warn().Err(err).Str("task", task).Msg("ai completion failed, using fallback")
		return fallback()
	}
	return out
}

// ReviewAnalysis produces the three enrichment fields for one review. Each
// task is attempted independently, so a single failed call degrades only
// its own field. All three results are guaranteed non-empty.
func (a *Adapter) ReviewAnalysis(ctx context.Context, rating int, reviewText string) Analysis {
	reviewText = strings.TrimSpace(reviewText)

	userPrompt := fmt.Sprintf("Rating: %d/5. Review: %s", rating, reviewText)
	if reviewText == "" {
		userPrompt = fmt.Sprintf("Rating: %d/5. No written review provided.", rating)
	}

	resp := a.complete(ctx, "user_response", userResponseSystemPrompt, userPrompt,
		func() string { return a.fb.UserResponse(rating, reviewText) })

	// An empty review has nothing to summarize; skip the external call.
	var summary string
	if reviewText == "" {
		summary = a.fb.Summary(rating, reviewText)
	} else {
		summary = a.complete(ctx, "summary", summarySystemPrompt,
			"Summarize this review: "+excerpt(reviewText, summaryPromptRunes),
			func() string { return a.fb.Summary(rating, reviewText) })
	}

	actionsPrompt := fmt.Sprintf("Rating: %d/5\nReview: %s\nSummary: %s\n\nWhat actions should the business take?",
		rating, orPlaceholder(reviewText), summary)
	actions := a.complete(ctx, "recommended_actions", actionsSystemPrompt, actionsPrompt,
		func() string { return a.fb.RecommendedActions(rating, reviewText) })

	return Analysis{UserResponse: resp, Summary: summary, RecommendedActions: actions}
}

// Insights produces the aggregate narrative for the admin dashboard from a
// bounded review sample and the current stats. The external prompt and the
// templated fallback both reference the supplied totals.
func (a *Adapter) Insights(ctx context.Context, samples []ReviewSample, stats Stats) string {
	return a.complete(ctx, "insights", insightsSystemPrompt, insightsPrompt(samples, stats),
		func() string { return a.fb.Insights(samples, stats) })
}

// insightsPrompt renders the analysis context: totals, the 1..5 histogram
// with percentages, and excerpts of the sampled high/low reviews, followed
// by the four questions the narrative must answer.
func insightsPrompt(samples []ReviewSample, stats Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this customer feedback data:\n\nTotal Reviews: %d\nAverage Rating: %.1f/5\nRating Distribution:\n",
		stats.TotalReviews, stats.AverageRating)
	for r := 5; r >= 1; r-- {
		n := stats.RatingCounts[r]
		pct := 0.0
		if stats.TotalReviews > 0 {
			pct = float64(n) / float64(stats.TotalReviews) * 100
		}
		fmt.Fprintf(&b, "- %d stars: %d (%.1f%%)\n", r, n, pct)
	}

	var high, low []string
	for _, s := range samples {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		line := "- " + excerpt(strings.TrimSpace(s.Text), 100)
		if s.Rating >= 4 {
			high = append(high, line)
		} else if s.Rating <= 2 {
			low = append(low, line)
		}
	}
	if len(high) > 0 {
		b.WriteString("\nSample High-Rated Reviews:\n" + strings.Join(high, "\n") + "\n")
	}
	if len(low) > 0 {
		b.WriteString("\nSample Low-Rated Reviews:\n" + strings.Join(low, "\n") + "\n")
	}

	b.WriteString("\nBased on this data, provide:\n" +
		"1. Overall insights about customer satisfaction\n" +
		"2. Key strengths (what customers love)\n" +
		"3. Key weaknesses (what needs improvement)\n" +
		"4. Strategic recommendations for the business")
	return b.String()
}

// orPlaceholder substitutes a marker for empty review text inside prompts.
func orPlaceholder(text string) string {
	if text == "" {
		return "No text provided"
	}
	return text
}
