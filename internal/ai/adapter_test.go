package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// stubCompleter scripts the external capability for adapter tests.
type stubCompleter struct {
	out   string
	err   error
	calls int
	// lastSystem/lastUser capture the final exchange for prompt assertions.
	lastSystem string
	lastUser   string
}

func (s *stubCompleter) Complete(_ context.Context, system, user string) (string, error) {
	s.calls++
	s.lastSystem = system
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

func TestAdapter_NilLLM_FallbackOnly(t *testing.T) {
	a := NewAdapter(nil)

	got := a.ReviewAnalysis(context.Background(), 5, "Excellent")
	want := Fallback{}.ReviewAnalysis(5, "Excellent")
	if got != want {
		t.Fatalf("nil LLM should produce fallback output: got %+v want %+v", got, want)
	}
}

func TestAdapter_ErrorFallsBack_SingleAttemptPerTask(t *testing.T) {
	stub := &stubCompleter{err: errors.New("boom")}
	a := NewAdapter(stub)

	got := a.ReviewAnalysis(context.Background(), 2, "Slow delivery")
	want := Fallback{}.ReviewAnalysis(2, "Slow delivery")
	if got != want {
		t.Fatalf("failed completions should degrade to fallback: got %+v want %+v", got, want)
	}
	// one attempt per task, no retries: user_response + summary + actions
	if stub.calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", stub.calls)
	}
}

func TestAdapter_SuccessUsesGeneratedText(t *testing.T) {
	stub := &stubCompleter{out: "generated text"}
	a := NewAdapter(stub)

	got := a.ReviewAnalysis(context.Background(), 4, "Good food")
	if got.UserResponse != "generated text" || got.Summary != "generated text" || got.RecommendedActions != "generated text" {
		t.Fatalf("expected generated text in all fields: %+v", got)
	}
	if stub.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", stub.calls)
	}
}

func TestAdapter_EmptyText_SkipsSummaryCall(t *testing.T) {
	stub := &stubCompleter{out: "generated"}
	a := NewAdapter(stub)

	got := a.ReviewAnalysis(context.Background(), 3, "   ")
	// summary is templated, the other two fields are generated
	if got.Summary != (Fallback{}).Summary(3, "") {
		t.Fatalf("empty text should use the templated summary: %q", got.Summary)
	}
	if got.UserResponse != "generated" || got.RecommendedActions != "generated" {
		t.Fatalf("other fields should still be generated: %+v", got)
	}
	if stub.calls != 2 {
		t.Fatalf("summary call should be skipped for empty text, got %d calls", stub.calls)
	}
}

func TestAdapter_Insights_PromptMentionsStatsAndSamples(t *testing.T) {
	stub := &stubCompleter{out: "narrative"}
	a := NewAdapter(stub)

	samples := []ReviewSample{
		{Rating: 5, Text: "Amazing coffee"},
		{Rating: 1, Text: "Cold and late"},
		{Rating: 3, Text: "It was fine"}, // mid ratings are not sampled into either bucket
	}
	stats := Stats{TotalReviews: 3, AverageRating: 3.0, RatingCounts: map[int]int64{1: 1, 3: 1, 5: 1}}

	if got := a.Insights(context.Background(), samples, stats); got != "narrative" {
		t.Fatalf("expected generated narrative, got %q", got)
	}
	if !strings.Contains(stub.lastUser, "Total Reviews: 3") {
		t.Fatalf("prompt should include totals: %q", stub.lastUser)
	}
	if !strings.Contains(stub.lastUser, "Amazing coffee") || !strings.Contains(stub.lastUser, "Cold and late") {
		t.Fatalf("prompt should include high/low samples: %q", stub.lastUser)
	}
	if strings.Contains(stub.lastUser, "It was fine") {
		t.Fatalf("3-star sample should not appear in either bucket: %q", stub.lastUser)
	}
	if !strings.Contains(stub.lastUser, "- 5 stars: 1") {
		t.Fatalf("prompt should include the histogram: %q", stub.lastUser)
	}
}

func TestAdapter_Insights_ErrorFallsBack(t *testing.T) {
	stub := &stubCompleter{err: errors.New("rate limited")}
	a := NewAdapter(stub)

	stats := Stats{TotalReviews: 1, AverageRating: 5.0, RatingCounts: map[int]int64{5: 1}}
	got := a.Insights(context.Background(), nil, stats)
	want := Fallback{}.Insights(nil, stats)
	if got != want {
		t.Fatalf("insights should degrade to templated narrative: got %q want %q", got, want)
	}
	if stub.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", stub.calls)
	}
}

func Test_insightsPrompt_ZeroTotal_NoDivideByZero(t *testing.T) {
	got := insightsPrompt(nil, Stats{TotalReviews: 0, RatingCounts: map[int]int64{}})
	if !strings.Contains(got, "- 5 stars: 0 (0.0%)") {
		t.Fatalf("zero totals should render 0.0%% buckets: %q", got)
	}
}

func Test_orPlaceholder(t *testing.T) {
	if orPlaceholder("") != "No text provided" {
		t.Fatalf("empty text should be replaced")
	}
	if orPlaceholder("hi") != "hi" {
		t.Fatalf("non-empty text should pass through")
	}
}

func TestNewLLMClient_TimeoutDefault(t *testing.T) {
	c := NewLLMClient("https://example.test/v1", "key", "model-x", 0)
	if c.timeout != 10*time.Second {
		t.Fatalf("non-positive timeout should default to 10s, got %v", c.timeout)
	}
	c = NewLLMClient("https://example.test/v1", "", "model-x", 3*time.Second)
	if c.timeout != 3*time.Second {
		t.Fatalf("explicit timeout not kept: %v", c.timeout)
	}
}
