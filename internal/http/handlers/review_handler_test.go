package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-feedback-backend/internal/ai"
	"github.com/tbourn/go-feedback-backend/internal/domain"
	"github.com/tbourn/go-feedback-backend/internal/http/middleware"
	"github.com/tbourn/go-feedback-backend/internal/repo"
	"github.com/tbourn/go-feedback-backend/internal/services"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Review{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// stubEnricher returns fixed enrichment without any external calls.
type stubEnricher struct{}

func (stubEnricher) ReviewAnalysis(_ context.Context, _ int, _ string) ai.Analysis {
	return ai.Analysis{UserResponse: "thanks", Summary: "sum", RecommendedActions: "1. act"}
}
func (stubEnricher) Insights(_ context.Context, _ []ai.ReviewSample, _ ai.Stats) string {
	return "narrative"
}

// failingReviewService drives the 500 branch of SubmitReview.
type failingReviewService struct{ err error }

func (f failingReviewService) Submit(context.Context, int, string) (*domain.Review, error) {
	return nil, f.err
}
func (f failingReviewService) ListPage(context.Context, int, int) ([]domain.Review, int64, error) {
	return nil, 0, f.err
}
func (f failingReviewService) Get(context.Context, uint) (*domain.Review, error) {
	return nil, f.err
}

// newReviewRouter wires SubmitReview with the idempotency middleware, the
// way the production router does.
func newReviewRouter(t *testing.T, db *gorm.DB, svc ReviewService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{},
		func(ctx context.Context, userID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))
	h := New(svc, &services.AnalyticsService{DB: db}, &services.InsightsService{DB: db, AI: stubAdapterForDB()})
	r.POST("/reviews", h.SubmitReview)
	return r
}

// stubAdapterForDB satisfies the handler constructor; insights are not under
// test in this file.
func stubAdapterForDB() *ai.Adapter { return ai.NewAdapter(nil) }

func postJSON(t *testing.T, r *gin.Engine, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitReview_Created(t *testing.T) {
	db := newTestDB(t)
	svc := &services.ReviewService{DB: db, AI: stubEnricher{}}
	r := newReviewRouter(t, db, svc)

	w := postJSON(t, r, "/reviews", `{"rating":5,"review_text":"Great service"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	var resp SubmitReviewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID == 0 || resp.Rating != 5 || resp.ReviewText != "Great service" || resp.UserResponse != "thanks" {
		t.Fatalf("response mismatch: %+v", resp)
	}
	if resp.CreatedAt.IsZero() {
		t.Fatalf("created_at missing")
	}

	// public shape must not leak internal enrichment fields
	var raw map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &raw)
	if _, leaked := raw["ai_summary"]; leaked {
		t.Fatalf("ai_summary must not appear in the public response: %v", raw)
	}
	if _, leaked := raw["recommended_actions"]; leaked {
		t.Fatalf("recommended_actions must not appear in the public response: %v", raw)
	}
}

func TestSubmitReview_BadRequests(t *testing.T) {
	db := newTestDB(t)
	svc := &services.ReviewService{DB: db, AI: stubEnricher{}, MaxReviewRunes: 10}
	r := newReviewRouter(t, db, svc)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"rating": }`},
		{"rating zero", `{"rating":0,"review_text":"x"}`},
		{"rating six", `{"rating":6,"review_text":"x"}`},
		{"rating missing", `{"review_text":"x"}`},
		{"text too long", `{"rating":4,"review_text":"01234567890"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, r, "/reviews", tc.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid error json: %v", err)
			}
			if resp.Code != ErrCodeBadRequest {
				t.Fatalf("expected bad_request code, got %q", resp.Code)
			}
		})
	}

	// no rows persisted by any rejected submission
	var n int64
	db.Model(&domain.Review{}).Count(&n)
	if n != 0 {
		t.Fatalf("rejected submissions persisted %d rows", n)
	}
}

func TestSubmitReview_InternalError(t *testing.T) {
	db := newTestDB(t)
	r := newReviewRouter(t, db, failingReviewService{err: errors.New("db down")})

	w := postJSON(t, r, "/reviews", `{"rating":3,"review_text":"x"}`, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error json: %v", err)
	}
	if resp.Code != ErrCodeSubmitFailed {
		t.Fatalf("expected submit_failed, got %q", resp.Code)
	}
}

func TestSubmitReview_IdempotentReplay(t *testing.T) {
	db := newTestDB(t)
	svc := &services.ReviewService{DB: db, AI: stubEnricher{}}
	r := newReviewRouter(t, db, svc)

	hdr := map[string]string{
		"X-User-ID":                     "u1",
		middleware.HeaderIdempotencyKey: "retry-key-1",
	}

	// first submission creates
	w := postJSON(t, r, "/reviews", `{"rating":4,"review_text":"once"}`, hdr)
	if w.Code != http.StatusCreated {
		t.Fatalf("first expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	var first SubmitReviewResponse
	_ = json.Unmarshal(w.Body.Bytes(), &first)

	// identical retry replays the original
	w = postJSON(t, r, "/reviews", `{"rating":4,"review_text":"once"}`, hdr)
	if w.Code != http.StatusOK {
		t.Fatalf("replay expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if w.Header().Get("Idempotency-Replayed") != "true" {
		t.Fatalf("expected Idempotency-Replayed header")
	}
	var second SubmitReviewResponse
	_ = json.Unmarshal(w.Body.Bytes(), &second)
	if second.ID != first.ID {
		t.Fatalf("replay must return the original review: %d vs %d", second.ID, first.ID)
	}

	// exactly one review stored
	var n int64
	db.Model(&domain.Review{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected a single stored review, got %d", n)
	}

	// a different user with the same key creates a fresh review
	hdr["X-User-ID"] = "u2"
	w = postJSON(t, r, "/reviews", `{"rating":4,"review_text":"twice"}`, hdr)
	if w.Code != http.StatusCreated {
		t.Fatalf("different user expected 201, got %d", w.Code)
	}
	db.Model(&domain.Review{}).Count(&n)
	if n != 2 {
		t.Fatalf("expected two stored reviews, got %d", n)
	}
}

func Test_userID_FallbackChain(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if got := userID(c); got != "anonymous" {
		t.Fatalf("expected anonymous, got %q", got)
	}
	c.Request.Header.Set("X-User-ID", " hdr-user ")
	if got := userID(c); got != "hdr-user" {
		t.Fatalf("expected trimmed header value, got %q", got)
	}
	c.Set("userID", "ctx-user")
	if got := userID(c); got != "ctx-user" {
		t.Fatalf("expected context value, got %q", got)
	}
}
