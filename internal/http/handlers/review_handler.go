// Review HTTP handlers.
//
// This file exposes the public review endpoint:
//   - POST /reviews   (submit a review, returns the AI/user-facing reply)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses. The public response
// deliberately withholds the internal enrichment fields (summary and
// recommended actions); those appear only on the admin endpoints.
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// submission exists for (user, key), the handler returns the originally
// created review and sets `Idempotency-Replayed: true`.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-feedback-backend/internal/domain"
	"github.com/tbourn/go-feedback-backend/internal/http/middleware"
	"github.com/tbourn/go-feedback-backend/internal/repo"
	"github.com/tbourn/go-feedback-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ReviewService defines review submission and retrieval operations consumed
// by HTTP handlers. Implementations should be safe for concurrent use and
// must honor the provided context for cancellation and timeouts.
type ReviewService interface {
	// Submit validates, enriches, and persists a new review.
	Submit(ctx context.Context, rating int, reviewText string) (*domain.Review, error)
	// ListPage returns up to limit stored reviews (newest first) after
	// skipping skip rows, plus the total count.
	ListPage(ctx context.Context, skip, limit int) ([]domain.Review, int64, error)
	// Get fetches a single review by ID (idempotent-replay path).
	Get(ctx context.Context, id uint) (*domain.Review, error)
}

// AnalyticsService computes the aggregate analytics snapshot.
type AnalyticsService interface {
	Snapshot(ctx context.Context) (services.AnalyticsSnapshot, error)
}

// InsightsService synthesizes the AI insights narrative.
type InsightsService interface {
	Synthesize(ctx context.Context) (services.InsightsResult, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for review submission and the admin
// read paths. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	reviewSvc    ReviewService
	analyticsSvc AnalyticsService
	insightsSvc  InsightsService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(reviewSvc ReviewService, analyticsSvc AnalyticsService, insightsSvc InsightsService) *Handlers {
	return &Handlers{reviewSvc: reviewSvc, analyticsSvc: analyticsSvc, insightsSvc: insightsSvc}
}

// userID extracts the caller identity from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "anonymous". Identity only scopes rate limiting and
// idempotency keys; there is no authentication model.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "anonymous"
}

//
// DTOs
//

// SubmitReviewRequest is the JSON payload for submitting a review.
type SubmitReviewRequest struct {
	// Rating is the star rating, 1..5.
	Rating int `json:"rating" example:"5"`
	// ReviewText is the optional free-text review, at most 5000 characters.
	ReviewText string `json:"review_text" example:"Great service! Very satisfied with the experience."`
}

// SubmitReviewResponse is the public shape of a created review. The
// internal enrichment fields (summary, recommended actions) are withheld;
// admins read them via /admin/reviews.
type SubmitReviewResponse struct {
	ID           uint      `json:"id" example:"1"`
	Rating       int       `json:"rating" example:"5"`
	ReviewText   string    `json:"review_text" example:"Great service!"`
	UserResponse string    `json:"user_response" example:"Thank you for your wonderful feedback!"`
	CreatedAt    time.Time `json:"created_at"`
}

// publicReview projects a stored review onto the public response shape.
func publicReview(r *domain.Review) SubmitReviewResponse {
	return SubmitReviewResponse{
		ID:           r.ID,
		Rating:       r.Rating,
		ReviewText:   r.ReviewText,
		UserResponse: r.UserResponse,
		CreatedAt:    r.CreatedAt,
	}
}

//
// Handlers
//

// SubmitReview godoc
// @ID          submitReview
// @Summary     Submit a review
// @Description Submits a star rating with optional text and returns the generated customer-facing reply.
// @Description Supports idempotency via the Idempotency-Key header (same key → same review).
// @Tags        Reviews
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "Caller identity (scopes idempotency)"  example(user123)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.SubmitReviewRequest  true  "Review payload"
//
// @Success     201  {object}  handlers.SubmitReviewResponse  "Created review (public shape)"
// @Success     200  {object}  handlers.SubmitReviewResponse  "Replayed prior submission"
// @Failure     400  {object}  handlers.ErrorResponse         "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse         "Internal error"
// @Router      /reviews [post]
func (h *Handlers) SubmitReview(c *gin.Context) {
	ctx := c.Request.Context()

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	currentUser := userID(c)

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" {
		if svc, okSvc := h.reviewSvc.(*services.ReviewService); okSvc && svc.DB != nil {
			if rec, err := repo.GetIdempotency(ctx, svc.DB, currentUser, idemKey, time.Now().UTC()); err == nil && rec != nil {
				if prev, err2 := h.reviewSvc.Get(ctx, rec.ReviewID); err2 == nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, http.StatusOK, publicReview(prev))
					return
				}
			}
		}
	}

	r, err := h.reviewSvc.Submit(ctx, req.Rating, strings.TrimSpace(req.ReviewText))
	if err != nil {
		switch err {
		case services.ErrInvalidRating, services.ErrReviewTooLong:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSubmitFailed, err.Error())
		}
		return
	}

	// Idempotency (store path) – best effort; a failed record write must not
	// fail the successful submission.
	if idemKey != "" {
		if svc, okSvc := h.reviewSvc.(*services.ReviewService); okSvc && svc.DB != nil {
			_, _ = repo.CreateIdempotency(ctx, svc.DB, currentUser, idemKey, r.ID, http.StatusCreated, 24*time.Hour)
		}
	}

	ok(c, http.StatusCreated, publicReview(r))
}
