// Admin HTTP handlers.
//
// This file exposes the admin read paths:
//   - GET /admin/reviews      (full records incl. AI fields, skip/limit, ETag support)
//   - GET /admin/analytics    (aggregate snapshot)
//   - GET /admin/ai-insights  (AI narrative insights)
//
// All three are read-only and recomputed per request; the admin dashboard
// polls them.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-feedback-backend/internal/domain"
	"github.com/tbourn/go-feedback-backend/internal/repo"
	"github.com/tbourn/go-feedback-backend/internal/services"
	"github.com/tbourn/go-feedback-backend/internal/utils"
)

// ListReviewsResponse wraps a page of full review records with paging echo
// and the total stored count.
type ListReviewsResponse struct {
	Reviews []domain.Review `json:"reviews"`
	Total   int64           `json:"total"`
	Skip    int             `json:"skip"`
	Limit   int             `json:"limit"`
}

// clampSkipLimit parses and bounds the skip/limit query params, returning
// (skip, limit) with defaults 0 and 100 and a hard limit cap of 500.
func clampSkipLimit(c *gin.Context) (skip, limit int) {
	const (
		defaultLimit = 100
		maxLimit     = 500
	)
	skip = utils.AtoiDefault(c.Query("skip"), 0)
	if skip < 0 {
		skip = 0
	}
	limit = utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return
}

// ListReviews godoc
// @ID          listReviews
// @Summary     List reviews (admin)
// @Description Returns stored reviews newest first, including AI summary and recommended actions.
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Tags        Admin
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"reviews:12:1757600000\")
// @Param       skip           query   int     false "Rows to skip"                minimum(0) default(0)
// @Param       limit          query   int     false "Max rows to return"          minimum(1) maximum(500) default(100)
//
// @Success     200  {object} handlers.ListReviewsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /admin/reviews [get]
func (h *Handlers) ListReviews(c *gin.Context) {
	ctx := c.Request.Context()
	skip, limit := clampSkipLimit(c)

	// ETag pre-check (best effort). Reviews are append-only, so the
	// (count, latest created_at) pair identifies the result set.
	var db *gorm.DB
	if svc, okSvc := h.reviewSvc.(*services.ReviewService); okSvc {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.ReviewsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"reviews:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.reviewSvc.ListPage(ctx, skip, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, ListReviewsResponse{
		Reviews: items,
		Total:   total,
		Skip:    skip,
		Limit:   limit,
	})
}

// Analytics godoc
// @ID          analytics
// @Summary     Review analytics (admin)
// @Description Returns total count, average rating, the 1-5 histogram, and the sentiment split.
// @Tags        Admin
// @Produce     json
//
// @Success     200  {object} services.AnalyticsSnapshot
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /admin/analytics [get]
func (h *Handlers) Analytics(c *gin.Context) {
	snap, err := h.analyticsSvc.Snapshot(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeAnalyticsFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, snap)
}

// Insights godoc
// @ID          insights
// @Summary     AI insights (admin)
// @Description Returns a narrative insights block synthesized over the current review set.
// @Tags        Admin
// @Produce     json
//
// @Success     200  {object} services.InsightsResult
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /admin/ai-insights [get]
func (h *Handlers) Insights(c *gin.Context) {
	res, err := h.insightsSvc.Synthesize(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInsightsFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, res)
}
