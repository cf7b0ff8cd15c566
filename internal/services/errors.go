// Package services defines the business logic for review submission,
// analytics, and insights. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer; mapping
// them to user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

// Validation errors. These are the only error class (besides raw
// persistence failures) a caller of the service layer should expect:
// AI-capability failures are absorbed by the adapter and never reach here.
var (
	// ErrInvalidRating is returned when a submitted rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrReviewTooLong is returned when the submitted review text exceeds
	// the maximum configured length.
	ErrReviewTooLong = errors.New("review text too long")
)
