// Package domain defines the persistence models for the feedback system.
// These types are mapped with GORM and form the core data layer of the
// application.
package domain

import "time"

// Review represents one customer submission: a star rating, optional free
// text, and the three AI-generated enrichment fields produced exactly once
// at creation time. Rows are append-only; no update or delete path exists.
//
// Fields:
//   - ID: monotonically assigned integer primary key.
//   - Rating: star rating, 1..5 inclusive (enforced by DB constraint).
//   - ReviewText: customer's free text, may be empty, capped at 5000 chars.
//   - UserResponse: generated reply shown back to the reviewer.
//   - AISummary: generated one/two-sentence characterization (admin only).
//   - RecommendedActions: generated action list (admin only).
//   - CreatedAt: timestamp assigned at creation, immutable.
type Review struct {
	ID                 uint      `json:"id"                  gorm:"primaryKey;autoIncrement"`
	Rating             int       `json:"rating"              gorm:"not null;index;check:rating BETWEEN 1 AND 5"`
	ReviewText         string    `json:"review_text"         gorm:"type:text;not null"`
	UserResponse       string    `json:"user_response"       gorm:"type:text;not null"`
	AISummary          string    `json:"ai_summary"          gorm:"type:text;not null"`
	RecommendedActions string    `json:"recommended_actions" gorm:"type:text;not null"`
	CreatedAt          time.Time `json:"created_at"          gorm:"index"`
}

// TableName returns the database table name for Review.
func (Review) TableName() string { return "reviews" }
