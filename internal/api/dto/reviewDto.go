package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

// CreateReviewDTO for creating a review; author and title come from the
// verified identity and the path, never from the payload.
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required,min=1,max=10000"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewDTO is a partial update; nil fields stay untouched.
type UpdateReviewDTO struct {
	Text  *string `json:"text" binding:"omitempty,min=1,max=10000"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

// ReviewResponse for returning review information
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
	if review.Author.Username != nil {
		resp.Author = *review.Author.Username
	}
	return resp
}
