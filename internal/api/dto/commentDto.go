package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

// CreateCommentDTO for creating a comment
type CreateCommentDTO struct {
	Text string `json:"text" binding:"required,min=1,max=5000"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Text string `json:"text" binding:"required,min=1,max=5000"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		PubDate: comment.PubDate,
	}
	if comment.Author.Username != nil {
		resp.Author = *comment.Author.Username
	}
	return resp
}
