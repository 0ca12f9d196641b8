package dto

import (
	"time"

	"giphyexplorer/internal/microservices/http-api/models"
)

// CreateCommentDTO for creating a comment
type CreateCommentDTO struct {
	GifID   string `json:"gifId" binding:"required"`
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID        int64          `json:"id"`
	GifID     string         `json:"gifId"`
	UserID    string         `json:"userId"`
	User      AuthorResponse `json:"user"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		GifID:     comment.GifID,
		UserID:    comment.UserID,
		User:      fromModelToAuthor(comment.UserID, comment.User),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
