package dto

import (
	"time"

	"giphyexplorer/internal/microservices/http-api/models"
)

// CreateRatingDTO for creating or updating a rating through POST /api/ratings
type CreateRatingDTO struct {
	GifID  string `json:"gifId" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
}

// UpdateRatingDTO for PUT /api/ratings/:gifId, the gif comes from the path
type UpdateRatingDTO struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// RatingResponse for returning rating information
type RatingResponse struct {
	ID        int64          `json:"id"`
	GifID     string         `json:"gifId"`
	UserID    string         `json:"userId"`
	User      AuthorResponse `json:"user"`
	Rating    int            `json:"rating"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.Rating) *RatingResponse {
	return &RatingResponse{
		ID:        rating.ID,
		GifID:     rating.GifID,
		UserID:    rating.UserID,
		User:      fromModelToAuthor(rating.UserID, rating.User),
		Rating:    rating.Rating,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

// RatingSummaryResponse for GET /api/ratings/:gifId/summary
type RatingSummaryResponse struct {
	GifID   string  `json:"gifId"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
