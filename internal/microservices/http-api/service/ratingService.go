package service

import (
	"context"
	"fmt"
	"strings"

	"giphyexplorer/internal/microservices/http-api/apperror"
	"giphyexplorer/internal/microservices/http-api/dto"
	"giphyexplorer/internal/microservices/http-api/models"
	"giphyexplorer/internal/microservices/http-api/repository"
)

const (
	minRating = 1
	maxRating = 5
)

type RatingService interface {
	Submit(ctx context.Context, userID, gifID string, value int) (*dto.RatingResponse, bool, error)
	Update(ctx context.Context, userID, gifID string, value int) (*dto.RatingResponse, error)
	Delete(ctx context.Context, userID, gifID string) error
	ListForGif(ctx context.Context, gifID string) ([]dto.RatingResponse, error)
	Summary(ctx context.Context, gifID string) (*dto.RatingSummaryResponse, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
}

func NewRatingService(ratingRepo repository.RatingRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo}
}

func validateRating(gifID string, value int) (string, error) {
	gifID = strings.TrimSpace(gifID)
	if gifID == "" {
		return "", apperror.NewValidation("GIF ID is required")
	}
	if value < minRating || value > maxRating {
		return "", apperror.NewValidation(fmt.Sprintf("Rating must be between %d and %d", minRating, maxRating))
	}
	return gifID, nil
}

// Submit records the caller's rating for a GIF, overwriting any earlier one.
// The bool reports whether a new rating was created.
func (s *ratingService) Submit(ctx context.Context, userID, gifID string, value int) (*dto.RatingResponse, bool, error) {
	gifID, err := validateRating(gifID, value)
	if err != nil {
		return nil, false, err
	}

	// Check if rating already exists
	existing, err := s.ratingRepo.GetByUserAndGif(ctx, userID, gifID)
	if err != nil && !repository.IsNotFound(err) {
		return nil, false, fmt.Errorf("lookup rating: %w", err)
	}

	if existing != nil {
		if err := CheckOwnership(existing.UserID, userID, "update this rating"); err != nil {
			return nil, false, err
		}
		existing.Rating = value
		err := s.ratingRepo.UpdateValue(ctx, existing)
		if err == nil {
			return dto.FromModelToRatingResponse(existing), false, nil
		}
		// deleted in between, fall through to the upsert
		if !repository.IsNotFound(err) {
			return nil, false, fmt.Errorf("update rating: %w", err)
		}
	}

	// Upsert keeps a single row per (user, gif) even under concurrent submits
	rating := &models.Rating{UserID: userID, GifID: gifID, Rating: value}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, false, fmt.Errorf("upsert rating: %w", err)
	}

	// Reload with user data
	stored, err := s.ratingRepo.GetByUserAndGif(ctx, userID, gifID)
	if err != nil {
		return nil, false, fmt.Errorf("reload rating: %w", err)
	}
	return dto.FromModelToRatingResponse(stored), true, nil
}

// Update changes the value of the caller's existing rating.
func (s *ratingService) Update(ctx context.Context, userID, gifID string, value int) (*dto.RatingResponse, error) {
	gifID, err := validateRating(gifID, value)
	if err != nil {
		return nil, err
	}

	existing, err := s.ratingRepo.GetByUserAndGif(ctx, userID, gifID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NewNotFound("Rating not found")
		}
		return nil, fmt.Errorf("lookup rating: %w", err)
	}
	if err := CheckOwnership(existing.UserID, userID, "update this rating"); err != nil {
		return nil, err
	}

	existing.Rating = value
	if err := s.ratingRepo.UpdateValue(ctx, existing); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NewNotFound("Rating not found")
		}
		return nil, fmt.Errorf("update rating: %w", err)
	}
	return dto.FromModelToRatingResponse(existing), nil
}

// Delete removes the caller's rating for a GIF.
func (s *ratingService) Delete(ctx context.Context, userID, gifID string) error {
	if err := s.ratingRepo.Delete(ctx, userID, strings.TrimSpace(gifID)); err != nil {
		if repository.IsNotFound(err) {
			return apperror.NewNotFound("Rating not found")
		}
		return fmt.Errorf("delete rating: %w", err)
	}
	return nil
}

// ListForGif returns every rating of a GIF with its author, oldest first.
func (s *ratingService) ListForGif(ctx context.Context, gifID string) ([]dto.RatingResponse, error) {
	ratings, err := s.ratingRepo.ListByGif(ctx, strings.TrimSpace(gifID))
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	responses := make([]dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		responses = append(responses, *dto.FromModelToRatingResponse(&ratings[i]))
	}
	return responses, nil
}

// Summary returns the average and count of a GIF's ratings. No ratings means zero for both.
func (s *ratingService) Summary(ctx context.Context, gifID string) (*dto.RatingSummaryResponse, error) {
	gifID = strings.TrimSpace(gifID)
	summary, err := s.ratingRepo.Summary(ctx, gifID)
	if err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}
	return &dto.RatingSummaryResponse{
		GifID:   gifID,
		Average: summary.Average,
		Count:   summary.Count,
	}, nil
}
