package repository

import (
	"context"
	"time"

	"giphyexplorer/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	UpdateValue(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, userID, gifID string) error
	GetByUserAndGif(ctx context.Context, userID, gifID string) (*models.Rating, error)
	ListByGif(ctx context.Context, gifID string) ([]models.Rating, error)
	Summary(ctx context.Context, gifID string) (*models.RatingSummary, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts rating, or overwrites the value of the existing row for the
// same (user_id, gif_id) in the same statement. Concurrent first submissions
// therefore converge on one row instead of failing.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "gif_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(rating).Error
	return translate(err)
}

// UpdateValue overwrites the rating value of an existing row owned by rating.UserID.
func (r *ratingRepository) UpdateValue(ctx context.Context, rating *models.Rating) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("user_id = ? AND gif_id = ?", rating.UserID, rating.GifID).
		Updates(map[string]any{"rating": rating.Rating, "updated_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	rating.UpdatedAt = now
	return nil
}

// Delete a rating by user and gif
func (r *ratingRepository) Delete(ctx context.Context, userID, gifID string) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND gif_id = ?", userID, gifID).Delete(&models.Rating{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByUserAndGif retrieves a user's rating for a specific gif
func (r *ratingRepository) GetByUserAndGif(ctx context.Context, userID, gifID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND gif_id = ?", userID, gifID).
		Preload("User").
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByGif retrieves all ratings for a gif with their authors
func (r *ratingRepository) ListByGif(ctx context.Context, gifID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("gif_id = ?", gifID).
		Preload("User").
		Order("created_at ASC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// Summary calculates the average rating and count for a gif
func (r *ratingRepository) Summary(ctx context.Context, gifID string) (*models.RatingSummary, error) {
	var summary models.RatingSummary
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("gif_id = ?", gifID).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
