package repository

import (
	"context"
	"time"

	"giphyexplorer/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	UpdateContent(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, commentID int64, userID string) error
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	ListByGif(ctx context.Context, gifID string) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// UpdateContent rewrites the content of a comment, only if comment.UserID owns it
func (r *commentRepository) UpdateContent(ctx context.Context, comment *models.Comment) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND user_id = ?", comment.ID, comment.UserID).
		Updates(map[string]any{"content": comment.Content, "updated_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	comment.UpdatedAt = now
	return nil
}

// Delete a comment (only if user owns it)
func (r *commentRepository) Delete(ctx context.Context, commentID int64, userID string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", commentID, userID).Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByGif retrieves all comments for a gif, newest first
func (r *commentRepository) ListByGif(ctx context.Context, gifID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("gif_id = ?", gifID).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
