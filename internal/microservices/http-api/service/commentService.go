package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"giphyexplorer/internal/microservices/http-api/apperror"
	"giphyexplorer/internal/microservices/http-api/dto"
	"giphyexplorer/internal/microservices/http-api/models"
	"giphyexplorer/internal/microservices/http-api/repository"
)

type CommentService interface {
	Create(ctx context.Context, userID, gifID, content string) (*dto.CommentResponse, error)
	Get(ctx context.Context, commentID int64) (*dto.CommentResponse, error)
	Update(ctx context.Context, userID string, commentID int64, content string) (*dto.CommentResponse, error)
	Delete(ctx context.Context, userID string, commentID int64) error
	ListForGif(ctx context.Context, gifID string) ([]dto.CommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	n := utf8.RuneCountInString(content)
	if n < models.CommentMinLength || n > models.CommentMaxLength {
		return "", apperror.NewValidation(fmt.Sprintf("Comment must be between %d and %d characters",
			models.CommentMinLength, models.CommentMaxLength))
	}
	return content, nil
}

// Create posts a new comment by userID on a GIF.
func (s *commentService) Create(ctx context.Context, userID, gifID, content string) (*dto.CommentResponse, error) {
	gifID = strings.TrimSpace(gifID)
	if gifID == "" {
		return nil, apperror.NewValidation("GIF ID is required")
	}
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{UserID: userID, GifID: gifID, Content: content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	// Reload with user data
	stored, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	return dto.FromModelToCommentResponse(stored), nil
}

func (s *commentService) find(ctx context.Context, commentID int64) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NewNotFound("Comment not found")
		}
		return nil, fmt.Errorf("lookup comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Get(ctx context.Context, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.find(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

// Update replaces the content of a comment. Only its author may do this.
func (s *commentService) Update(ctx context.Context, userID string, commentID int64, content string) (*dto.CommentResponse, error) {
	comment, err := s.find(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := CheckOwnership(comment.UserID, userID, "update this comment"); err != nil {
		return nil, err
	}

	content, err = normalizeContent(content)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.UpdateContent(ctx, comment); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NewNotFound("Comment not found")
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return dto.FromModelToCommentResponse(comment), nil
}

// Delete removes a comment. Only its author may do this.
func (s *commentService) Delete(ctx context.Context, userID string, commentID int64) error {
	comment, err := s.find(ctx, commentID)
	if err != nil {
		return err
	}
	if err := CheckOwnership(comment.UserID, userID, "delete this comment"); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, commentID, userID); err != nil {
		if repository.IsNotFound(err) {
			return apperror.NewNotFound("Comment not found")
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// ListForGif returns a GIF's comments, newest first.
func (s *commentService) ListForGif(ctx context.Context, gifID string) ([]dto.CommentResponse, error) {
	comments, err := s.commentRepo.ListByGif(ctx, strings.TrimSpace(gifID))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return responses, nil
}
