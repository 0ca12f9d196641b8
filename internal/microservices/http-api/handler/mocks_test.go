package handler

import (
	"context"

	"giphyexplorer/internal/catalog"
	"giphyexplorer/internal/microservices/http-api/dto"
	"giphyexplorer/internal/microservices/http-api/models"
	"giphyexplorer/internal/microservices/http-api/service"

	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockRatingService mocks the RatingService interface
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Submit(ctx context.Context, userID, gifID string, value int) (*dto.RatingResponse, bool, error) {
	args := m.Called(ctx, userID, gifID, value)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*dto.RatingResponse), args.Bool(1), args.Error(2)
}

func (m *MockRatingService) Update(ctx context.Context, userID, gifID string, value int) (*dto.RatingResponse, error) {
	args := m.Called(ctx, userID, gifID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RatingResponse), args.Error(1)
}

func (m *MockRatingService) Delete(ctx context.Context, userID, gifID string) error {
	args := m.Called(ctx, userID, gifID)
	return args.Error(0)
}

func (m *MockRatingService) ListForGif(ctx context.Context, gifID string) ([]dto.RatingResponse, error) {
	args := m.Called(ctx, gifID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RatingResponse), args.Error(1)
}

func (m *MockRatingService) Summary(ctx context.Context, gifID string) (*dto.RatingSummaryResponse, error) {
	args := m.Called(ctx, gifID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RatingSummaryResponse), args.Error(1)
}

// MockCommentService mocks the CommentService interface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(ctx context.Context, userID, gifID, content string) (*dto.CommentResponse, error) {
	args := m.Called(ctx, userID, gifID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) Get(ctx context.Context, commentID int64) (*dto.CommentResponse, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, userID string, commentID int64, content string) (*dto.CommentResponse, error) {
	args := m.Called(ctx, userID, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, userID string, commentID int64) error {
	args := m.Called(ctx, userID, commentID)
	return args.Error(0)
}

func (m *MockCommentService) ListForGif(ctx context.Context, gifID string) ([]dto.CommentResponse, error) {
	args := m.Called(ctx, gifID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CommentResponse), args.Error(1)
}

// MockGifService mocks the GifService interface
type MockGifService struct {
	mock.Mock
}

func (m *MockGifService) Search(ctx context.Context, query string, limit, offset int) (*catalog.Page, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Page), args.Error(1)
}

func (m *MockGifService) Trending(ctx context.Context, limit, offset int) (*catalog.Page, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Page), args.Error(1)
}

func (m *MockGifService) GetByID(ctx context.Context, id string) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}
