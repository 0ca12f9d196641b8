package service

import (
	"context"
	"errors"
	"testing"

	"giphyexplorer/internal/microservices/http-api/apperror"
	"giphyexplorer/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSubmitRating_CreatesWhenAbsent(t *testing.T) {
	repo := new(MockRatingRepository)
	svc := NewRatingService(repo)
	ctx := context.Background()

	stored := &models.Rating{ID: 1, UserID: "alice", GifID: "abc", Rating: 4, User: models.User{Username: "alice"}}
	repo.On("GetByUserAndGif", ctx, "alice", "abc").Return(nil, gorm.ErrRecordNotFound).Once()
	repo.On("Upsert", ctx, mock.MatchedBy(func(r *models.Rating) bool {
		return r.UserID == "alice" && r.GifID == "abc" && r.Rating == 4
	})).Return(nil)
	repo.On("GetByUserAndGif", ctx, "alice", "abc").Return(stored, nil).Once()

	resp, created, err := svc.Submit(ctx, "alice", "abc", 4)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, "alice", resp.User.Username)
	repo.AssertExpectations(t)
}

func TestSubmitRating_OverwritesExisting(t *testing.T) {
	repo := new(MockRatingRepository)
	svc := NewRatingService(repo)
	ctx := context.Background()

	existing := &models.Rating{ID: 1, UserID: "alice", GifID: "abc", Rating: 4}
	repo.On("GetByUserAndGif", ctx, "alice", "abc").Return(existing, nil)
	repo.On("UpdateValue", ctx, existing).Return(nil)

	resp, created, err := svc.Submit(ctx, "alice", "abc", 2)

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 2, resp.Rating)
	assert.Equal(t, int64(1), resp.ID)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSubmitRating_ExistingVanishedFallsBackToUpsert(t *testing.T) {
	repo := new(MockRatingRepository)
	svc := NewRatingService(repo)
	ctx := context.Background()

	existing := &models.Rating{ID: 1, UserID: "alice", GifID: "abc", Rating: 4}
	repo.On("GetByUserAndGif", ctx, "alice", "abc").Return(existing, nil).Once()
	repo.On("UpdateValue", ctx, existing).Return(gorm.ErrRecordNotFound)
	repo.On("Upsert", ctx, mock.Anything).Return(nil)
	repo.On("GetByUserAndGif", ctx, "alice", "abc").
		Return(&models.Rating{ID: 2, UserID: "alice", GifID: "abc", Rating: 3}, nil).Once()

	resp, created, err := svc.Submit(ctx, "alice", "abc", 3)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(2), resp.ID)
	repo.AssertExpectations(t)
}

func TestSubmitRating_Validation(t *testing.T) {
	svc := NewRatingService(new(MockRatingRepository))

	tests := []struct {
		name  string
		gifID string
		value int
	}{
		{"zero", "abc", 0},
		{"six", "abc", 6},
		{"negative", "abc", -1},
		{"blank gif", "  ", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Submit(context.Background(), "alice", tt.gifID, tt.value)
			assert.Equal(t, apperror.Validation, apperror.KindOf(err))
		})
	}
}

func TestUpdateRating(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		repo := new(MockRatingRepository)
		repo.On("GetByUserAndGif", ctx, "alice", "abc").Return(nil, gorm.ErrRecordNotFound)

		_, err := NewRatingService(repo).Update(ctx, "alice", "abc", 3)
		assert.ErrorIs(t, err, &apperror.Error{Kind: apperror.NotFound, Message: "Rating not found"})
	})

	t.Run("success", func(t *testing.T) {
		repo := new(MockRatingRepository)
		existing := &models.Rating{ID: 9, UserID: "alice", GifID: "abc", Rating: 1}
		repo.On("GetByUserAndGif", ctx, "alice", "abc").Return(existing, nil)
		repo.On("UpdateValue", ctx, existing).Return(nil)

		resp, err := NewRatingService(repo).Update(ctx, "alice", "abc", 5)
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Rating)
	})

	t.Run("out of range", func(t *testing.T) {
		repo := new(MockRatingRepository)
		_, err := NewRatingService(repo).Update(ctx, "alice", "abc", 9)
		assert.Equal(t, apperror.Validation, apperror.KindOf(err))
		repo.AssertNotCalled(t, "GetByUserAndGif", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteRating(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRatingRepository)
	svc := NewRatingService(repo)

	repo.On("Delete", ctx, "alice", "abc").Return(nil)
	repo.On("Delete", ctx, "alice", "missing").Return(gorm.ErrRecordNotFound)
	repo.On("Delete", ctx, "alice", "broken").Return(errors.New("db down"))

	assert.NoError(t, svc.Delete(ctx, "alice", "abc"))
	assert.Equal(t, apperror.NotFound, apperror.KindOf(svc.Delete(ctx, "alice", "missing")))
	assert.Equal(t, apperror.Internal, apperror.KindOf(svc.Delete(ctx, "alice", "broken")))
}

func TestListRatings_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRatingRepository)
	repo.On("ListByGif", ctx, "abc").Return([]models.Rating{}, nil)

	list, err := NewRatingService(repo).ListForGif(ctx, "abc")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestRatingSummary(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRatingRepository)
	repo.On("Summary", ctx, "abc").Return(&models.RatingSummary{Average: 3.5, Count: 2}, nil)

	summary, err := NewRatingService(repo).Summary(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", summary.GifID)
	assert.InDelta(t, 3.5, summary.Average, 0.0001)
	assert.Equal(t, int64(2), summary.Count)
}

func TestCheckOwnership(t *testing.T) {
	assert.NoError(t, CheckOwnership("alice", "alice", "delete this comment"))

	err := CheckOwnership("alice", "bob", "delete this comment")
	code, body := apperror.ToResponse(err)
	assert.Equal(t, 403, code)
	assert.Equal(t, "Not authorized to delete this comment", body.Message)

	assert.Error(t, CheckOwnership("", "", "update this rating"))
}
