package service

import (
	"context"
	"errors"
	"strings"

	"giphyexplorer/internal/catalog"
	"giphyexplorer/internal/microservices/http-api/apperror"
)

const (
	DefaultGifLimit = 20
	MaxGifLimit     = 50
)

// GifService validates catalog queries and classifies catalog failures.
type GifService interface {
	Search(ctx context.Context, query string, limit, offset int) (*catalog.Page, error)
	Trending(ctx context.Context, limit, offset int) (*catalog.Page, error)
	GetByID(ctx context.Context, id string) (*catalog.Item, error)
}

type gifService struct {
	catalog catalog.Catalog
}

func NewGifService(c catalog.Catalog) GifService {
	return &gifService{catalog: c}
}

func pageBounds(limit, offset int) (int, int, error) {
	if offset < 0 {
		return 0, 0, apperror.NewValidation("Offset must not be negative")
	}
	switch {
	case limit < 1:
		limit = 1
	case limit > MaxGifLimit:
		limit = MaxGifLimit
	}
	return limit, offset, nil
}

func (s *gifService) Search(ctx context.Context, query string, limit, offset int) (*catalog.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.NewValidation("Search query is required")
	}
	limit, offset, err := pageBounds(limit, offset)
	if err != nil {
		return nil, err
	}

	page, err := s.catalog.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, upstreamError(err, catalog.SearchFailure)
	}
	return page, nil
}

func (s *gifService) Trending(ctx context.Context, limit, offset int) (*catalog.Page, error) {
	limit, offset, err := pageBounds(limit, offset)
	if err != nil {
		return nil, err
	}

	page, err := s.catalog.Trending(ctx, limit, offset)
	if err != nil {
		return nil, upstreamError(err, catalog.SearchFailure)
	}
	return page, nil
}

func (s *gifService) GetByID(ctx context.Context, id string) (*catalog.Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.NewValidation("GIF ID is required")
	}

	item, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, upstreamError(err, catalog.LookupFailure)
	}
	return item, nil
}

// upstreamError surfaces the catalog's own message when it gave one,
// otherwise the operation's fallback.
func upstreamError(err error, fallback string) error {
	var upErr *catalog.UpstreamError
	if errors.As(err, &upErr) && upErr.Message != "" {
		return apperror.NewUpstream(upErr.Message, err)
	}
	return apperror.NewUpstream(fallback, err)
}
