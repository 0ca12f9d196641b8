package router

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"giphyexplorer/internal/catalog"
	"giphyexplorer/internal/microservices/http-api/models"
	"giphyexplorer/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// store is an in-memory stand-in for Postgres with the same uniqueness and ordering rules.
type store struct {
	mu       sync.Mutex
	clock    time.Time
	users    map[string]*models.User
	ratings  map[string]*models.Rating
	comments map[int64]*models.Comment
	nextID   int64
}

func newStore() *store {
	return &store{
		clock:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		users:    make(map[string]*models.User),
		ratings:  make(map[string]*models.Rating),
		comments: make(map[int64]*models.Comment),
	}
}

func (s *store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) author(userID string) models.User {
	if u, ok := s.users[userID]; ok {
		return *u
	}
	return models.User{}
}

type fakeUsers struct{ *store }

func (f fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.CreatedAt = f.tick()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f fakeUsers) find(match func(*models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Username == username })
}

func (f fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.ID == id })
}

func (f fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Email == email })
}

type fakeRatings struct{ *store }

func ratingKey(userID, gifID string) string { return userID + "|" + gifID }

func (f fakeRatings) Upsert(_ context.Context, rating *models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.tick()
	if existing, ok := f.ratings[ratingKey(rating.UserID, rating.GifID)]; ok {
		existing.Rating = rating.Rating
		existing.UpdatedAt = now
		*rating = *existing
		return nil
	}
	rating.ID = f.id()
	rating.CreatedAt, rating.UpdatedAt = now, now
	stored := *rating
	f.ratings[ratingKey(rating.UserID, rating.GifID)] = &stored
	return nil
}

func (f fakeRatings) UpdateValue(_ context.Context, rating *models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.ratings[ratingKey(rating.UserID, rating.GifID)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Rating = rating.Rating
	existing.UpdatedAt = f.tick()
	rating.UpdatedAt = existing.UpdatedAt
	return nil
}

func (f fakeRatings) Delete(_ context.Context, userID, gifID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ratingKey(userID, gifID)
	if _, ok := f.ratings[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.ratings, key)
	return nil
}

func (f fakeRatings) GetByUserAndGif(_ context.Context, userID, gifID string) (*models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.ratings[ratingKey(userID, gifID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *existing
	found.User = f.author(userID)
	return &found, nil
}

func (f fakeRatings) ListByGif(_ context.Context, gifID string) ([]models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []models.Rating{}
	for _, r := range f.ratings {
		if r.GifID == gifID {
			found := *r
			found.User = f.author(r.UserID)
			list = append(list, found)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f fakeRatings) Summary(_ context.Context, gifID string) (*models.RatingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	summary := &models.RatingSummary{}
	total := 0
	for _, r := range f.ratings {
		if r.GifID == gifID {
			summary.Count++
			total += r.Rating
		}
	}
	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}
	return summary, nil
}

type fakeComments struct{ *store }

func (f fakeComments) Create(_ context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = f.id()
	comment.CreatedAt = f.tick()
	comment.UpdatedAt = comment.CreatedAt
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f fakeComments) UpdateContent(_ context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.comments[comment.ID]
	if !ok || existing.UserID != comment.UserID {
		return gorm.ErrRecordNotFound
	}
	existing.Content = comment.Content
	existing.UpdatedAt = f.tick()
	comment.UpdatedAt = existing.UpdatedAt
	return nil
}

func (f fakeComments) Delete(_ context.Context, commentID int64, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.comments[commentID]
	if !ok || existing.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.comments, commentID)
	return nil
}

func (f fakeComments) GetByID(_ context.Context, commentID int64) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.comments[commentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *existing
	found.User = f.author(existing.UserID)
	return &found, nil
}

func (f fakeComments) ListByGif(_ context.Context, gifID string) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []models.Comment{}
	for _, c := range f.comments {
		if c.GifID == gifID {
			found := *c
			found.User = f.author(c.UserID)
			list = append(list, found)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

type fakeCatalog struct{}

func (fakeCatalog) Search(_ context.Context, query string, limit, offset int) (*catalog.Page, error) {
	if query == "fail" {
		return nil, &catalog.UpstreamError{StatusCode: 403, Message: "Invalid API key"}
	}
	return &catalog.Page{
		Data:       []catalog.Gif{{ID: "abc", Title: query}},
		Pagination: catalog.Pagination{TotalCount: 1, Count: 1, Offset: offset},
	}, nil
}

func (fakeCatalog) Trending(_ context.Context, limit, offset int) (*catalog.Page, error) {
	return &catalog.Page{Data: []catalog.Gif{{ID: "hot"}}}, nil
}

func (fakeCatalog) GetByID(_ context.Context, id string) (*catalog.Item, error) {
	if id == "missing" {
		return nil, &catalog.UpstreamError{StatusCode: 404, Message: "Not Found"}
	}
	return &catalog.Item{Data: catalog.Gif{ID: id}}, nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

var errDatabaseDown = errors.New("database down")
