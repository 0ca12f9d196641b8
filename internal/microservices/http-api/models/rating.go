package models

import "time"

// Rating is unique per (user_id, gif_id); the schema enforces it with
// idx_ratings_user_gif.
type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_gif"`
	GifID     string    `json:"gif_id" gorm:"not null;index:idx_ratings_gif_id;uniqueIndex:idx_ratings_user_gif"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}

// RatingSummary is the aggregate of all ratings for one GIF
type RatingSummary struct {
	Average float64
	Count   int64
}
