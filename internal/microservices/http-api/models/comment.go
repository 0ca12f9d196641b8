package models

import "time"

const (
	CommentMinLength = 1
	CommentMaxLength = 1000
)

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	GifID     string    `json:"gif_id" gorm:"not null;index:idx_comments_gif_created,priority:1"`
	Content   string    `json:"content" gorm:"not null;type:varchar(1000)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index:idx_comments_gif_created,priority:2,sort:desc"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
