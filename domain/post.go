package domain

import "time"

// Reaction values a post can carry. Like/dislike act as toggles.
const (
	ReactionDislike = -1
	ReactionNone    = 0
	ReactionLike    = 1
)

type Post struct {
	Id        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt *time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt *time.Time `gorm:"default:null" json:"updated_at"`
	AuthorID  uint       `gorm:"not null;index" json:"author_id"`
	Content   string     `gorm:"size:200;not null" json:"content"`
	ImagePath string     `gorm:"size:255" json:"image_path"`
	Reaction  int        `gorm:"not null;default:0" json:"reaction"`
}
