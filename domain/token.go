package domain

import "time"

// Token is a single-use token proving possession of an email address.
// The same table backs email verification and account recovery; the
// consuming route decides the purpose.
type Token struct {
	Token     string     `gorm:"primaryKey;size:100" json:"token"`
	Email     string     `gorm:"size:100;not null;index" json:"email"`
	CreatedAt *time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Token) TableName() string {
	return "single_use_tokens"
}
