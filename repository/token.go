package repository

import (
	"errors"
	"social_posting_ms/domain"

	"gorm.io/gorm"
)

var ErrTokenNotFound = errors.New("token not found")

type ITokenRepository interface {
	Save(db *gorm.DB, token *domain.Token) error
	Consume(db *gorm.DB, token string) (string, error)
}

type TokenRepository struct {
}

func NewTokenRepository() ITokenRepository {
	return &TokenRepository{}
}

func (t *TokenRepository) Save(db *gorm.DB, token *domain.Token) error {
	return db.Create(token).Error
}

// Consume resolves a token to its email and deletes it in the same
// transaction. A second call with the same token sees no row and fails
// with ErrTokenNotFound.
func (t *TokenRepository) Consume(db *gorm.DB, token string) (string, error) {
	var email string
	err := db.Transaction(func(tx *gorm.DB) error {
		var record domain.Token
		if err := tx.Where("token = ?", token).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenNotFound
			}
			return err
		}
		res := tx.Where("token = ?", token).Delete(&domain.Token{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTokenNotFound
		}
		email = record.Email
		return nil
	})
	if err != nil {
		return "", err
	}
	return email, nil
}
