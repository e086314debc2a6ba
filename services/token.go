package services

import (
	"errors"
	"social_posting_ms/domain"
	"social_posting_ms/repository"

	"github.com/hashicorp/go-uuid"
	"gorm.io/gorm"
)

type ITokenService interface {
	Issue(email string) (string, error)
	Consume(token string) (string, error)
}

// TokenService issues and consumes single-use tokens for email
// verification and account recovery. Consumption is atomic: a token
// resolves to its email exactly once.
type TokenService struct {
	db   *gorm.DB
	repo repository.ITokenRepository
}

func NewTokenService(db *gorm.DB, repo repository.ITokenRepository) ITokenService {
	return &TokenService{db: db, repo: repo}
}

func (ts *TokenService) Issue(email string) (string, error) {
	token, err := uuid.GenerateUUID()
	if err != nil {
		return "", err
	}
	if err := ts.repo.Save(ts.db, &domain.Token{Token: token, Email: email}); err != nil {
		return "", err
	}
	return token, nil
}

func (ts *TokenService) Consume(token string) (string, error) {
	email, err := ts.repo.Consume(ts.db, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return email, nil
}
