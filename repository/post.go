package repository

import (
	"errors"
	"social_posting_ms/domain"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type IPostRepository interface {
	Create(db *gorm.DB, post *domain.Post) (*domain.Post, error)
	GetByID(db *gorm.DB, id uint) (*domain.Post, error)
	List(db *gorm.DB) ([]domain.Post, error)
	UpdateReaction(db *gorm.DB, id uint, reaction int) error
}

type PostRepository struct {
}

func NewPostRepository() IPostRepository {
	return &PostRepository{}
}

func (p *PostRepository) Create(db *gorm.DB, post *domain.Post) (*domain.Post, error) {
	return post, db.Create(post).Error
}

func (p *PostRepository) GetByID(db *gorm.DB, id uint) (*domain.Post, error) {
	var post domain.Post
	if err := db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (p *PostRepository) List(db *gorm.DB) ([]domain.Post, error) {
	var posts []domain.Post
	if err := db.Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (p *PostRepository) UpdateReaction(db *gorm.DB, id uint, reaction int) error {
	return db.Model(&domain.Post{}).
		Where("id = ?", id).
		Update("reaction", reaction).Error
}
