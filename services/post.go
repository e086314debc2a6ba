package services

import (
	"social_posting_ms/domain"
	"social_posting_ms/repository"

	"gorm.io/gorm"
)

type IPostService interface {
	Create(authorID uint, content string) (*domain.Post, error)
	List() ([]domain.Post, error)
	Like(id uint) (*domain.Post, error)
	Dislike(id uint) (*domain.Post, error)
}

type PostService struct {
	db   *gorm.DB
	repo repository.IPostRepository
}

func NewPostService(db *gorm.DB, repo repository.IPostRepository) IPostService {
	return &PostService{db: db, repo: repo}
}

func (ps *PostService) Create(authorID uint, content string) (*domain.Post, error) {
	return ps.repo.Create(ps.db, &domain.Post{AuthorID: authorID, Content: content})
}

func (ps *PostService) List() ([]domain.Post, error) {
	return ps.repo.List(ps.db)
}

// Like toggles the like reaction: liking a liked post returns it to
// neutral, liking anything else makes it liked.
func (ps *PostService) Like(id uint) (*domain.Post, error) {
	return ps.react(id, domain.ReactionLike)
}

// Dislike mirrors Like for the negative reaction.
func (ps *PostService) Dislike(id uint) (*domain.Post, error) {
	return ps.react(id, domain.ReactionDislike)
}

func (ps *PostService) react(id uint, reaction int) (*domain.Post, error) {
	post, err := ps.repo.GetByID(ps.db, id)
	if err != nil {
		return nil, err
	}

	if post.Reaction == reaction {
		post.Reaction = domain.ReactionNone
	} else {
		post.Reaction = reaction
	}

	if err := ps.repo.UpdateReaction(ps.db, id, post.Reaction); err != nil {
		return nil, err
	}
	return post, nil
}
