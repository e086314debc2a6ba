package controller

import (
	"errors"
	"social_posting_ms/domain"
	"social_posting_ms/dtos/request"
	"social_posting_ms/repository"
	"social_posting_ms/services"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type IPostController interface {
	List(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Like(c *fiber.Ctx) error
	Dislike(c *fiber.Ctx) error
}

type PostController struct {
	service services.IPostService
}

func NewPostController(service services.IPostService) IPostController {
	return &PostController{service: service}
}

func (pc *PostController) List(c *fiber.Ctx) error {
	posts, err := pc.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"posts": posts})
}

func (pc *PostController) Create(c *fiber.Ctx) error {
	body := c.Locals("body").(*request.CreatePostRequest)

	userId, ok := c.Locals("userId").(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing session"})
	}

	post, err := pc.service.Create(uint(userId), body.Content)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (pc *PostController) Like(c *fiber.Ctx) error {
	return pc.react(c, pc.service.Like)
}

func (pc *PostController) Dislike(c *fiber.Ctx) error {
	return pc.react(c, pc.service.Dislike)
}

func (pc *PostController) react(c *fiber.Ctx, apply func(uint) (*domain.Post, error)) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	post, err := apply(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(post)
}
