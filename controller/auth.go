package controller

import (
	"errors"
	"net/url"
	"social_posting_ms/dtos/request"
	"social_posting_ms/dtos/response"
	"social_posting_ms/middleware"
	"social_posting_ms/services"
	"time"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterBegin(c *fiber.Ctx) error
	RegisterComplete(c *fiber.Ctx) error
	LoginBegin(c *fiber.Ctx) error
	LoginComplete(c *fiber.Ctx) error
	ValidateAccount(c *fiber.Ctx) error
	RecoverAccount(c *fiber.Ctx) error
	ResetAccount(c *fiber.Ctx) error
	Logout(c *fiber.Ctx) error
}

type AuthController struct {
	service services.IAuthService
	jwt     services.IJWTService
	redis   services.IRedisService
}

func NewAuthController(service services.IAuthService, jwt services.IJWTService, redis services.IRedisService) IAuthController {
	return &AuthController{service: service, jwt: jwt, redis: redis}
}

// statusFromError maps the service error taxonomy to HTTP statuses.
// Anything unmapped is a store failure.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidDisplayName),
		errors.Is(err, services.ErrInvalidRequest),
		errors.Is(err, services.ErrCeremonyState),
		errors.Is(err, services.ErrTokenNotFound):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrVerification):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNoCredential):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (ac *AuthController) RegisterBegin(c *fiber.Ctx) error {
	body := c.Locals("body").(*request.RegisterBeginRequest)

	resp, err := ac.service.RegisterBegin(body)
	if err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resp)
}

func (ac *AuthController) RegisterComplete(c *fiber.Ctx) error {
	body := c.Locals("body").(*request.RegisterCompleteRequest)

	if err := ac.service.RegisterComplete(body); err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "created"})
}

func (ac *AuthController) LoginBegin(c *fiber.Ctx) error {
	body := c.Locals("body").(*request.LoginBeginRequest)

	resp, err := ac.service.LoginBegin(body)
	if err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resp)
}

func (ac *AuthController) LoginComplete(c *fiber.Ctx) error {
	body := c.Locals("body").(*request.LoginCompleteRequest)

	_, tokens, err := ac.service.LoginComplete(body)
	if err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tokens.AccessToken,
		Expires:  time.Now().Add(ac.jwt.AccessTokenTTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/home", fiber.StatusSeeOther)
}

func (ac *AuthController) ValidateAccount(c *fiber.Ctx) error {
	token := c.Params("token")

	if err := ac.service.ValidateAccount(token); err != nil {
		return c.Redirect("/register?error=invalid_token")
	}
	return c.Redirect("/login?validated=true")
}

func (ac *AuthController) RecoverAccount(c *fiber.Ctx) error {
	body := c.Locals("body").(*request.RecoverRequest)

	if err := ac.service.RecoverAccount(body); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
	}
	return c.JSON(response.RecoverResponse{
		Message: "If this email exists, a recovery message has been sent to it.",
	})
}

func (ac *AuthController) ResetAccount(c *fiber.Ctx) error {
	token := c.Params("token")

	email, err := ac.service.ResetAccount(token)
	if err != nil {
		return c.Redirect("/register?error=recovery_failed")
	}
	return c.Redirect("/register?reset_mode=true&email=" + url.QueryEscape(email) + "&success=true")
}

// Logout drops the session cookie and revokes the refresh token held
// for the session, when the cookie still parses.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if tokenStr := c.Cookies(middleware.SessionCookie); tokenStr != "" {
		if token, err := ac.jwt.ParseJWT(tokenStr); err == nil {
			if claims, err := ac.jwt.GetClaims(token); err == nil {
				if sub, ok := claims["sub"].(float64); ok {
					ac.redis.DelRefreshToken(uint(sub))
				}
			}
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.Redirect("/")
}
