package main

import (
	"social_posting_ms/controller"
	"social_posting_ms/dtos/request"
	"social_posting_ms/middleware"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Server struct {
	AuthController controller.IAuthController
	PostController controller.IPostController
	Logger         *zap.Logger
}

// NOTE: Server Constructor
func NewServer(
	AuthController controller.IAuthController,
	PostController controller.IPostController,
	Logger *zap.Logger,
) *Server {
	return &Server{
		AuthController: AuthController,
		PostController: PostController,
		Logger:         Logger,
	}
}

// NOTE: Start Fiber Server
func (s *Server) Start() *fiber.App {
	app := fiber.New()

	app.Use(middleware.RecoveryMiddleware(s.Logger))
	app.Use(middleware.LoggingMiddleware(s.Logger))
	app.Use(middleware.GlobalRateLimiter())

	// Ceremony endpoints: begin/complete x registration/authentication.
	// Begins get a tighter limit, each one allocates server-side state.
	beginLimiter := middleware.RouteRateLimiter(5, time.Minute)
	app.Post("/register/begin", beginLimiter, middleware.ValidateBody[request.RegisterBeginRequest](), s.AuthController.RegisterBegin)
	app.Post("/register/complete", middleware.ValidateBody[request.RegisterCompleteRequest](), s.AuthController.RegisterComplete)
	app.Post("/login/begin", beginLimiter, middleware.ValidateBody[request.LoginBeginRequest](), s.AuthController.LoginBegin)
	app.Post("/login/complete", middleware.ValidateBody[request.LoginCompleteRequest](), s.AuthController.LoginComplete)

	// Single-use token routes: verification and recovery.
	app.Get("/validate/:token", s.AuthController.ValidateAccount)
	app.Post("/recover", middleware.ValidateBody[request.RecoverRequest](), s.AuthController.RecoverAccount)
	app.Get("/recover/:token", s.AuthController.ResetAccount)
	app.Get("/logout", s.AuthController.Logout)

	// Posts live behind the session boundary.
	postGroup := app.Group("/", middleware.AuthMiddleware())
	postGroup.Get("/home", s.PostController.List)
	postGroup.Post("/posts", middleware.ValidateBody[request.CreatePostRequest](), s.PostController.Create)
	postGroup.Post("/posts/:id/like", s.PostController.Like)
	postGroup.Post("/posts/:id/dislike", s.PostController.Dislike)

	return app
}
