package main

import (
	"context"
	"social_posting_ms/config"
	"social_posting_ms/controller"
	"social_posting_ms/repository"
	"social_posting_ms/services"
	"time"

	"os"
	"os/signal"
	"syscall"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	//DB
	dbConnection *gorm.DB

	//Redis Client
	redisClient *redis.Client

	//WebAuthn Conf
	webAuthn *webauthn.WebAuthn

	//Logger
	logger *zap.Logger

	// Repository
	userRepository  repository.IUserRepository
	tokenRepository repository.ITokenRepository
	postRepository  repository.IPostRepository

	// Ceremony state
	registrationStates   *services.CeremonyStateStore[*services.RegistrationState]
	authenticationStates *services.CeremonyStateStore[*services.AuthenticationState]
	credentialCache      *services.CredentialCache

	// Service
	jwtService      services.IJWTService
	redisService    services.IRedisService
	webAuthnService services.IWebAuthnService
	tokenService    services.ITokenService
	mailService     services.IMailService
	authService     services.IAuthService
	postService     services.IPostService

	// Controller
	authController controller.IAuthController
	postController controller.IPostController
}

// NOTE: Service Start
func (s *service) Start() {
	log.Info("Opening database connection...")
	s.dbConnection = config.OpenDatabaseConnection(config.Conf.Application.Datasource.PrimaryURL)
	config.Migrate(config.Conf.Application.Datasource.PrimaryURL)

	log.Info("Opening redis connection...")
	s.redisClient = config.ConnectToRedis(config.Conf.Application.Redis)

	log.Info("WebAuthn config")
	s.webAuthn = config.InitWebAuthn()

	s.logger = config.InitLogger()

	// NOTE: Dependency Injections
	s.DependencyInjection()

	// NOTE: Start Fiber server...
	app := NewServer(s.authController, s.postController, s.logger).Start()

	log.Info("Server starting..")
	go func() {
		if err := app.Listen(config.Conf.Application.Server.Port); err != nil {
			log.Fatal("Server failed to start")
		}
	}()
	// NOTE: Keep OS signals for graceful shutdown
	s.gracefulShutdown(app)
}

// NOTE: Depency Injection Operation
func (s *service) DependencyInjection() {
	s.jwtService = &services.JWTService{
		Secret:     []byte(config.Conf.Application.Security.Secret),
		Issuer:     config.Conf.Application.Security.Issuer,
		AccessTTL:  time.Duration(config.Conf.Application.Security.TokenValidityInSeconds) * time.Second,
		RefreshTTL: time.Duration(config.Conf.Application.Security.TokenValidityInSecondsForRememberMe) * time.Second,
	}

	// NOTE: Repositories Injections
	s.userRepository = repository.NewUserRepository()
	s.tokenRepository = repository.NewTokenRepository()
	s.postRepository = repository.NewPostRepository()

	// NOTE: Ceremony state, one store per ceremony type
	stateTTL := time.Duration(config.Conf.Application.Ceremony.StateTTLInSeconds) * time.Second
	s.registrationStates = services.NewCeremonyStateStore[*services.RegistrationState](stateTTL)
	s.authenticationStates = services.NewCeremonyStateStore[*services.AuthenticationState](stateTTL)
	s.credentialCache = services.NewCredentialCache()

	// NOTE: Services Injections
	s.redisService = services.NewRedisService(s.redisClient)
	s.webAuthnService = services.NewWebAuthnService(s.webAuthn, s.dbConnection, s.userRepository, s.credentialCache)
	s.tokenService = services.NewTokenService(s.dbConnection, s.tokenRepository)

	mailService, err := services.NewKafkaMailService(config.Conf.Application.Kafka.Brokers, config.Conf.Application.Kafka.MailTopic)
	if err != nil {
		log.Panic("failed to create kafka mail producer: ", err)
	}
	s.mailService = mailService

	s.authService = services.NewAuthService(
		s.dbConnection,
		s.userRepository,
		s.webAuthnService,
		s.registrationStates,
		s.authenticationStates,
		s.credentialCache,
		s.tokenService,
		s.mailService,
		s.jwtService,
		s.redisService,
	)
	s.postService = services.NewPostService(s.dbConnection, s.postRepository)

	// NOTE: Controllers Injections
	s.authController = controller.NewAuthController(s.authService, s.jwtService, s.redisService)
	s.postController = controller.NewPostController(s.postService)
}

// NOTE: Graceful shutdown operation
func (s *service) gracefulShutdown(app *fiber.App) {

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// NOTE: Shutdown Fiber server
	if err := app.Shutdown(); err != nil {
		log.Error("error while shutting down app", err)
	}

	s.registrationStates.Close()
	s.authenticationStates.Close()
	if closer, ok := s.mailService.(*services.KafkaMailService); ok {
		if err := closer.Close(); err != nil {
			log.Error("error while closing kafka producer", err)
		}
	}

	// NOTE: Shutdown Database connection
	done := make(chan bool)
	go func() {
		config.CloseDatabaseConnection(s.dbConnection)
		done <- true
	}()

	select {
	case <-ctx.Done():
		log.Error("timeout while shutting down database", ctx.Err())
	case <-done:
		log.Info("database is gracefully shutdown")
	}
}
