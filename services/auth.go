package services

import (
	"fmt"
	"log"
	"social_posting_ms/config"
	"social_posting_ms/domain"
	"social_posting_ms/dtos/request"
	"social_posting_ms/dtos/response"
	"social_posting_ms/repository"
	"social_posting_ms/util"

	"gorm.io/gorm"
)

type IAuthService interface {
	RegisterBegin(req *request.RegisterBeginRequest) (*response.RegisterBeginResponse, error)
	RegisterComplete(req *request.RegisterCompleteRequest) error
	LoginBegin(req *request.LoginBeginRequest) (*response.LoginBeginResponse, error)
	LoginComplete(req *request.LoginCompleteRequest) (*domain.User, *response.Tokens, error)
	ValidateAccount(token string) error
	RecoverAccount(req *request.RecoverRequest) error
	ResetAccount(token string) (string, error)
}

// AuthService sequences the two-phase ceremonies: it owns the state-id
// lifecycle and the persistence ordering, while the ceremony engine owns
// the cryptography.
type AuthService struct {
	db         *gorm.DB
	userRepo   repository.IUserRepository
	engine     IWebAuthnService
	regStates  *CeremonyStateStore[*RegistrationState]
	authStates *CeremonyStateStore[*AuthenticationState]
	cache      *CredentialCache
	tokens     ITokenService
	mail       IMailService
	jwt        IJWTService
	redis      IRedisService
}

func NewAuthService(
	db *gorm.DB,
	userRepo repository.IUserRepository,
	engine IWebAuthnService,
	regStates *CeremonyStateStore[*RegistrationState],
	authStates *CeremonyStateStore[*AuthenticationState],
	cache *CredentialCache,
	tokens ITokenService,
	mail IMailService,
	jwt IJWTService,
	redis IRedisService,
) IAuthService {
	return &AuthService{
		db:         db,
		userRepo:   userRepo,
		engine:     engine,
		regStates:  regStates,
		authStates: authStates,
		cache:      cache,
		tokens:     tokens,
		mail:       mail,
		jwt:        jwt,
		redis:      redis,
	}
}

// checkRegistrationMode rejects account-confusion attempts before any
// challenge is issued: a plain registration needs a free email, a reset
// needs an existing account.
func (as *AuthService) checkRegistrationMode(email string, resetMode bool) error {
	exists, err := as.userRepo.Exists(as.db, email)
	if err != nil {
		return err
	}
	if !resetMode && exists {
		return ErrInvalidRequest
	}
	if resetMode && !exists {
		return ErrInvalidRequest
	}
	return nil
}

func (as *AuthService) RegisterBegin(req *request.RegisterBeginRequest) (*response.RegisterBeginResponse, error) {
	email := util.NormalizeEmail(req.Email)

	if err := as.checkRegistrationMode(email, req.ResetMode); err != nil {
		return nil, err
	}

	options, state, err := as.engine.BeginRegistration(email, email)
	if err != nil {
		return nil, err
	}

	// A begun registration invalidates any bridged credential for the
	// email; the ceremony about to run replaces it.
	as.cache.Remove(email)

	stateID, err := as.regStates.Put(state)
	if err != nil {
		return nil, err
	}

	return &response.RegisterBeginResponse{CredentialCreation: options, StateID: stateID}, nil
}

func (as *AuthService) RegisterComplete(req *request.RegisterCompleteRequest) error {
	email := util.NormalizeEmail(req.Email)

	if !util.IsValidDisplayName(req.FirstName) || !util.IsValidDisplayName(req.LastName) {
		return ErrInvalidDisplayName
	}

	if err := as.checkRegistrationMode(email, req.ResetMode); err != nil {
		return err
	}

	state, ok := as.regStates.TakeAndRemove(req.StateID)
	if !ok {
		return ErrCeremonyState
	}
	if state.Email != email {
		return ErrCeremonyState
	}

	cred, err := as.engine.CompleteRegistration(req.Response, state)
	if err != nil {
		return err
	}

	if req.ResetMode {
		if err := as.userRepo.UpdateUserHandle(as.db, email, state.UserHandle); err != nil {
			return err
		}
		if err := as.userRepo.SavePasskey(as.db, email, cred); err != nil {
			return err
		}
		as.cache.Put(email, *cred)
		return nil
	}

	if _, err := as.userRepo.Create(as.db, &domain.User{
		Email:      email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		UserHandle: state.UserHandle,
	}); err != nil {
		return err
	}
	if err := as.userRepo.SavePasskey(as.db, email, cred); err != nil {
		return err
	}
	as.cache.Put(email, *cred)

	as.sendVerificationMail(email)
	return nil
}

// sendVerificationMail is fire and forget: registration already
// succeeded, an undeliverable mail only gets logged.
func (as *AuthService) sendVerificationMail(email string) {
	token, err := as.tokens.Issue(email)
	if err != nil {
		log.Printf("failed to issue verification token for %s: %v", email, err)
		return
	}

	link := fmt.Sprintf("%s/validate/%s", config.Conf.Application.BaseURL, token)
	body := fmt.Sprintf(
		"Welcome! Please verify your account by clicking the link: %s\n\n"+
			"If you did not request this, ignore this email.", link)

	if err := as.mail.Send(email, "Verify your account", body); err != nil {
		log.Printf("failed to send verification email to %s: %v", email, err)
	}
}

func (as *AuthService) LoginBegin(req *request.LoginBeginRequest) (*response.LoginBeginResponse, error) {
	email := util.NormalizeEmail(req.Email)

	options, state, err := as.engine.BeginAuthentication(email)
	if err != nil {
		return nil, err
	}

	stateID, err := as.authStates.Put(state)
	if err != nil {
		return nil, err
	}

	return &response.LoginBeginResponse{CredentialAssertion: options, StateID: stateID}, nil
}

func (as *AuthService) LoginComplete(req *request.LoginCompleteRequest) (*domain.User, *response.Tokens, error) {
	state, ok := as.authStates.TakeAndRemove(req.StateID)
	if !ok {
		return nil, nil, ErrCeremonyState
	}

	cred, err := as.engine.CompleteAuthentication(req.Response, state)
	if err != nil {
		return nil, nil, err
	}

	user, err := as.userRepo.GetUserByEmail(as.db, state.Email)
	if err != nil {
		return nil, nil, err
	}

	if err := as.userRepo.UpdateSignCount(as.db, cred.ID, cred.Authenticator.SignCount); err != nil {
		log.Printf("failed to update sign count for %s: %v", state.Email, err)
	}

	tokens, err := as.jwt.GenerateTokens(user)
	if err != nil {
		return nil, nil, err
	}
	if err := as.redis.SetRefreshToken(user.Id, tokens.RefreshToken); err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

func (as *AuthService) ValidateAccount(token string) error {
	email, err := as.tokens.Consume(token)
	if err != nil {
		return err
	}
	return as.userRepo.MarkVerified(as.db, email)
}

// RecoverAccount issues a recovery token when the account exists. The
// caller's response is identical either way so the route does not leak
// which emails are registered.
func (as *AuthService) RecoverAccount(req *request.RecoverRequest) error {
	email := util.NormalizeEmail(req.Email)

	exists, err := as.userRepo.Exists(as.db, email)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	token, err := as.tokens.Issue(email)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/recover/%s", config.Conf.Application.BaseURL, token)
	body := fmt.Sprintf("Click this link to recover your account: %s", link)
	if err := as.mail.Send(email, "Account recovery", body); err != nil {
		log.Printf("failed to send recovery email to %s: %v", email, err)
	}
	return nil
}

func (as *AuthService) ResetAccount(token string) (string, error) {
	return as.tokens.Consume(token)
}
