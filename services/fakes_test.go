package services

import (
	"encoding/json"
	"social_posting_ms/domain"
	"social_posting_ms/dtos/response"
	"social_posting_ms/repository"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory IUserRepository keyed by email. The db
// handle is ignored, matching how the real repository treats it as a
// pass-through.
type fakeUserRepo struct {
	users map[string]*domain.User
	next  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User), next: 1}
}

func (f *fakeUserRepo) Exists(_ *gorm.DB, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ *gorm.DB, email string) (*domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserWithPasskey(_ *gorm.DB, email string) (*domain.User, error) {
	return f.GetUserByEmail(nil, email)
}

func (f *fakeUserRepo) Create(_ *gorm.DB, entity *domain.User) (*domain.User, error) {
	entity.Id = f.next
	f.next++
	f.users[entity.Email] = entity
	return entity, nil
}

func (f *fakeUserRepo) MarkVerified(_ *gorm.DB, email string) error {
	user, ok := f.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.EmailVerified = true
	return nil
}

func (f *fakeUserRepo) UpdateUserHandle(_ *gorm.DB, email string, handle []byte) error {
	user, ok := f.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.UserHandle = handle
	return nil
}

func (f *fakeUserRepo) GetPasskey(_ *gorm.DB, email string) (*domain.Passkey, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user.Passkey, nil
}

func (f *fakeUserRepo) SavePasskey(_ *gorm.DB, email string, cred *webauthn.Credential) error {
	user, ok := f.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Passkey = &domain.Passkey{
		UserID:       user.Id,
		CredentialID: cred.ID,
		PublicKey:    cred.PublicKey,
		SignCount:    cred.Authenticator.SignCount,
		AAGUID:       cred.Authenticator.AAGUID,
	}
	return nil
}

func (f *fakeUserRepo) UpdateSignCount(_ *gorm.DB, _ []byte, _ uint32) error {
	return nil
}

// fakeTokenRepo backs the token service with a map.
type fakeTokenRepo struct {
	tokens map[string]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]string)}
}

func (f *fakeTokenRepo) Save(_ *gorm.DB, token *domain.Token) error {
	f.tokens[token.Token] = token.Email
	return nil
}

func (f *fakeTokenRepo) Consume(_ *gorm.DB, token string) (string, error) {
	email, ok := f.tokens[token]
	if !ok {
		return "", repository.ErrTokenNotFound
	}
	delete(f.tokens, token)
	return email, nil
}

// fakeEngine is a scripted IWebAuthnService for orchestration tests.
type fakeEngine struct {
	beginRegErr    error
	completeRegErr error
	beginAuthErr   error
	completeErr    error
	credential     webauthn.Credential
}

func (f *fakeEngine) BeginRegistration(email, _ string) (*protocol.CredentialCreation, *RegistrationState, error) {
	if f.beginRegErr != nil {
		return nil, nil, f.beginRegErr
	}
	state := &RegistrationState{Email: email, UserHandle: []byte("handle"), Challenge: "challenge"}
	return &protocol.CredentialCreation{}, state, nil
}

func (f *fakeEngine) CompleteRegistration(_ json.RawMessage, _ *RegistrationState) (*webauthn.Credential, error) {
	if f.completeRegErr != nil {
		return nil, f.completeRegErr
	}
	cred := f.credential
	return &cred, nil
}

func (f *fakeEngine) BeginAuthentication(email string) (*protocol.CredentialAssertion, *AuthenticationState, error) {
	if f.beginAuthErr != nil {
		return nil, nil, f.beginAuthErr
	}
	state := &AuthenticationState{Email: email, Challenge: "challenge"}
	return &protocol.CredentialAssertion{}, state, nil
}

func (f *fakeEngine) CompleteAuthentication(_ json.RawMessage, _ *AuthenticationState) (*webauthn.Credential, error) {
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	cred := f.credential
	return &cred, nil
}

// fakeMailer records sent mail and optionally fails.
type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

// fakeJWT issues predictable tokens.
type fakeJWT struct{}

func (fakeJWT) ParseJWT(string) (*jwt.Token, error)         { return nil, nil }
func (fakeJWT) GetClaims(*jwt.Token) (jwt.MapClaims, error) { return nil, nil }
func (fakeJWT) GenerateToken(uint, time.Duration) (string, error) {
	return "token", nil
}
func (fakeJWT) GenerateTokens(*domain.User) (*response.Tokens, error) {
	return &response.Tokens{AccessToken: "access", RefreshToken: "refresh"}, nil
}
func (fakeJWT) AccessTokenTTL() time.Duration { return time.Minute }

// fakeRedis keeps refresh tokens in a map.
type fakeRedis struct {
	tokens map[uint]string
}

func newFakeRedis() *fakeRedis { return &fakeRedis{tokens: make(map[uint]string)} }

func (f *fakeRedis) SetRefreshToken(userId uint, refreshToken string) error {
	f.tokens[userId] = refreshToken
	return nil
}

func (f *fakeRedis) GetRefreshToken(userId uint) (string, error) {
	return f.tokens[userId], nil
}

func (f *fakeRedis) DelRefreshToken(userId uint) {
	delete(f.tokens, userId)
}
