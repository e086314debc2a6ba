package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"social_posting_ms/repository"

	"github.com/go-playground/validator/v10"
	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/hashicorp/go-uuid"
	"gorm.io/gorm"
)

// RegistrationState is the server half of an enrollment ceremony,
// held between begin and complete under an opaque state id.
type RegistrationState struct {
	Session    webauthn.SessionData `json:"session"`
	Email      string               `json:"email"`
	UserHandle []byte               `json:"user_handle"`
	Challenge  string               `json:"challenge"`
}

// AuthenticationState is the server half of a login ceremony.
type AuthenticationState struct {
	Session    webauthn.SessionData `json:"session"`
	Email      string               `json:"email"`
	UserHandle []byte               `json:"user_handle"`
	Credential webauthn.Credential  `json:"credential"`
	Challenge  string               `json:"challenge"`
}

type IWebAuthnService interface {
	BeginRegistration(email, displayName string) (*protocol.CredentialCreation, *RegistrationState, error)
	CompleteRegistration(response json.RawMessage, state *RegistrationState) (*webauthn.Credential, error)
	BeginAuthentication(email string) (*protocol.CredentialAssertion, *AuthenticationState, error)
	CompleteAuthentication(response json.RawMessage, state *AuthenticationState) (*webauthn.Credential, error)
}

// WebAuthnService wraps the ceremony library. It verifies and produces
// ceremony artifacts but never persists anything itself; credential
// writes belong to the caller.
type WebAuthnService struct {
	wa       *webauthn.WebAuthn
	db       *gorm.DB
	userRepo repository.IUserRepository
	cache    *CredentialCache
	validate *validator.Validate
}

func NewWebAuthnService(wa *webauthn.WebAuthn, db *gorm.DB, userRepo repository.IUserRepository, cache *CredentialCache) IWebAuthnService {
	return &WebAuthnService{wa: wa, db: db, userRepo: userRepo, cache: cache, validate: validator.New()}
}

// ceremonyUser satisfies webauthn.User for accounts that may not exist
// yet: at registration begin the user row is only created on complete.
type ceremonyUser struct {
	handle      []byte
	email       string
	displayName string
	creds       []webauthn.Credential
}

func (c *ceremonyUser) WebAuthnID() []byte                         { return c.handle }
func (c *ceremonyUser) WebAuthnName() string                       { return c.email }
func (c *ceremonyUser) WebAuthnDisplayName() string                { return c.displayName }
func (c *ceremonyUser) WebAuthnCredentials() []webauthn.Credential { return c.creds }

// BeginRegistration produces a creation challenge scoped to the
// configured relying party, under a fresh random user handle.
func (ws *WebAuthnService) BeginRegistration(email, displayName string) (*protocol.CredentialCreation, *RegistrationState, error) {
	if err := ws.validate.Var(email, "required,email"); err != nil {
		return nil, nil, ErrInvalidEmail
	}

	handle, err := uuid.GenerateRandomBytes(16)
	if err != nil {
		return nil, nil, err
	}

	user := &ceremonyUser{handle: handle, email: email, displayName: displayName}

	options, session, err := ws.wa.BeginRegistration(user,
		webauthn.WithAuthenticatorSelection(protocol.AuthenticatorSelection{
			ResidentKey:      protocol.ResidentKeyRequirementPreferred,
			UserVerification: protocol.VerificationPreferred,
		}),
		webauthn.WithConveyancePreference(protocol.PreferNoAttestation),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start registration: %w", err)
	}

	state := &RegistrationState{
		Session:    *session,
		Email:      email,
		UserHandle: handle,
		Challenge:  session.Challenge,
	}
	return options, state, nil
}

// CompleteRegistration verifies the attestation response against the
// exact state produced by the matching begin call and returns the
// verified credential. The caller persists it and refreshes the
// credential cache.
func (ws *WebAuthnService) CompleteRegistration(response json.RawMessage, state *RegistrationState) (*webauthn.Credential, error) {
	parsed, err := protocol.ParseCredentialCreationResponseBody(bytes.NewReader(response))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}

	user := &ceremonyUser{handle: state.UserHandle, email: state.Email, displayName: state.Email}
	cred, err := ws.wa.CreateCredential(user, state.Session, parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	return cred, nil
}

// BeginAuthentication requires exactly one stored credential for the
// email. The credential cache is consulted first so a just-reset
// passkey is usable before persistence catches up.
func (ws *WebAuthnService) BeginAuthentication(email string) (*protocol.CredentialAssertion, *AuthenticationState, error) {
	if err := ws.validate.Var(email, "required,email"); err != nil {
		return nil, nil, ErrInvalidEmail
	}

	user, err := ws.userRepo.GetUserWithPasskey(ws.db, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrNoCredential
		}
		return nil, nil, err
	}

	cred, ok := ws.cache.Get(email)
	if !ok {
		if user.Passkey == nil {
			return nil, nil, ErrNoCredential
		}
		cred = user.Passkey.ToWebAuthn()
	}

	cu := &ceremonyUser{
		handle:      user.UserHandle,
		email:       user.Email,
		displayName: user.WebAuthnDisplayName(),
		creds:       []webauthn.Credential{cred},
	}

	options, session, err := ws.wa.BeginLogin(cu)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start authentication: %w", err)
	}

	state := &AuthenticationState{
		Session:    *session,
		Email:      user.Email,
		UserHandle: user.UserHandle,
		Credential: cred,
		Challenge:  session.Challenge,
	}
	return options, state, nil
}

// CompleteAuthentication verifies the signed assertion against the
// stored state. The challenge echoed in the client data must be the one
// issued at begin time; anything else is treated as a replay.
func (ws *WebAuthnService) CompleteAuthentication(response json.RawMessage, state *AuthenticationState) (*webauthn.Credential, error) {
	parsed, err := protocol.ParseCredentialRequestResponseBody(bytes.NewReader(response))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}

	if parsed.Response.CollectedClientData.Challenge != state.Challenge {
		return nil, fmt.Errorf("%w: challenge mismatch", ErrVerification)
	}

	user := &ceremonyUser{
		handle:      state.UserHandle,
		email:       state.Email,
		displayName: state.Email,
		creds:       []webauthn.Credential{state.Credential},
	}

	cred, err := ws.wa.ValidateLogin(user, state.Session, parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	return cred, nil
}
