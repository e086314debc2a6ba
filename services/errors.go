package services

import "errors"

// Error taxonomy shared by the ceremony engine and the orchestration
// layer. Controllers map these to HTTP statuses; nothing retries
// internally, a failed ceremony restarts from begin.
var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidDisplayName = errors.New("invalid display name")
	ErrInvalidRequest     = errors.New("invalid registration request")
	ErrCeremonyState      = errors.New("invalid or expired ceremony state")
	ErrNoCredential       = errors.New("no credential registered for this email")
	ErrVerification       = errors.New("credential verification failed")
	ErrTokenNotFound      = errors.New("invalid or already used token")
)
