package domain

import (
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
)

type User struct {
	Id            uint       `gorm:"primaryKey" json:"id"`
	CreatedAt     *time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"default:null" json:"updated_at"`
	Email         string     `gorm:"size:100;not null;unique" json:"email"`
	FirstName     string     `gorm:"size:100;not null" json:"first_name"`
	LastName      string     `gorm:"size:100;not null" json:"last_name"`
	EmailVerified bool       `json:"email_verified"`
	UserHandle    []byte     `gorm:"not null" json:"-"`
	Passkey       *Passkey   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_passkey"`
}

func (u User) WebAuthnID() []byte {
	return u.UserHandle
}

func (u User) WebAuthnName() string {
	return u.Email
}

func (u User) WebAuthnDisplayName() string {
	return u.FirstName + " " + u.LastName
}

func (u User) WebAuthnCredentials() []webauthn.Credential {
	if u.Passkey == nil {
		return nil
	}
	return []webauthn.Credential{u.Passkey.ToWebAuthn()}
}
