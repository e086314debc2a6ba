package domain

import (
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
)

// Passkey is the single stored credential of a user. Replacing it is an
// explicit reset, never an append.
type Passkey struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	CredentialID    []byte     `gorm:"not null;unique" json:"credential_id"`
	PublicKey       []byte     `gorm:"not null" json:"public_key"`
	SignCount       uint32     `gorm:"not null" json:"sign_count"`
	CreatedAt       *time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       *time.Time `gorm:"default:null" json:"updated_at"`
	AAGUID          []byte     `gorm:"column:aa_guid;not null" json:"aa_guid"`
	AttestationType string
	Authenticator   []byte `gorm:"type:json"`
	BackupEligible  bool   `gorm:"not null;default:false" json:"backup_eligible"`
	BackupState     bool   `gorm:"not null;default:false" json:"backup_state"`
}

func (Passkey) TableName() string {
	return "user_passkeys"
}

func (p Passkey) ToWebAuthn() webauthn.Credential {
	return webauthn.Credential{
		ID:              p.CredentialID,
		PublicKey:       p.PublicKey,
		AttestationType: p.AttestationType,
		Flags: webauthn.CredentialFlags{
			BackupEligible: p.BackupEligible,
			BackupState:    p.BackupState,
		},
		Authenticator: webauthn.Authenticator{
			AAGUID:    p.AAGUID,
			SignCount: p.SignCount,
		},
	}
}
