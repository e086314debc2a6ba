package repository

import (
	"encoding/json"
	"errors"
	"social_posting_ms/domain"

	"github.com/go-webauthn/webauthn/webauthn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUserNotFound = errors.New("user not found")

type IUserRepository interface {
	Exists(db *gorm.DB, email string) (bool, error)
	GetUserByEmail(db *gorm.DB, email string) (*domain.User, error)
	GetUserWithPasskey(db *gorm.DB, email string) (*domain.User, error)
	Create(db *gorm.DB, entity *domain.User) (*domain.User, error)
	MarkVerified(db *gorm.DB, email string) error
	UpdateUserHandle(db *gorm.DB, email string, handle []byte) error
	GetPasskey(db *gorm.DB, email string) (*domain.Passkey, error)
	SavePasskey(db *gorm.DB, email string, cred *webauthn.Credential) error
	UpdateSignCount(db *gorm.DB, credentialID []byte, signCount uint32) error
}

type UserRepository struct {
}

func NewUserRepository() IUserRepository {
	return &UserRepository{}
}

func (u *UserRepository) Exists(db *gorm.DB, email string) (bool, error) {
	var count int64
	if err := db.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (u *UserRepository) GetUserByEmail(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) GetUserWithPasskey(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	if err := db.Preload("Passkey").Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) Create(db *gorm.DB, entity *domain.User) (*domain.User, error) {
	return entity, db.Create(entity).Error
}

func (u *UserRepository) MarkVerified(db *gorm.DB, email string) error {
	return db.Model(&domain.User{}).
		Where("email = ?", email).
		Update("email_verified", true).Error
}

func (u *UserRepository) UpdateUserHandle(db *gorm.DB, email string, handle []byte) error {
	return db.Model(&domain.User{}).
		Where("email = ?", email).
		Update("user_handle", handle).Error
}

func (u *UserRepository) GetPasskey(db *gorm.DB, email string) (*domain.Passkey, error) {
	user, err := u.GetUserWithPasskey(db, email)
	if err != nil {
		return nil, err
	}
	return user.Passkey, nil
}

// SavePasskey stores the verified credential for a user, replacing any
// previous one. A user holds at most one passkey, so the write is an
// upsert keyed on user_id.
func (u *UserRepository) SavePasskey(db *gorm.DB, email string, cred *webauthn.Credential) error {
	user, err := u.GetUserByEmail(db, email)
	if err != nil {
		return err
	}

	authBytes, err := json.Marshal(cred.Authenticator)
	if err != nil {
		return err
	}

	passkey := domain.Passkey{
		UserID:          user.Id,
		CredentialID:    cred.ID,
		PublicKey:       cred.PublicKey,
		SignCount:       cred.Authenticator.SignCount,
		AAGUID:          cred.Authenticator.AAGUID,
		AttestationType: cred.AttestationType,
		BackupEligible:  cred.Flags.BackupEligible,
		BackupState:     cred.Flags.BackupState,
		Authenticator:   authBytes,
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"credential_id", "public_key", "sign_count", "aa_guid",
			"attestation_type", "backup_eligible", "backup_state", "authenticator",
		}),
	}).Create(&passkey).Error
}

func (u *UserRepository) UpdateSignCount(db *gorm.DB, credentialID []byte, signCount uint32) error {
	return db.Model(&domain.Passkey{}).
		Where("credential_id = ?", credentialID).
		Update("sign_count", signCount).Error
}
