package identity

import (
	"time"

	"github.com/agencydesk/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents an authenticated back-office user. Users are created by
// the seed process only in the current scope.
type User struct {
	shared.BaseEntity
	Name         string `gorm:"size:100;not null" json:"name"`
	Phone        string `gorm:"size:20" json:"phone"`
	Email        string `gorm:"size:200;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
}

// TableName overrides the gorm table name
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with a bcrypt-hashed password
func NewUser(name, phone, email, password string) (*User, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "User name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Email cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	return &User{
		Name:         name,
		Phone:        phone,
		Email:        email,
		PasswordHash: string(hash),
	}, nil
}

// SetPassword replaces the stored password hash
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError(shared.CodeValidation, "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
