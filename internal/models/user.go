package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the role of a platform user
// Matches PostgreSQL ENUM: user_role
type UserRole string

const (
	RoleMerch UserRole = "merch" // field worker performing sessions
	RoleFVE   UserRole = "fve"   // agency recruiter
	RoleAdmin UserRole = "admin"
)

// UserStatus represents the account status
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// User represents a platform user (users table)
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Role         UserRole   `db:"role" json:"role"`
	AgencyID     *uuid.UUID `db:"agency_id" json:"agency_id,omitempty"`
	AgencyName   *string    `db:"agency_name" json:"agency_name,omitempty"`
	Status       UserStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// IsWorker reports whether the user may own work sessions
func (u *User) IsWorker() bool {
	return u.Role == RoleMerch
}

// IsRecruiter reports whether the user may publish offers and recruit
func (u *User) IsRecruiter() bool {
	return u.Role == RoleFVE
}

// SetPassword hashes and stores the given plaintext password
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
