package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/merchlink/staffing-backend/internal/models"
)

// UserRepository handles user database operations
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `u.id, u.email, u.password_hash, u.first_name, u.last_name,
       u.role, u.agency_id, a.name AS agency_name, u.status, u.created_at, u.updated_at`

// GetUserByID retrieves a user with their agency label
func (r *UserRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := fmt.Sprintf(`
		SELECT %s
		FROM users u
		LEFT JOIN agencies a ON a.id = u.agency_id
		WHERE u.id = $1`, userColumns)

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := fmt.Sprintf(`
		SELECT %s
		FROM users u
		LEFT JOIN agencies a ON a.id = u.agency_id
		WHERE u.email = $1`, userColumns)

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}
