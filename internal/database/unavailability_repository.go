package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/merchlink/staffing-backend/internal/models"
)

// UnavailabilityRepository handles worker unavailability operations
type UnavailabilityRepository struct {
	db DB
}

// NewUnavailabilityRepository creates a new UnavailabilityRepository
func NewUnavailabilityRepository(db DB) *UnavailabilityRepository {
	return &UnavailabilityRepository{db: db}
}

// Create declares a day off. The (worker_id, day) unique constraint rejects
// duplicate declarations.
func (r *UnavailabilityRepository) Create(u *models.Unavailability) error {
	query := `
		INSERT INTO unavailabilities (worker_id, day, note)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(query, u.WorkerID, u.Day, u.Note).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return models.ValidationErrors{"day": "already declared unavailable"}
		}
		return fmt.Errorf("failed to create unavailability: %w", err)
	}
	return nil
}

// Delete removes a declared day off
func (r *UnavailabilityRepository) Delete(id, workerID uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM unavailabilities WHERE id = $1 AND worker_id = $2`, id, workerID)
	if err != nil {
		return fmt.Errorf("failed to delete unavailability: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("unavailability not found: %w", models.ErrNotFound)
	}
	return nil
}

// GetByWorkerAndDay retrieves the unavailability rows for one worker/day
func (r *UnavailabilityRepository) GetByWorkerAndDay(workerID uuid.UUID, day time.Time) ([]models.Unavailability, error) {
	query := `
		SELECT id, worker_id, day, note, created_at
		FROM unavailabilities
		WHERE worker_id = $1 AND day = $2::date`

	var rows []models.Unavailability
	if err := r.db.Select(&rows, query, workerID, day); err != nil {
		return nil, fmt.Errorf("failed to fetch unavailabilities: %w", err)
	}
	return rows, nil
}

// ListByWorker retrieves all declared days off for a worker
func (r *UnavailabilityRepository) ListByWorker(workerID uuid.UUID) ([]models.Unavailability, error) {
	query := `
		SELECT id, worker_id, day, note, created_at
		FROM unavailabilities
		WHERE worker_id = $1
		ORDER BY day`

	var rows []models.Unavailability
	if err := r.db.Select(&rows, query, workerID); err != nil {
		return nil, fmt.Errorf("failed to list unavailabilities: %w", err)
	}
	return rows, nil
}
