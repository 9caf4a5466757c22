package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/merchlink/staffing-backend/internal/models"
)

// JobApplicationRepository handles job application operations
type JobApplicationRepository struct {
	db DB
}

// NewJobApplicationRepository creates a new JobApplicationRepository
func NewJobApplicationRepository(db DB) *JobApplicationRepository {
	return &JobApplicationRepository{db: db}
}

const applicationColumns = `id, worker_id, job_offer_id, status, snapshot, created_at, updated_at`

// GetByID retrieves an application by ID
func (r *JobApplicationRepository) GetByID(id uuid.UUID) (*models.JobApplication, error) {
	app := &models.JobApplication{}
	query := fmt.Sprintf(`SELECT %s FROM job_applications WHERE id = $1`, applicationColumns)

	err := r.db.Get(app, query, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("application not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}
	return app, nil
}

// Create inserts an application with its frozen offer snapshot. The
// (worker_id, job_offer_id) unique constraint rejects double applications.
func (r *JobApplicationRepository) Create(a *models.JobApplication) error {
	query := `
		INSERT INTO job_applications (worker_id, job_offer_id, status, snapshot)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query, a.WorkerID, a.JobOfferID, a.Status, a.Snapshot).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return models.ValidationErrors{"job_offer_id": "already applied to this offer"}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// UpdateStatus updates an application's status
func (r *JobApplicationRepository) UpdateStatus(id uuid.UUID, status models.JobApplicationStatus) error {
	result, err := r.db.Exec(`
		UPDATE job_applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("application not found: %w", models.ErrNotFound)
	}
	return nil
}

// ListByOffer retrieves all applications for one offer
func (r *JobApplicationRepository) ListByOffer(offerID uuid.UUID) ([]models.JobApplication, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM job_applications
		WHERE job_offer_id = $1
		ORDER BY created_at`, applicationColumns)

	var apps []models.JobApplication
	if err := r.db.Select(&apps, query, offerID); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListByWorker retrieves a worker's applications, newest first
func (r *JobApplicationRepository) ListByWorker(workerID uuid.UUID, limit, offset int) ([]models.JobApplication, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM job_applications
		WHERE worker_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, applicationColumns)

	var apps []models.JobApplication
	if err := r.db.Select(&apps, query, workerID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}
