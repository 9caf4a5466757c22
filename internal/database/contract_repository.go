package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/merchlink/staffing-backend/internal/models"
)

// ContractRepository handles contract database operations
type ContractRepository struct {
	db DB
}

// NewContractRepository creates a new ContractRepository
func NewContractRepository(db DB) *ContractRepository {
	return &ContractRepository{db: db}
}

const contractColumns = `id, worker_id, recruiter_id, agency_label,
       hourly_rate, night_rate, ifm_rate, cp_rate,
       km_rate, km_cap, km_unlimited, created_at, updated_at`

// GetByID retrieves a contract by ID
func (r *ContractRepository) GetByID(id uuid.UUID) (*models.Contract, error) {
	contract := &models.Contract{}
	query := fmt.Sprintf(`SELECT %s FROM contracts WHERE id = $1`, contractColumns)

	err := r.db.Get(contract, query, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("contract not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contract: %w", err)
	}
	return contract, nil
}

// GetByWorkerAndRecruiter retrieves the reusable contract for a
// (worker, recruiter) pair, or nil when none exists yet.
func (r *ContractRepository) GetByWorkerAndRecruiter(workerID, recruiterID uuid.UUID) (*models.Contract, error) {
	contract := &models.Contract{}
	query := fmt.Sprintf(`
		SELECT %s FROM contracts
		WHERE worker_id = $1 AND recruiter_id = $2`, contractColumns)

	err := r.db.Get(contract, query, workerID, recruiterID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contract: %w", err)
	}
	return contract, nil
}

// ListByWorker retrieves all contracts held by a worker
func (r *ContractRepository) ListByWorker(workerID uuid.UUID) ([]models.Contract, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM contracts
		WHERE worker_id = $1
		ORDER BY created_at DESC`, contractColumns)

	var contracts []models.Contract
	if err := r.db.Select(&contracts, query, workerID); err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

// Create inserts a manually created contract
func (r *ContractRepository) Create(c *models.Contract) error {
	query := `
		INSERT INTO contracts (
			worker_id, recruiter_id, agency_label,
			hourly_rate, night_rate, ifm_rate, cp_rate,
			km_rate, km_cap, km_unlimited
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query,
		c.WorkerID, c.RecruiterID, c.AgencyLabel,
		c.HourlyRate, c.NightRate, c.IFMRate, c.CPRate,
		c.KmRate, c.KmCap, c.KmUnlimited,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

// Delete removes a contract; work_sessions cascade at the schema level.
func (r *ContractRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("contract not found: %w", models.ErrNotFound)
	}
	return nil
}
