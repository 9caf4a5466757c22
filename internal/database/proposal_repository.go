package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/merchlink/staffing-backend/internal/models"
)

// ProposalRepository handles mission proposal operations. Acceptance is a
// multi-row transaction, so the repository holds the sqlx handle directly.
type ProposalRepository struct {
	db *sqlx.DB
}

// NewProposalRepository creates a new ProposalRepository
func NewProposalRepository(db *sqlx.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

const proposalColumns = `id, recruiter_id, worker_id, company, day,
       start_time, end_time, hourly_rate, status, expires_at, created_at, updated_at`

// GetByID retrieves a proposal by ID
func (r *ProposalRepository) GetByID(id uuid.UUID) (*models.MissionProposal, error) {
	p := &models.MissionProposal{}
	query := fmt.Sprintf(`SELECT %s FROM mission_proposals WHERE id = $1`, proposalColumns)

	err := r.db.Get(p, query, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("proposal not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch proposal: %w", err)
	}
	return p, nil
}

// Create inserts a proposal
func (r *ProposalRepository) Create(p *models.MissionProposal) error {
	query := `
		INSERT INTO mission_proposals (
			recruiter_id, worker_id, company, day,
			start_time, end_time, hourly_rate, status, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query,
		p.RecruiterID, p.WorkerID, p.Company, p.Day,
		p.StartTime, p.EndTime, p.HourlyRate, p.Status, p.ExpiresAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create proposal: %w", err)
	}
	return nil
}

// UpdateStatus moves a proposal to a new status
func (r *ProposalRepository) UpdateStatus(id uuid.UUID, status models.MissionProposalStatus) error {
	result, err := r.db.Exec(`
		UPDATE mission_proposals SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update proposal status: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("proposal not found: %w", models.ErrNotFound)
	}
	return nil
}

// AcceptIntoSession converts a pending proposal into one accepted work
// session inside a single transaction: the session insert and the status
// flip commit together or not at all. The status is re-read on the
// transaction connection so a concurrent acceptance fails here rather than
// leaving two sessions.
func (r *ProposalRepository) AcceptIntoSession(proposalID uuid.UUID, session *models.WorkSession) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.MissionProposalStatus
	err = tx.Get(&status, `SELECT status FROM mission_proposals WHERE id = $1`, proposalID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("proposal not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read proposal: %w", err)
	}
	if status != models.ProposalStatusPending {
		return &models.StateError{Message: fmt.Sprintf("proposal is %s, not pending", status)}
	}

	err = tx.QueryRowx(`
		INSERT INTO work_sessions (
			contract_id, job_offer_id, date, starts_at, ends_at,
			duration_minutes, night_minutes,
			distance_override, effective_distance, recommended,
			hourly_rate, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		session.ContractID, session.JobOfferID, session.Date, session.StartsAt, session.EndsAt,
		session.DurationMinutes, session.NightMinutes,
		session.DistanceOverride, session.EffectiveDistance, session.Recommended,
		session.HourlyRate, session.Status,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create work session: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE mission_proposals SET status = 'accepted', updated_at = NOW() WHERE id = $1`,
		proposalID); err != nil {
		return fmt.Errorf("failed to update proposal status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ExpireStale marks pending proposals whose invitation lapsed before the
// given instant. Used by the periodic sweep, never by request paths.
func (r *ProposalRepository) ExpireStale(now time.Time) (int64, error) {
	result, err := r.db.Exec(`
		UPDATE mission_proposals
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'pending' AND expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale proposals: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

// ListByWorker retrieves proposals addressed to a worker
func (r *ProposalRepository) ListByWorker(workerID uuid.UUID) ([]models.MissionProposal, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM mission_proposals
		WHERE worker_id = $1
		ORDER BY created_at DESC`, proposalColumns)

	var proposals []models.MissionProposal
	if err := r.db.Select(&proposals, query, workerID); err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return proposals, nil
}
