package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/merchlink/staffing-backend/internal/models"
)

// RecruitmentRepository executes the multi-row recruitment and cancellation
// transactions. Every write path here is all-or-nothing: a conflict on any
// day of the expansion rolls back everything already inserted.
type RecruitmentRepository struct {
	db *sqlx.DB
}

// NewRecruitmentRepository creates a new RecruitmentRepository
func NewRecruitmentRepository(db *sqlx.DB) *RecruitmentRepository {
	return &RecruitmentRepository{db: db}
}

// ExecuteRecruitment turns an accepted application plan into a contract plus
// a batch of accepted work sessions inside one transaction.
//
// Overlap and unavailability checks re-read committed state on the
// transaction's connection, so concurrent hires of the same worker serialize
// on the database rather than on application locks.
func (r *RecruitmentRepository) ExecuteRecruitment(plan *models.RecruitmentPlan) (*models.RecruitmentResult, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Re-read the application state: recruiting anything but a pending
	// application is a precondition failure, not a silent no-op.
	var status models.JobApplicationStatus
	err = tx.Get(&status, `SELECT status FROM job_applications WHERE id = $1`, plan.Application.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read application: %w", err)
	}
	if status == models.ApplicationStatusAccepted {
		return nil, &models.StateError{Message: "worker already recruited for this offer"}
	}
	if status != models.ApplicationStatusPending {
		return nil, &models.StateError{Message: fmt.Sprintf("application is %s, not pending", status)}
	}

	// 2. Resolve the reusable contract, creating it on first hire.
	result := &models.RecruitmentResult{}
	contractID, created, err := r.resolveContract(tx, plan)
	if err != nil {
		return nil, err
	}
	result.ContractID = contractID
	result.ContractCreated = created

	// 3. Insert each planned session, re-validating the worker's whole
	// schedule per day. The first conflicting day aborts the recruitment.
	for _, ps := range plan.Sessions {
		if conflict, err := r.findConflict(tx, plan.WorkerID, ps); err != nil {
			return nil, err
		} else if conflict != nil {
			return nil, conflict
		}

		var sessionID uuid.UUID
		err = tx.QueryRowx(`
			INSERT INTO work_sessions (
				contract_id, job_offer_id, date, starts_at, ends_at,
				duration_minutes, night_minutes,
				effective_distance, recommended, hourly_rate, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, 0, false, $8, 'accepted')
			RETURNING id`,
			contractID, plan.Offer.ID, ps.Date, ps.StartsAt, ps.EndsAt,
			ps.DurationMinutes, ps.NightMinutes, ps.HourlyRate,
		).Scan(&sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to create session for %s: %w", ps.Date.Format("2006-01-02"), err)
		}
		result.SessionIDs = append(result.SessionIDs, sessionID)
	}

	// 4. Accept the application.
	if _, err := tx.Exec(`
		UPDATE job_applications SET status = 'accepted', updated_at = NOW() WHERE id = $1`,
		plan.Application.ID); err != nil {
		return nil, fmt.Errorf("failed to accept application: %w", err)
	}

	// 5. Close the offer when the headcount is reached, rejecting every
	// application still pending.
	var acceptedCount int
	err = tx.Get(&acceptedCount, `
		SELECT COUNT(*) FROM job_applications
		WHERE job_offer_id = $1 AND status = 'accepted'`, plan.Offer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count accepted applications: %w", err)
	}
	if acceptedCount >= plan.Offer.Headcount {
		if _, err := tx.Exec(`
			UPDATE job_offers SET status = 'filled', updated_at = NOW() WHERE id = $1`,
			plan.Offer.ID); err != nil {
			return nil, fmt.Errorf("failed to mark offer filled: %w", err)
		}
		rejected, err := tx.Exec(`
			UPDATE job_applications SET status = 'rejected', updated_at = NOW()
			WHERE job_offer_id = $1 AND status = 'pending'`, plan.Offer.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reject remaining applications: %w", err)
		}
		rows, _ := rejected.RowsAffected()
		result.OfferFilled = true
		result.RejectedOthers = int(rows)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

// CancelRecruitment reverses one recruitment: deletes exactly the sessions
// tied to this offer under this worker's contracts, resets the application
// to pending and reopens a filled offer. The contract is kept for reuse.
func (r *RecruitmentRepository) CancelRecruitment(app *models.JobApplication) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.JobApplicationStatus
	err = tx.Get(&status, `SELECT status FROM job_applications WHERE id = $1`, app.ID)
	if err != nil {
		return fmt.Errorf("failed to read application: %w", err)
	}
	if status != models.ApplicationStatusAccepted {
		return &models.StateError{Message: fmt.Sprintf("application is %s, not accepted", status)}
	}

	// Scoped to this offer AND this worker's contracts: other recruitments
	// sharing the contract keep their sessions.
	if _, err := tx.Exec(`
		DELETE FROM work_sessions
		WHERE job_offer_id = $1
		  AND contract_id IN (SELECT id FROM contracts WHERE worker_id = $2)`,
		app.JobOfferID, app.WorkerID); err != nil {
		return fmt.Errorf("failed to delete recruited sessions: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE job_applications SET status = 'pending', updated_at = NOW() WHERE id = $1`,
		app.ID); err != nil {
		return fmt.Errorf("failed to reset application: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE job_offers SET status = 'published', updated_at = NOW()
		WHERE id = $1 AND status = 'filled'`,
		app.JobOfferID); err != nil {
		return fmt.Errorf("failed to reopen offer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// resolveContract finds the (worker, recruiter) contract inside the
// transaction or creates it from the plan's template. Auto-creation happens
// only on this path; proposal acceptance never reaches it.
func (r *RecruitmentRepository) resolveContract(tx *sqlx.Tx, plan *models.RecruitmentPlan) (uuid.UUID, bool, error) {
	var contractID uuid.UUID
	err := tx.Get(&contractID, `
		SELECT id FROM contracts WHERE worker_id = $1 AND recruiter_id = $2`,
		plan.WorkerID, plan.RecruiterID)
	if err == nil {
		return contractID, false, nil
	}
	if err != sql.ErrNoRows {
		return uuid.Nil, false, fmt.Errorf("failed to resolve contract: %w", err)
	}

	c := plan.NewContract
	err = tx.QueryRowx(`
		INSERT INTO contracts (
			worker_id, recruiter_id, agency_label,
			hourly_rate, night_rate, ifm_rate, cp_rate,
			km_rate, km_cap, km_unlimited
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		plan.WorkerID, plan.RecruiterID, plan.AgencyLabel,
		c.HourlyRate, c.NightRate, c.IFMRate, c.CPRate,
		c.KmRate, c.KmCap, c.KmUnlimited,
	).Scan(&contractID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to create contract: %w", err)
	}
	return contractID, true, nil
}

// findConflict re-reads the worker's committed schedule for one planned day
// on the transaction connection and applies the overlap rules.
func (r *RecruitmentRepository) findConflict(tx *sqlx.Tx, workerID uuid.UUID, ps models.PlannedSession) (*models.ScheduleConflictError, error) {
	var existing []models.WorkSession
	err := tx.Select(&existing, `
		SELECT ws.id, ws.contract_id, ws.job_offer_id, ws.date,
		       ws.starts_at, ws.ends_at, ws.duration_minutes, ws.night_minutes,
		       ws.distance_override, ws.effective_distance, ws.recommended,
		       ws.hourly_rate, ws.status, ws.created_at, ws.updated_at
		FROM work_sessions ws
		JOIN contracts c ON c.id = ws.contract_id
		WHERE c.worker_id = $1
		  AND ws.status != 'declined'
		  AND ws.date BETWEEN $2::date - INTERVAL '1 day' AND $2::date + INTERVAL '1 day'`,
		workerID, ps.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions in window: %w", err)
	}

	var unavailable []models.Unavailability
	err = tx.Select(&unavailable, `
		SELECT id, worker_id, day, note, created_at
		FROM unavailabilities
		WHERE worker_id = $1 AND day = $2::date`,
		workerID, ps.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unavailabilities: %w", err)
	}

	return models.FindScheduleConflict(ps.Date, ps.StartsAt, ps.EndsAt, nil, existing, unavailable), nil
}
