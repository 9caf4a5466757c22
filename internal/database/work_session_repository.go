package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/merchlink/staffing-backend/internal/models"
)

// WorkSessionRepository handles work session and kilometer log operations.
// Kilometer log mutations are transactional: the log write and the parent
// session's effective-distance recompute commit together.
type WorkSessionRepository struct {
	db *sqlx.DB
}

// NewWorkSessionRepository creates a new WorkSessionRepository
func NewWorkSessionRepository(db *sqlx.DB) *WorkSessionRepository {
	return &WorkSessionRepository{db: db}
}

const sessionColumns = `ws.id, ws.contract_id, ws.job_offer_id, ws.date,
       ws.starts_at, ws.ends_at, ws.duration_minutes, ws.night_minutes,
       ws.distance_override, ws.effective_distance, ws.recommended,
       ws.hourly_rate, ws.status, ws.created_at, ws.updated_at`

// GetByID retrieves a work session by ID
func (r *WorkSessionRepository) GetByID(id uuid.UUID) (*models.WorkSession, error) {
	session := &models.WorkSession{}
	query := fmt.Sprintf(`SELECT %s FROM work_sessions ws WHERE ws.id = $1`, sessionColumns)

	err := r.db.Get(session, query, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("work session not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work session: %w", err)
	}
	return session, nil
}

// Create inserts a normalized session
func (r *WorkSessionRepository) Create(s *models.WorkSession) error {
	query := `
		INSERT INTO work_sessions (
			contract_id, job_offer_id, date, starts_at, ends_at,
			duration_minutes, night_minutes,
			distance_override, effective_distance, recommended,
			hourly_rate, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query,
		s.ContractID, s.JobOfferID, s.Date, s.StartsAt, s.EndsAt,
		s.DurationMinutes, s.NightMinutes,
		s.DistanceOverride, s.EffectiveDistance, s.Recommended,
		s.HourlyRate, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create work session: %w", err)
	}
	return nil
}

// Update rewrites a session's normalized fields
func (r *WorkSessionRepository) Update(s *models.WorkSession) error {
	query := `
		UPDATE work_sessions
		SET date = $1, starts_at = $2, ends_at = $3,
		    duration_minutes = $4, night_minutes = $5,
		    distance_override = $6, effective_distance = $7, recommended = $8,
		    hourly_rate = $9, status = $10, updated_at = NOW()
		WHERE id = $11`

	result, err := r.db.Exec(query,
		s.Date, s.StartsAt, s.EndsAt,
		s.DurationMinutes, s.NightMinutes,
		s.DistanceOverride, s.EffectiveDistance, s.Recommended,
		s.HourlyRate, s.Status, s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update work session: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("work session not found: %w", models.ErrNotFound)
	}
	return nil
}

// Delete removes a session and its kilometer logs (schema cascade)
func (r *WorkSessionRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM work_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work session: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("work session not found: %w", models.ErrNotFound)
	}
	return nil
}

// GetCommittedInWindow retrieves the worker's non-declined sessions, across
// every contract they hold, whose date falls within ±1 day of the given
// date. The window catches shifts that cross midnight into the candidate day.
func (r *WorkSessionRepository) GetCommittedInWindow(workerID uuid.UUID, date time.Time) ([]models.WorkSession, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM work_sessions ws
		JOIN contracts c ON c.id = ws.contract_id
		WHERE c.worker_id = $1
		  AND ws.status != 'declined'
		  AND ws.date BETWEEN $2::date - INTERVAL '1 day' AND $2::date + INTERVAL '1 day'
		ORDER BY ws.starts_at`, sessionColumns)

	var sessions []models.WorkSession
	if err := r.db.Select(&sessions, query, workerID, date); err != nil {
		return nil, fmt.Errorf("failed to fetch sessions in window: %w", err)
	}
	return sessions, nil
}

// GetWithContract retrieves one session joined with its contract's agency
// label and rate configuration.
func (r *WorkSessionRepository) GetWithContract(id uuid.UUID) (*models.SessionWithContract, error) {
	session := &models.SessionWithContract{}
	query := fmt.Sprintf(`
		SELECT %s,
		       c.agency_label AS agency_label,
		       c.night_rate AS contract_night_rate,
		       c.ifm_rate AS contract_ifm_rate,
		       c.cp_rate AS contract_cp_rate,
		       c.km_rate AS contract_km_rate,
		       c.km_cap AS contract_km_cap,
		       c.km_unlimited AS contract_km_unlimited
		FROM work_sessions ws
		JOIN contracts c ON c.id = ws.contract_id
		WHERE ws.id = $1`, sessionColumns)

	err := r.db.Get(session, query, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("work session not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work session: %w", err)
	}
	return session, nil
}

// ListForWorkerPeriod retrieves a worker's sessions in [from, to) joined
// with their contract's rate configuration, for aggregation.
func (r *WorkSessionRepository) ListForWorkerPeriod(workerID uuid.UUID, from, to time.Time) ([]models.SessionWithContract, error) {
	query := fmt.Sprintf(`
		SELECT %s,
		       c.agency_label AS agency_label,
		       c.night_rate AS contract_night_rate,
		       c.ifm_rate AS contract_ifm_rate,
		       c.cp_rate AS contract_cp_rate,
		       c.km_rate AS contract_km_rate,
		       c.km_cap AS contract_km_cap,
		       c.km_unlimited AS contract_km_unlimited
		FROM work_sessions ws
		JOIN contracts c ON c.id = ws.contract_id
		WHERE c.worker_id = $1
		  AND ws.date >= $2 AND ws.date < $3
		ORDER BY ws.date, ws.starts_at`, sessionColumns)

	var sessions []models.SessionWithContract
	if err := r.db.Select(&sessions, query, workerID, from, to); err != nil {
		return nil, fmt.Errorf("failed to fetch sessions for period: %w", err)
	}
	return sessions, nil
}

// ============================================================================
// KILOMETER LOGS
// ============================================================================

// GetKilometerLogs retrieves all distance lines of a session
func (r *WorkSessionRepository) GetKilometerLogs(sessionID uuid.UUID) ([]models.KilometerLog, error) {
	query := `
		SELECT id, work_session_id, label, distance_km, created_at
		FROM kilometer_logs
		WHERE work_session_id = $1
		ORDER BY created_at`

	var logs []models.KilometerLog
	if err := r.db.Select(&logs, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to fetch kilometer logs: %w", err)
	}
	return logs, nil
}

// AddKilometerLog inserts a distance line and recomputes the parent
// session's effective distance in the same transaction.
func (r *WorkSessionRepository) AddKilometerLog(l *models.KilometerLog) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowx(`
		INSERT INTO kilometer_logs (work_session_id, label, distance_km)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		l.WorkSessionID, l.Label, l.DistanceKm).
		Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create kilometer log: %w", err)
	}

	if err := r.recomputeEffectiveDistance(tx, l.WorkSessionID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteKilometerLog removes a distance line and recomputes the parent
// session's effective distance in the same transaction. Returns the
// session id the line belonged to.
func (r *WorkSessionRepository) DeleteKilometerLog(id uuid.UUID) (uuid.UUID, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var sessionID uuid.UUID
	err = tx.QueryRowx(`DELETE FROM kilometer_logs WHERE id = $1 RETURNING work_session_id`, id).
		Scan(&sessionID)
	if err == sql.ErrNoRows {
		return uuid.Nil, fmt.Errorf("kilometer log not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to delete kilometer log: %w", err)
	}

	if err := r.recomputeEffectiveDistance(tx, sessionID); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return sessionID, nil
}

// recomputeEffectiveDistance re-reads the session's override and remaining
// logs on the transaction connection and stores the resolved distance.
func (r *WorkSessionRepository) recomputeEffectiveDistance(tx *sqlx.Tx, sessionID uuid.UUID) error {
	var override *float64
	err := tx.Get(&override, `SELECT distance_override FROM work_sessions WHERE id = $1`, sessionID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("work session not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch work session: %w", err)
	}

	var logs []models.KilometerLog
	err = tx.Select(&logs, `
		SELECT id, work_session_id, label, distance_km, created_at
		FROM kilometer_logs
		WHERE work_session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to fetch kilometer logs: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE work_sessions
		SET effective_distance = $1, updated_at = NOW()
		WHERE id = $2`,
		models.ResolveEffectiveDistance(override, logs), sessionID)
	if err != nil {
		return fmt.Errorf("failed to update effective distance: %w", err)
	}
	return nil
}
