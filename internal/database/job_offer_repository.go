package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/merchlink/staffing-backend/internal/models"
)

// JobOfferRepository handles job offer and slot operations
type JobOfferRepository struct {
	db DB
}

// NewJobOfferRepository creates a new JobOfferRepository
func NewJobOfferRepository(db DB) *JobOfferRepository {
	return &JobOfferRepository{db: db}
}

const offerColumns = `id, recruiter_id, title, company, mission_type, contract_type,
       location, starts_on, ends_on, start_time, end_time, break_minutes,
       hourly_rate, night_rate, ifm_rate, cp_rate,
       km_rate, km_cap, km_unlimited, headcount, status, created_at, updated_at`

// GetByID retrieves an offer with its slots
func (r *JobOfferRepository) GetByID(id uuid.UUID) (*models.JobOffer, error) {
	offer := &models.JobOffer{}
	query := fmt.Sprintf(`SELECT %s FROM job_offers WHERE id = $1`, offerColumns)

	err := r.db.Get(offer, query, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job offer not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job offer: %w", err)
	}

	slots, err := r.GetSlots(id)
	if err != nil {
		return nil, err
	}
	offer.Slots = slots
	return offer, nil
}

// GetSlots retrieves the per-day slots of an offer ordered by date
func (r *JobOfferRepository) GetSlots(offerID uuid.UUID) ([]models.JobOfferSlot, error) {
	query := `
		SELECT id, job_offer_id, slot_date, start_time, end_time, break_minutes
		FROM job_offer_slots
		WHERE job_offer_id = $1
		ORDER BY slot_date`

	var slots []models.JobOfferSlot
	if err := r.db.Select(&slots, query, offerID); err != nil {
		return nil, fmt.Errorf("failed to fetch offer slots: %w", err)
	}
	return slots, nil
}

// Create inserts an offer
func (r *JobOfferRepository) Create(o *models.JobOffer) error {
	query := `
		INSERT INTO job_offers (
			recruiter_id, title, company, mission_type, contract_type,
			location, starts_on, ends_on, start_time, end_time, break_minutes,
			hourly_rate, night_rate, ifm_rate, cp_rate,
			km_rate, km_cap, km_unlimited, headcount, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query,
		o.RecruiterID, o.Title, o.Company, o.MissionType, o.ContractType,
		o.Location, o.StartsOn, o.EndsOn, o.StartTime, o.EndTime, o.BreakMinutes,
		o.HourlyRate, o.NightRate, o.IFMRate, o.CPRate,
		o.KmRate, o.KmCap, o.KmUnlimited, o.Headcount, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job offer: %w", err)
	}
	return nil
}

// Update rewrites an offer's editable fields
func (r *JobOfferRepository) Update(o *models.JobOffer) error {
	query := `
		UPDATE job_offers
		SET title = $1, company = $2, mission_type = $3, contract_type = $4,
		    location = $5, starts_on = $6, ends_on = $7,
		    start_time = $8, end_time = $9, break_minutes = $10,
		    hourly_rate = $11, night_rate = $12, ifm_rate = $13, cp_rate = $14,
		    km_rate = $15, km_cap = $16, km_unlimited = $17, headcount = $18,
		    updated_at = NOW()
		WHERE id = $19`

	result, err := r.db.Exec(query,
		o.Title, o.Company, o.MissionType, o.ContractType,
		o.Location, o.StartsOn, o.EndsOn,
		o.StartTime, o.EndTime, o.BreakMinutes,
		o.HourlyRate, o.NightRate, o.IFMRate, o.CPRate,
		o.KmRate, o.KmCap, o.KmUnlimited, o.Headcount, o.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job offer: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("job offer not found: %w", models.ErrNotFound)
	}
	return nil
}

// UpdateStatus applies an offer status transition
func (r *JobOfferRepository) UpdateStatus(id uuid.UUID, status models.JobOfferStatus) error {
	result, err := r.db.Exec(`
		UPDATE job_offers SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update offer status: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("job offer not found: %w", models.ErrNotFound)
	}
	return nil
}

// ReplaceSlots rewrites an offer's slot schedule in one transaction
func (r *JobOfferRepository) ReplaceSlots(offerID uuid.UUID, slots []models.JobOfferSlot) error {
	pg, ok := r.db.(*PostgresDB)
	if !ok {
		return fmt.Errorf("slot replacement requires a transactional connection")
	}
	tx, err := pg.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM job_offer_slots WHERE job_offer_id = $1`, offerID); err != nil {
		return fmt.Errorf("failed to clear offer slots: %w", err)
	}
	for i := range slots {
		slots[i].JobOfferID = offerID
		err := tx.QueryRowx(`
			INSERT INTO job_offer_slots (job_offer_id, slot_date, start_time, end_time, break_minutes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			offerID, slots[i].SlotDate, slots[i].StartTime, slots[i].EndTime, slots[i].BreakMinutes,
		).Scan(&slots[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert offer slot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ArchivePastOffers archives published or filled offers whose last day is
// behind the given date. Returns the number of offers archived.
func (r *JobOfferRepository) ArchivePastOffers(before time.Time) (int64, error) {
	result, err := r.db.Exec(`
		UPDATE job_offers
		SET status = 'archived', updated_at = NOW()
		WHERE status IN ('published', 'filled') AND ends_on < $1::date`,
		before)
	if err != nil {
		return 0, fmt.Errorf("failed to archive past offers: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

// ListPublished retrieves open offers for browsing
func (r *JobOfferRepository) ListPublished(limit, offset int) ([]models.JobOffer, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM job_offers
		WHERE status = 'published'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, offerColumns)

	var offers []models.JobOffer
	if err := r.db.Select(&offers, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}
