package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecruitmentPlan() *models.RecruitmentPlan {
	workerID := uuid.New()
	recruiterID := uuid.New()
	offerID := uuid.New()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	return &models.RecruitmentPlan{
		Application: &models.JobApplication{
			ID:         uuid.New(),
			WorkerID:   workerID,
			JobOfferID: offerID,
			Status:     models.ApplicationStatusPending,
		},
		Offer: &models.JobOffer{
			ID:        offerID,
			Headcount: 2,
		},
		WorkerID:    workerID,
		RecruiterID: recruiterID,
		AgencyLabel: "Adecco",
		Sessions: []models.PlannedSession{
			{
				Date:            day,
				StartsAt:        day.Add(9 * time.Hour),
				EndsAt:          day.Add(17 * time.Hour),
				DurationMinutes: 480,
				NightMinutes:    0,
				HourlyRate:      11.50,
			},
		},
		NewContract: models.Contract{
			HourlyRate: 11.50,
			IFMRate:    0.10,
			CPRate:     0.10,
		},
	}
}

func expectEmptyScheduleWindow(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`FROM work_sessions ws`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "contract_id", "job_offer_id", "date",
			"starts_at", "ends_at", "duration_minutes", "night_minutes",
			"distance_override", "effective_distance", "recommended",
			"hourly_rate", "status", "created_at", "updated_at",
		}))
	mock.ExpectQuery(`FROM unavailabilities`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "worker_id", "day", "note", "created_at"}))
}

func TestExecuteRecruitment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRecruitmentRepository(sqlx.NewDb(db, "sqlmock"))

	t.Run("Success With Existing Contract", func(t *testing.T) {
		plan := newRecruitmentPlan()
		contractID := uuid.New()
		sessionID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM job_applications`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
		mock.ExpectQuery(`SELECT id FROM contracts`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(contractID))
		expectEmptyScheduleWindow(mock)
		mock.ExpectQuery(`INSERT INTO work_sessions`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(sessionID))
		mock.ExpectExec(`UPDATE job_applications SET status = 'accepted'`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM job_applications`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectCommit()

		result, err := repo.ExecuteRecruitment(plan)
		require.NoError(t, err)
		assert.Equal(t, contractID, result.ContractID)
		assert.False(t, result.ContractCreated)
		assert.Equal(t, []uuid.UUID{sessionID}, result.SessionIDs)
		assert.False(t, result.OfferFilled)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Creates Contract On First Hire", func(t *testing.T) {
		plan := newRecruitmentPlan()
		contractID := uuid.New()
		sessionID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM job_applications`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
		mock.ExpectQuery(`SELECT id FROM contracts`).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`INSERT INTO contracts`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(contractID))
		expectEmptyScheduleWindow(mock)
		mock.ExpectQuery(`INSERT INTO work_sessions`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(sessionID))
		mock.ExpectExec(`UPDATE job_applications SET status = 'accepted'`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM job_applications`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectCommit()

		result, err := repo.ExecuteRecruitment(plan)
		require.NoError(t, err)
		assert.True(t, result.ContractCreated)
		assert.Equal(t, contractID, result.ContractID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Fills Offer At Headcount And Rejects The Rest", func(t *testing.T) {
		plan := newRecruitmentPlan()
		plan.Offer.Headcount = 1

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM job_applications`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
		mock.ExpectQuery(`SELECT id FROM contracts`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
		expectEmptyScheduleWindow(mock)
		mock.ExpectQuery(`INSERT INTO work_sessions`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
		mock.ExpectExec(`UPDATE job_applications SET status = 'accepted'`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM job_applications`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(`UPDATE job_offers SET status = 'filled'`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE job_applications SET status = 'rejected'`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		result, err := repo.ExecuteRecruitment(plan)
		require.NoError(t, err)
		assert.True(t, result.OfferFilled)
		assert.Equal(t, 2, result.RejectedOthers)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Schedule Conflict Rolls Everything Back", func(t *testing.T) {
		plan := newRecruitmentPlan()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM job_applications`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
		mock.ExpectQuery(`SELECT id FROM contracts`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
		mock.ExpectQuery(`FROM work_sessions ws`).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "contract_id", "job_offer_id", "date",
				"starts_at", "ends_at", "duration_minutes", "night_minutes",
				"distance_override", "effective_distance", "recommended",
				"hourly_rate", "status", "created_at", "updated_at",
			}).AddRow(
				uuid.New(), uuid.New(), nil, plan.Sessions[0].Date,
				plan.Sessions[0].Date.Add(8*time.Hour), plan.Sessions[0].Date.Add(16*time.Hour), 480, 0,
				nil, 0.0, false,
				12.0, "accepted", now, now,
			))
		mock.ExpectQuery(`FROM unavailabilities`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "worker_id", "day", "note", "created_at"}))
		mock.ExpectRollback()

		result, err := repo.ExecuteRecruitment(plan)
		require.Error(t, err)
		assert.Nil(t, result)

		var conflict *models.ScheduleConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "overlaps existing mission", conflict.Reason)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Accepted Application Fails Fast", func(t *testing.T) {
		plan := newRecruitmentPlan()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM job_applications`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("accepted"))
		mock.ExpectRollback()

		result, err := repo.ExecuteRecruitment(plan)
		require.Error(t, err)
		assert.Nil(t, result)

		var stateErr *models.StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Contains(t, stateErr.Message, "already recruited")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Withdrawn Application Rejected", func(t *testing.T) {
		plan := newRecruitmentPlan()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM job_applications`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("withdrawn"))
		mock.ExpectRollback()

		_, err := repo.ExecuteRecruitment(plan)
		require.Error(t, err)

		var stateErr *models.StateError
		require.ErrorAs(t, err, &stateErr)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCancelRecruitment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRecruitmentRepository(sqlx.NewDb(db, "sqlmock"))

	app := &models.JobApplication{
		ID:         uuid.New(),
		WorkerID:   uuid.New(),
		JobOfferID: uuid.New(),
		Status:     models.ApplicationStatusAccepted,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM job_applications`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("accepted"))
		mock.ExpectExec(`DELETE FROM work_sessions`).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`UPDATE job_applications SET status = 'pending'`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE job_offers SET status = 'published'`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CancelRecruitment(app)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Accepted", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM job_applications`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
		mock.ExpectRollback()

		err := repo.CancelRecruitment(app)
		require.Error(t, err)

		var stateErr *models.StateError
		require.ErrorAs(t, err, &stateErr)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
