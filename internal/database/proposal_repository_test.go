package database

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptedSession() *models.WorkSession {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return &models.WorkSession{
		ContractID:      uuid.New(),
		Date:            date,
		StartsAt:        date.Add(9 * time.Hour),
		EndsAt:          date.Add(17 * time.Hour),
		DurationMinutes: 480,
		HourlyRate:      12.50,
		Status:          models.SessionStatusAccepted,
	}
}

func TestAcceptIntoSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProposalRepository(sqlx.NewDb(db, "sqlmock"))

	t.Run("Success", func(t *testing.T) {
		sessionID := uuid.New()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM mission_proposals`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
		mock.ExpectQuery(`INSERT INTO work_sessions`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(sessionID, now, now))
		mock.ExpectExec(`UPDATE mission_proposals SET status = 'accepted'`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		session := acceptedSession()
		err := repo.AcceptIntoSession(uuid.New(), session)
		require.NoError(t, err)
		assert.Equal(t, sessionID, session.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Status Update Failure Rolls Back The Session Insert", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM mission_proposals`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
		mock.ExpectQuery(`INSERT INTO work_sessions`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(uuid.New(), time.Now(), time.Now()))
		mock.ExpectExec(`UPDATE mission_proposals SET status = 'accepted'`).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.AcceptIntoSession(uuid.New(), acceptedSession())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update proposal status")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Accepted Fails Fast", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM mission_proposals`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("accepted"))
		mock.ExpectRollback()

		err := repo.AcceptIntoSession(uuid.New(), acceptedSession())
		require.Error(t, err)

		var stateErr *models.StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Contains(t, stateErr.Message, "not pending")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM mission_proposals`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}))
		mock.ExpectRollback()

		err := repo.AcceptIntoSession(uuid.New(), acceptedSession())
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateProposalStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProposalRepository(sqlx.NewDb(db, "sqlmock"))

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE mission_proposals SET status`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(uuid.New(), models.ProposalStatusDeclined)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE mission_proposals SET status`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(uuid.New(), models.ProposalStatusDeclined)
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
