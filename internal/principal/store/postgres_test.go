package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
)

func newMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgres(db), mock
}

var principalRowColumns = []string{"id", "name", "email", "phone", "government_id", "face_enrolled", "face_enrollment_date", "created_at"}

func TestPostgresStore_FindByGovernmentID(t *testing.T) {
	store, mock := newMock(t)
	principalID := id.NewPrincipalID()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM principals WHERE government_id = \$1`).
		WithArgs("GOV-9").
		WillReturnRows(sqlmock.NewRows(principalRowColumns).
			AddRow(principalID.String(), "Meera", "meera@example.org", "", "GOV-9", true, created, created))

	p, err := store.FindByGovernmentID(context.Background(), "GOV-9")
	require.NoError(t, err)
	assert.Equal(t, principalID, p.ID)
	assert.True(t, p.FaceEnrolled)
	require.NotNil(t, p.FaceEnrollmentDate)
	assert.Equal(t, created, *p.FaceEnrollmentDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindByIDNotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(`SELECT .+ FROM principals WHERE id = \$1`).
		WillReturnError(sql.ErrNoRows)

	_, err := store.FindByID(context.Background(), id.NewPrincipalID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestPostgresStore_CreateDuplicate(t *testing.T) {
	store, mock := newMock(t)
	p, err := models.NewPrincipal(id.NewPrincipalID(), "Meera", "meera@example.org", "", "GOV-9", time.Now())
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO principals`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "principals_email_key"})

	assert.ErrorIs(t, store.Create(context.Background(), p), sentinel.ErrAlreadyUsed)
}

func TestPostgresStore_UpdateFaceEnrollment(t *testing.T) {
	store, mock := newMock(t)
	principalID := id.NewPrincipalID()

	mock.ExpectExec(`UPDATE principals SET face_enrolled = \$2, face_enrollment_date = \$3 WHERE id = \$1`).
		WithArgs(sqlmock.AnyArg(), false, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.UpdateFaceEnrollment(context.Background(), principalID, false, nil))

	mock.ExpectExec(`UPDATE principals`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, store.UpdateFaceEnrollment(context.Background(), principalID, false, nil), sentinel.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
