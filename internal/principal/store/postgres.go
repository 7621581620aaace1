package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/postgres"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
	txcontext "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/tx"
)

const principalColumns = `id, name, email, phone, government_id, face_enrolled, face_enrollment_date, created_at`

// PostgresStore persists principals in Postgres.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, p *models.Principal) error {
	query := `
		INSERT INTO principals (` + principalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(p.ID), p.Name, p.Email, p.Phone, p.GovernmentID,
		p.FaceEnrolled, p.FaceEnrollmentDate, p.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert principal: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, principalID id.PrincipalID) (*models.Principal, error) {
	return s.findOne(ctx, `WHERE id = $1`, uuid.UUID(principalID))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, address string) (*models.Principal, error) {
	return s.findOne(ctx, `WHERE LOWER(email) = LOWER($1)`, address)
}

func (s *PostgresStore) FindByGovernmentID(ctx context.Context, governmentID string) (*models.Principal, error) {
	return s.findOne(ctx, `WHERE government_id = $1`, governmentID)
}

func (s *PostgresStore) findOne(ctx context.Context, where string, arg any) (*models.Principal, error) {
	query := `SELECT ` + principalColumns + ` FROM principals ` + where
	var (
		p           models.Principal
		principalID uuid.UUID
		enrolledAt  sql.NullTime
	)
	err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query, arg).Scan(
		&principalID, &p.Name, &p.Email, &p.Phone, &p.GovernmentID,
		&p.FaceEnrolled, &enrolledAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find principal: %w", err)
	}
	p.ID = id.PrincipalID(principalID)
	if enrolledAt.Valid {
		t := enrolledAt.Time
		p.FaceEnrollmentDate = &t
	}
	return &p, nil
}

func (s *PostgresStore) UpdateFaceEnrollment(ctx context.Context, principalID id.PrincipalID, enrolled bool, at *time.Time) error {
	query := `UPDATE principals SET face_enrolled = $2, face_enrollment_date = $3 WHERE id = $1`
	res, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query, uuid.UUID(principalID), enrolled, at)
	if err != nil {
		return fmt.Errorf("update face enrollment: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update face enrollment rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
