package template

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	txcontext "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/tx"
)

// PostgresStore persists templates in face_templates. The partial unique
// index face_templates_one_active backs the upsert.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// UpsertActive is a single statement so concurrent enrollments for the same
// owner cannot both insert. replaced reports whether an existing row changed.
func (s *PostgresStore) UpsertActive(ctx context.Context, t *models.Template) (*models.Template, bool, error) {
	query := `
		INSERT INTO face_templates (id, owner_id, ciphertext, iv, captured_at, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $6)
		ON CONFLICT (owner_id) WHERE active
		DO UPDATE SET
			ciphertext = EXCLUDED.ciphertext,
			iv = EXCLUDED.iv,
			captured_at = EXCLUDED.captured_at,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at, (xmax <> 0) AS replaced
	`
	var (
		templateID uuid.UUID
		replaced   bool
	)
	stored := *t
	stored.Active = true
	err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query,
		uuid.UUID(t.ID), uuid.UUID(t.OwnerID), t.Payload.Ciphertext, t.Payload.IV, t.CapturedAt, t.UpdatedAt,
	).Scan(&templateID, &stored.CreatedAt, &stored.UpdatedAt, &replaced)
	if err != nil {
		return nil, false, fmt.Errorf("upsert face template: %w", err)
	}
	stored.ID = id.TemplateID(templateID)
	return &stored, replaced, nil
}

func (s *PostgresStore) FindActive(ctx context.Context, ownerID id.PrincipalID) ([]*models.Template, error) {
	query := `
		SELECT id, ciphertext, iv, captured_at, created_at, updated_at
		FROM face_templates
		WHERE owner_id = $1 AND active
		ORDER BY updated_at DESC
	`
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, query, uuid.UUID(ownerID))
	if err != nil {
		return nil, fmt.Errorf("find active face templates: %w", err)
	}
	defer rows.Close()

	var out []*models.Template
	for rows.Next() {
		var (
			templateID uuid.UUID
			t          = models.Template{OwnerID: ownerID, Active: true}
		)
		if err := rows.Scan(&templateID, &t.Payload.Ciphertext, &t.Payload.IV, &t.CapturedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan face template: %w", err)
		}
		t.ID = id.TemplateID(templateID)
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate face templates: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeactivateAll(ctx context.Context, ownerID id.PrincipalID) (int, error) {
	query := `UPDATE face_templates SET active = FALSE, updated_at = NOW() WHERE owner_id = $1 AND active`
	res, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query, uuid.UUID(ownerID))
	if err != nil {
		return 0, fmt.Errorf("deactivate face templates: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deactivate face templates rows: %w", err)
	}
	return int(n), nil
}
