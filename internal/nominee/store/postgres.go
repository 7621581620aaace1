package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/postgres"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
	txcontext "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/tx"
)

const (
	nomineeColumns = `id, name, email, phone, government_id, relationship, linked_principal_id,
		linked_user_details, verification_token, verification_sent, verification_sent_at,
		notified_channels, user_confirmed, verification_status, linked_user_verified,
		is_active, decided_at, created_at, updated_at`
	documentColumns = `id, type, storage_ref, file_name, content_type, size_bytes, status, uploaded_at, reviewed_at`

	onePerPrincipalIndex = "nominees_one_per_principal"
)

// PostgresStore persists nominees in the nominees and nominee_documents
// tables. Partial unique indexes exclude rejected records.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, n *models.Nominee) error {
	details, err := json.Marshal(n.LinkedUserDetails)
	if err != nil {
		return fmt.Errorf("marshal linked user details: %w", err)
	}
	query := `
		INSERT INTO nominees (` + nomineeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err = txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(n.ID), n.Name, n.Email, n.Phone, n.GovernmentID, n.Relationship,
		uuid.UUID(n.LinkedPrincipalID), details, n.VerificationToken, n.VerificationSent,
		n.VerificationSentAt, pq.Array(n.NotifiedChannels), n.UserConfirmed,
		string(n.VerificationStatus), n.LinkedUserVerified, n.IsActive, n.DecidedAt,
		n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err, onePerPrincipalIndex):
			return sentinel.ErrConflict
		case postgres.IsUniqueViolation(err):
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert nominee: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, nomineeID id.NomineeID) (*models.Nominee, error) {
	return s.findOne(ctx, `WHERE id = $1`, uuid.UUID(nomineeID))
}

// FindByPrincipal returns the most recent record linked to principalID.
func (s *PostgresStore) FindByPrincipal(ctx context.Context, principalID id.PrincipalID, includeRejected bool) (*models.Nominee, error) {
	return s.findOne(ctx, `
		WHERE linked_principal_id = $1 AND ($2 OR verification_status <> 'rejected')
		ORDER BY created_at DESC
		LIMIT 1
	`, uuid.UUID(principalID), includeRejected)
}

func (s *PostgresStore) ExistsByEmailOrGovernmentID(ctx context.Context, address, governmentID string, includeRejected bool) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM nominees
			WHERE (LOWER(email) = LOWER($1) OR government_id = $2)
			  AND ($3 OR verification_status <> 'rejected')
		)
	`
	var exists bool
	if err := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query, address, governmentID, includeRejected).Scan(&exists); err != nil {
		return false, fmt.Errorf("check nominee uniqueness: %w", err)
	}
	return exists, nil
}

// ReplaceVerificationToken supersedes the stored token of a pending record.
func (s *PostgresStore) ReplaceVerificationToken(ctx context.Context, nomineeID id.NomineeID, token string, now time.Time) error {
	query := `
		UPDATE nominees SET verification_token = $2, updated_at = $3
		WHERE id = $1 AND verification_status = 'pending'
	`
	res, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query, uuid.UUID(nomineeID), token, now)
	if err != nil {
		return fmt.Errorf("replace verification token: %w", err)
	}
	if err := s.requireRow(ctx, res, nomineeID); err != nil {
		return err
	}
	return nil
}

func (s *PostgresStore) UpdateNotification(ctx context.Context, nomineeID id.NomineeID, channels []string, now time.Time) error {
	sent := len(channels) > 0
	var sentAt *time.Time
	if sent {
		sentAt = &now
	}
	query := `
		UPDATE nominees
		SET verification_sent = $2,
			verification_sent_at = COALESCE($3, verification_sent_at),
			notified_channels = $4,
			updated_at = $5
		WHERE id = $1
	`
	res, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(nomineeID), sent, sentAt, pq.Array(channels), now,
	)
	if err != nil {
		return fmt.Errorf("update nominee notification: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update nominee notification rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// ConsumeVerificationToken is a single conditional update: it applies only
// while token is the stored token and the record is pending, so concurrent
// confirm and reject apply at most once.
func (s *PostgresStore) ConsumeVerificationToken(ctx context.Context, nomineeID id.NomineeID, token string, action models.Action, now time.Time) (*models.Nominee, error) {
	status := models.StatusVerified
	confirmed := true
	switch action {
	case models.ActionConfirm:
	case models.ActionReject:
		status = models.StatusRejected
		confirmed = false
	default:
		return nil, models.ErrInvalidAction
	}
	query := `
		UPDATE nominees
		SET verification_status = $3,
			user_confirmed = $4,
			linked_user_verified = $4,
			is_active = $4,
			verification_token = NULL,
			decided_at = $5,
			updated_at = $5
		WHERE id = $1 AND verification_token = $2 AND verification_status = 'pending'
	`
	res, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(nomineeID), token, string(status), confirmed, now,
	)
	if err != nil {
		return nil, fmt.Errorf("consume verification token: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("consume verification token rows: %w", err)
	}
	if rows == 0 {
		if _, err := s.FindByID(ctx, nomineeID); err != nil {
			return nil, err
		}
		return nil, sentinel.ErrAlreadyUsed
	}
	return s.FindByID(ctx, nomineeID)
}

func (s *PostgresStore) AddDocument(ctx context.Context, nomineeID id.NomineeID, doc models.Document) error {
	query := `
		INSERT INTO nominee_documents (nominee_id, ` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(nomineeID), uuid.UUID(doc.ID), string(doc.Type), doc.StorageRef, doc.FileName,
		doc.ContentType, doc.Size, string(doc.Status), doc.UploadedAt, doc.ReviewedAt,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("insert nominee document: %w", err)
	}
	return nil
}

// RemoveDocument deletes the entry and returns it so the caller can remove
// the stored file.
func (s *PostgresStore) RemoveDocument(ctx context.Context, nomineeID id.NomineeID, documentID id.DocumentID) (*models.Document, error) {
	query := `
		DELETE FROM nominee_documents
		WHERE nominee_id = $1 AND id = $2
		RETURNING ` + documentColumns
	doc, err := scanDocument(txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query,
		uuid.UUID(nomineeID), uuid.UUID(documentID),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("delete nominee document: %w", err)
	}
	return doc, nil
}

func (s *PostgresStore) ReviewDocument(ctx context.Context, nomineeID id.NomineeID, documentID id.DocumentID, status models.DocumentStatus, now time.Time) (*models.Document, error) {
	query := `
		UPDATE nominee_documents SET status = $3, reviewed_at = $4
		WHERE nominee_id = $1 AND id = $2 AND status = 'pending'
		RETURNING ` + documentColumns
	exec := txcontext.Executor(ctx, s.db)
	doc, err := scanDocument(exec.QueryRowContext(ctx, query,
		uuid.UUID(nomineeID), uuid.UUID(documentID), string(status), now,
	))
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("review nominee document: %w", err)
	}

	var exists bool
	err = exec.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM nominee_documents WHERE nominee_id = $1 AND id = $2)`,
		uuid.UUID(nomineeID), uuid.UUID(documentID),
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check nominee document: %w", err)
	}
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return nil, sentinel.ErrInvalidState
}

// UpdateLinkedStatus merges the non-nil fields of update into the stored
// snapshot; other snapshot keys are left untouched.
func (s *PostgresStore) UpdateLinkedStatus(ctx context.Context, nomineeID id.NomineeID, update models.LinkedStatusUpdate, now time.Time) (*models.Nominee, error) {
	query := `
		UPDATE nominees
		SET linked_user_details = linked_user_details || jsonb_strip_nulls(jsonb_build_object(
				'medical_status', $2::text,
				'death_status', $3::text
			)),
			updated_at = $4
		WHERE id = $1
	`
	res, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(nomineeID), update.MedicalStatus, update.DeathStatus, now,
	)
	if err != nil {
		return nil, fmt.Errorf("update linked status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update linked status rows: %w", err)
	}
	if rows == 0 {
		return nil, sentinel.ErrNotFound
	}
	return s.FindByID(ctx, nomineeID)
}

// requireRow maps a zero-row update to ErrNotFound or, when the record
// exists, ErrInvalidState.
func (s *PostgresStore) requireRow(ctx context.Context, res sql.Result, nomineeID id.NomineeID) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}
	if _, err := s.FindByID(ctx, nomineeID); err != nil {
		return err
	}
	return sentinel.ErrInvalidState
}

func (s *PostgresStore) findOne(ctx context.Context, where string, args ...any) (*models.Nominee, error) {
	query := `SELECT ` + nomineeColumns + ` FROM nominees ` + where
	exec := txcontext.Executor(ctx, s.db)

	var (
		n           models.Nominee
		nomineeID   uuid.UUID
		principalID uuid.UUID
		details     []byte
		token       sql.NullString
		sentAt      sql.NullTime
		decidedAt   sql.NullTime
		status      string
		channels    []string
	)
	err := exec.QueryRowContext(ctx, query, args...).Scan(
		&nomineeID, &n.Name, &n.Email, &n.Phone, &n.GovernmentID, &n.Relationship, &principalID,
		&details, &token, &n.VerificationSent, &sentAt,
		pq.Array(&channels), &n.UserConfirmed, &status, &n.LinkedUserVerified,
		&n.IsActive, &decidedAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find nominee: %w", err)
	}
	if err := json.Unmarshal(details, &n.LinkedUserDetails); err != nil {
		return nil, fmt.Errorf("decode linked user details: %w", err)
	}
	n.ID = id.NomineeID(nomineeID)
	n.LinkedPrincipalID = id.PrincipalID(principalID)
	n.VerificationStatus = models.VerificationStatus(status)
	n.NotifiedChannels = channels
	if n.NotifiedChannels == nil {
		n.NotifiedChannels = []string{}
	}
	if token.Valid {
		t := token.String
		n.VerificationToken = &t
	}
	if sentAt.Valid {
		t := sentAt.Time
		n.VerificationSentAt = &t
	}
	if decidedAt.Valid {
		t := decidedAt.Time
		n.DecidedAt = &t
	}

	docs, err := s.documents(ctx, exec, n.ID)
	if err != nil {
		return nil, err
	}
	n.Documents = docs
	return &n, nil
}

func (s *PostgresStore) documents(ctx context.Context, exec txcontext.DBTX, nomineeID id.NomineeID) ([]models.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM nominee_documents
		WHERE nominee_id = $1
		ORDER BY uploaded_at, id
	`
	rows, err := exec.QueryContext(ctx, query, uuid.UUID(nomineeID))
	if err != nil {
		return nil, fmt.Errorf("find nominee documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nominee document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nominee documents: %w", err)
	}
	return docs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var (
		doc        models.Document
		documentID uuid.UUID
		docType    string
		status     string
		reviewedAt sql.NullTime
	)
	if err := row.Scan(&documentID, &docType, &doc.StorageRef, &doc.FileName, &doc.ContentType,
		&doc.Size, &status, &doc.UploadedAt, &reviewedAt); err != nil {
		return nil, err
	}
	doc.ID = id.DocumentID(documentID)
	doc.Type = models.DocumentType(docType)
	doc.Status = models.DocumentStatus(status)
	if reviewedAt.Valid {
		t := reviewedAt.Time
		doc.ReviewedAt = &t
	}
	return &doc, nil
}
