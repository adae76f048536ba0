package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/handbook"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ handbook.AccessCodeService = (*AccessCodeService)(nil)

// AccessCodeService implements handbook.AccessCodeService using SQLite.
type AccessCodeService struct {
	db *DB
}

// NewAccessCodeService creates a new AccessCodeService.
func NewAccessCodeService(db *DB) *AccessCodeService {
	return &AccessCodeService{db: db}
}

// CreateAccessCode creates a new access code. A random code is generated
// when none is given.
func (s *AccessCodeService) CreateAccessCode(ctx context.Context, code *handbook.AccessCode) error {
	if code.Code == "" {
		code.Code = uuid.New().String()
	}
	if err := code.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	code.CreatedAt = now
	code.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO access_codes (code, count, "limit", created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(code) DO NOTHING
	`, code.Code, code.Count, code.Limit,
		code.CreatedAt.Format(time.RFC3339), code.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return handbook.Errorf(handbook.ECONFLICT, "access code %q already exists", code.Code)
	}
	return nil
}

// FindAccessCode retrieves an access code.
func (s *AccessCodeService) FindAccessCode(ctx context.Context, code string) (*handbook.AccessCode, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT code, count, "limit", created_at, updated_at
		FROM access_codes
		WHERE code = ?
	`, code)

	ac, err := scanAccessCode(row)
	if err == sql.ErrNoRows {
		return nil, handbook.Errorf(handbook.ENOTFOUND, "access code not found")
	}
	return ac, err
}

// FindAccessCodes retrieves all access codes, oldest first.
func (s *AccessCodeService) FindAccessCodes(ctx context.Context) ([]*handbook.AccessCode, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, count, "limit", created_at, updated_at
		FROM access_codes
		ORDER BY created_at, code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []*handbook.AccessCode
	for rows.Next() {
		ac, err := scanAccessCode(rows)
		if err != nil {
			return nil, err
		}
		codes = append(codes, ac)
	}
	return codes, rows.Err()
}

// ReserveUsage charges one question to the code if its quota allows it.
// The quota check and the charge run as one statement.
func (s *AccessCodeService) ReserveUsage(ctx context.Context, code string) (*handbook.AccessCode, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE access_codes
		SET count = count + 1, updated_at = ?
		WHERE code = ? AND count < "limit"
		RETURNING code, count, "limit", created_at, updated_at
	`, time.Now().UTC().Format(time.RFC3339), code)

	ac, err := scanAccessCode(row)
	if err == sql.ErrNoRows {
		if _, err := s.FindAccessCode(ctx, code); err != nil {
			return nil, err
		}
		return nil, handbook.Errorf(handbook.EFORBIDDEN, "query limit reached for this code")
	}
	if err != nil {
		return nil, err
	}
	return ac, nil
}

// ReleaseUsage refunds one reserved question.
func (s *AccessCodeService) ReleaseUsage(ctx context.Context, code string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE access_codes
		SET count = count - 1, updated_at = ?
		WHERE code = ? AND count > 0
	`, time.Now().UTC().Format(time.RFC3339), code)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccessCode(row scanner) (*handbook.AccessCode, error) {
	var ac handbook.AccessCode
	var createdAt, updatedAt string

	if err := row.Scan(&ac.Code, &ac.Count, &ac.Limit, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if ac.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if ac.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &ac, nil
}
