package calls

import (
	"context"
	"errors"
	"time"

	"click2dial/internal/dialerr"
	"click2dial/internal/numbering"
	"click2dial/internal/storage"
)

type SQLRepo struct {
	db *storage.DB
}

func NewSQLRepo(db *storage.DB) *SQLRepo { return &SQLRepo{db: db} }

func (r *SQLRepo) Record(ctx context.Context, a Attempt) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO dial_attempts
			(id, tenant_id, user_id, party_ref, raw_number, dial_string, branch, destination_region, status, error_kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		a.ID, a.TenantID, a.UserID, a.PartyRef, a.RawNumber, a.DialString, string(a.Branch),
		a.DestinationRegion, string(a.Status), string(a.ErrorKind), a.CreatedAt.UTC(),
	)
	return err
}

func (r *SQLRepo) ListAttempts(ctx context.Context, tenantID string, from, to time.Time, userID string) ([]Attempt, error) {
	if tenantID == "" {
		return nil, errors.New("calls: tenant_id required")
	}
	q := `
		SELECT id, tenant_id, user_id, party_ref, raw_number, dial_string, branch, destination_region, status, error_kind, created_at
		FROM dial_attempts
		WHERE tenant_id = ? AND created_at >= ? AND created_at < ?`
	args := []any{tenantID, from.UTC(), to.UTC()}
	if userID != "" {
		q += ` AND user_id = ?`
		args = append(args, userID)
	}
	q += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Attempt, 0)
	for rows.Next() {
		var a Attempt
		var branch, status, errKind string
		if err := rows.Scan(&a.ID, &a.TenantID, &a.UserID, &a.PartyRef, &a.RawNumber, &a.DialString,
			&branch, &a.DestinationRegion, &status, &errKind, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Branch = numbering.Branch(branch)
		a.Status = Status(status)
		a.ErrorKind = dialerr.Kind(errKind)
		a.CreatedAt = a.CreatedAt.UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}
