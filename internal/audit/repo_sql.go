package audit

import (
	"context"

	"click2dial/internal/storage"
)

// SQLRepo stores events in audit_events. It only inserts.
type SQLRepo struct {
	db *storage.DB
}

func NewSQLRepo(db *storage.DB) *SQLRepo { return &SQLRepo{db: db} }

func (r *SQLRepo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO audit_events
			(id, tenant_id, type, actor_user_id, actor_role, ip_address, switch_id, attempt_id, message, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		e.ID, e.TenantID, string(e.Type), e.ActorUserID, e.ActorRole, e.IPAddress,
		e.SwitchID, e.AttemptID, e.Message, e.Metadata, e.CreatedAt,
	)
	return err
}
