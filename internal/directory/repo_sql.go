package directory

import (
	"context"
	"database/sql"
	"errors"

	"click2dial/internal/storage"
)

type SQLRepo struct {
	db *storage.DB
}

func NewSQLRepo(db *storage.DB) *SQLRepo { return &SQLRepo{db: db} }

func (r *SQLRepo) User(ctx context.Context, tenantID, userID string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
		SELECT tenant_id, id, channel_type, internal_number, caller_id, switch_server_id, language
		FROM directory_users
		WHERE tenant_id = ? AND id = ?`), tenantID, userID).
		Scan(&u.TenantID, &u.ID, &u.ChannelType, &u.InternalNumber, &u.CallerID, &u.SwitchServerID, &u.Language)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// SaveUser validates and upserts u.
func (r *SQLRepo) SaveUser(ctx context.Context, u User) error {
	if err := ValidateUser(u); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO directory_users (tenant_id, id, channel_type, internal_number, caller_id, switch_server_id, language)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (tenant_id, id) DO UPDATE SET
			channel_type = excluded.channel_type,
			internal_number = excluded.internal_number,
			caller_id = excluded.caller_id,
			switch_server_id = excluded.switch_server_id,
			language = excluded.language`),
		u.TenantID, u.ID, u.ChannelType, u.InternalNumber, u.CallerID, u.SwitchServerID, u.Language)
	return err
}

// DisplayName returns "" for an unknown party; a dial without a name is
// still a valid dial.
func (r *SQLRepo) DisplayName(ctx context.Context, tenantID, partyRef string) (string, error) {
	if partyRef == "" {
		return "", nil
	}
	var name string
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
		SELECT display_name FROM parties WHERE tenant_id = ? AND id = ?`), tenantID, partyRef).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return name, err
}

func (r *SQLRepo) SaveParty(ctx context.Context, p Party) error {
	if err := ValidateParty(p); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO parties (tenant_id, id, display_name) VALUES (?, ?, ?)
		ON CONFLICT (tenant_id, id) DO UPDATE SET display_name = excluded.display_name`),
		p.TenantID, p.ID, p.DisplayName)
	return err
}
