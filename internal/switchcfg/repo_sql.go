package switchcfg

import (
	"context"
	"database/sql"
	"errors"

	"click2dial/internal/storage"
	"click2dial/pkg/utils"
)

type SQLRepo struct {
	db *storage.DB
}

func NewSQLRepo(db *storage.DB) *SQLRepo { return &SQLRepo{db: db} }

const selectSettings = `
	SELECT tenant_id, id, name, is_default, host, port, login, secret,
		dial_context, extension_priority, answer_timeout_seconds, alert_header,
		country_prefix, national_prefix, international_prefix, out_prefix,
		national_format_allowed, updated_at
	FROM switch_servers`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSettings(row rowScanner) (Settings, error) {
	var s Settings
	err := row.Scan(
		&s.TenantID, &s.ID, &s.Name, &s.IsDefault, &s.Host, &s.Port, &s.Login, &s.Secret,
		&s.DialContext, &s.ExtensionPriority, &s.AnswerTimeoutSeconds, &s.AlertHeader,
		&s.CountryPrefix, &s.NationalPrefix, &s.InternationalPrefix, &s.OutPrefix,
		&s.NationalFormatAllowed, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Settings{}, ErrNotFound
	}
	if err != nil {
		return Settings{}, err
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

func (r *SQLRepo) Default(ctx context.Context, tenantID string) (Settings, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(selectSettings+`
		WHERE tenant_id = ? AND is_default = ?
		ORDER BY id
		LIMIT 1`), tenantID, true)
	return scanSettings(row)
}

func (r *SQLRepo) Get(ctx context.Context, tenantID, id string) (Settings, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(selectSettings+`
		WHERE tenant_id = ? AND id = ?`), tenantID, id)
	return scanSettings(row)
}

func (r *SQLRepo) List(ctx context.Context, tenantID string) ([]Settings, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(selectSettings+`
		WHERE tenant_id = ?
		ORDER BY id`), tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Settings
	for rows.Next() {
		s, err := scanSettings(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLRepo) Upsert(ctx context.Context, s Settings) error {
	return utils.WithTx(ctx, r.db.DB, nil, func(ctx context.Context, tx *sql.Tx) error {
		if s.IsDefault {
			if _, err := tx.ExecContext(ctx, r.db.Rebind(`
				UPDATE switch_servers SET is_default = ?
				WHERE tenant_id = ? AND id <> ?`), false, s.TenantID, s.ID); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, r.db.Rebind(`
			INSERT INTO switch_servers (
				tenant_id, id, name, is_default, host, port, login, secret,
				dial_context, extension_priority, answer_timeout_seconds, alert_header,
				country_prefix, national_prefix, international_prefix, out_prefix,
				national_format_allowed, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (tenant_id, id) DO UPDATE SET
				name = excluded.name,
				is_default = excluded.is_default,
				host = excluded.host,
				port = excluded.port,
				login = excluded.login,
				secret = excluded.secret,
				dial_context = excluded.dial_context,
				extension_priority = excluded.extension_priority,
				answer_timeout_seconds = excluded.answer_timeout_seconds,
				alert_header = excluded.alert_header,
				country_prefix = excluded.country_prefix,
				national_prefix = excluded.national_prefix,
				international_prefix = excluded.international_prefix,
				out_prefix = excluded.out_prefix,
				national_format_allowed = excluded.national_format_allowed,
				updated_at = excluded.updated_at`),
			s.TenantID, s.ID, s.Name, s.IsDefault, s.Host, s.Port, s.Login, s.Secret,
			s.DialContext, s.ExtensionPriority, s.AnswerTimeoutSeconds, s.AlertHeader,
			s.CountryPrefix, s.NationalPrefix, s.InternationalPrefix, s.OutPrefix,
			s.NationalFormatAllowed, s.UpdatedAt,
		)
		return err
	})
}
