// Package repository — ServerRepository'nin SQLite implementasyonu.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/oguzhank/dayztrack/database"
	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
)

// sqliteServerRepo, ServerRepository interface'inin SQLite implementasyonu.
type sqliteServerRepo struct {
	db database.TxQuerier
}

// NewSQLiteServerRepo, constructor.
func NewSQLiteServerRepo(db database.TxQuerier) ServerRepository {
	return &sqliteServerRepo{db: db}
}

func (r *sqliteServerRepo) Create(ctx context.Context, server *models.Server) error {
	query := `
		INSERT INTO servers (id, admin_id, name, webhook_id, is_active)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		server.AdminID,
		server.Name,
		server.WebhookID,
		server.IsActive,
	).Scan(&server.ID, &server.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return nil
}

func (r *sqliteServerRepo) GetByID(ctx context.Context, id string) (*models.Server, error) {
	query := `
		SELECT id, admin_id, name, webhook_id, is_active, created_at
		FROM servers WHERE id = ?`

	return r.scanServer(r.db.QueryRowContext(ctx, query, id))
}

func (r *sqliteServerRepo) GetByWebhookID(ctx context.Context, webhookID string) (*models.Server, error) {
	query := `
		SELECT id, admin_id, name, webhook_id, is_active, created_at
		FROM servers WHERE webhook_id = ?`

	return r.scanServer(r.db.QueryRowContext(ctx, query, webhookID))
}

func (r *sqliteServerRepo) scanServer(row *sql.Row) (*models.Server, error) {
	server := &models.Server{}
	err := row.Scan(
		&server.ID, &server.AdminID, &server.Name,
		&server.WebhookID, &server.IsActive, &server.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server: %w", err)
	}

	return server, nil
}

func (r *sqliteServerRepo) ListByAdmin(ctx context.Context, adminID string) ([]models.ServerWithMeta, error) {
	// Owner olunan + member olunan sunucular tek sorguda.
	// Rol CASE ile hesaplanır; oyuncu sayısı correlated subquery ile gelir.
	query := `
		SELECT s.id, s.admin_id, s.name, s.webhook_id, s.is_active, s.created_at,
			(SELECT COUNT(*) FROM players p WHERE p.server_id = s.id) AS player_count,
			CASE WHEN s.admin_id = ? THEN 'owner' ELSE 'member' END AS role
		FROM servers s
		WHERE s.admin_id = ?
			OR EXISTS (SELECT 1 FROM server_admins sa WHERE sa.server_id = s.id AND sa.admin_id = ?)
		ORDER BY s.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, adminID, adminID, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	defer rows.Close()

	var servers []models.ServerWithMeta
	for rows.Next() {
		var s models.ServerWithMeta
		if err := rows.Scan(
			&s.ID, &s.AdminID, &s.Name, &s.WebhookID, &s.IsActive, &s.CreatedAt,
			&s.PlayerCount, &s.Role,
		); err != nil {
			return nil, fmt.Errorf("failed to scan server row: %w", err)
		}
		servers = append(servers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating server rows: %w", err)
	}

	return servers, nil
}

func (r *sqliteServerRepo) UpdateWebhookID(ctx context.Context, serverID, newWebhookID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE servers SET webhook_id = ? WHERE id = ?`, newWebhookID, serverID)
	if err != nil {
		return fmt.Errorf("failed to update webhook id: %w", err)
	}
	return requireAffected(result)
}

func (r *sqliteServerRepo) Delete(ctx context.Context, serverID string) error {
	// FK cascade: server_admins, players ve players üzerinden snapshots silinir
	result, err := r.db.ExecContext(ctx, `DELETE FROM servers WHERE id = ?`, serverID)
	if err != nil {
		return fmt.Errorf("failed to delete server: %w", err)
	}
	return requireAffected(result)
}

func (r *sqliteServerRepo) ResolveRole(ctx context.Context, serverID, adminID string) (models.ServerRole, error) {
	query := `
		SELECT CASE
			WHEN s.admin_id = ? THEN 'owner'
			WHEN EXISTS (SELECT 1 FROM server_admins sa WHERE sa.server_id = s.id AND sa.admin_id = ?) THEN 'member'
			ELSE 'none'
		END
		FROM servers s WHERE s.id = ?`

	var role models.ServerRole
	err := r.db.QueryRowContext(ctx, query, adminID, adminID, serverID).Scan(&role)

	if errors.Is(err, sql.ErrNoRows) {
		// Sunucu yok — erişim kontrolü açısından "erişim yok" ile aynı
		return models.RoleNone, nil
	}
	if err != nil {
		return models.RoleNone, fmt.Errorf("failed to resolve server role: %w", err)
	}

	return role, nil
}

func (r *sqliteServerRepo) AddMember(ctx context.Context, serverID, adminID string) (*models.ServerAdmin, error) {
	query := `
		INSERT INTO server_admins (id, server_id, admin_id, role)
		VALUES (?, ?, ?, 'member')
		RETURNING created_at`

	member := &models.ServerAdmin{
		ID:       uuid.NewString(),
		ServerID: serverID,
		AdminID:  adminID,
		Role:     "member",
	}

	err := r.db.QueryRowContext(ctx, query, member.ID, serverID, adminID).Scan(&member.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: already a member", pkg.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to add server member: %w", err)
	}

	return member, nil
}

func (r *sqliteServerRepo) RemoveMember(ctx context.Context, serverID, adminID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM server_admins WHERE server_id = ? AND admin_id = ?`, serverID, adminID)
	if err != nil {
		return fmt.Errorf("failed to remove server member: %w", err)
	}
	return requireAffected(result)
}

func (r *sqliteServerRepo) ListAdmins(ctx context.Context, serverID string) ([]models.ServerAdminEntry, error) {
	// Owner satırı DB'de yoktur — sentezlenir ve listenin başına konur.
	// UNION ALL'un ilk kolu owner, ikinci kolu member satırları.
	query := `
		SELECT a.id, a.email, a.name, 'owner' AS role, 0 AS ord
		FROM servers s JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
		UNION ALL
		SELECT a.id, a.email, a.name, sa.role, 1 AS ord
		FROM server_admins sa JOIN admins a ON a.id = sa.admin_id
		WHERE sa.server_id = ?
		ORDER BY ord, name`

	rows, err := r.db.QueryContext(ctx, query, serverID, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list server admins: %w", err)
	}
	defer rows.Close()

	var entries []models.ServerAdminEntry
	for rows.Next() {
		var e models.ServerAdminEntry
		var ord int
		if err := rows.Scan(&e.AdminID, &e.Email, &e.Name, &e.Role, &ord); err != nil {
			return nil, fmt.Errorf("failed to scan admin row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin rows: %w", err)
	}

	return entries, nil
}
