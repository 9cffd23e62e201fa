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

// sqliteVerificationRepo, VerificationRepository'nin SQLite implementasyonu.
type sqliteVerificationRepo struct {
	db database.TxQuerier
}

// NewSQLiteVerificationRepo, constructor.
func NewSQLiteVerificationRepo(db database.TxQuerier) VerificationRepository {
	return &sqliteVerificationRepo{db: db}
}

func (r *sqliteVerificationRepo) Create(ctx context.Context, token *models.VerificationToken) error {
	token.ID = uuid.NewString()

	query := `
		INSERT INTO verification_tokens (id, admin_id, code, type, new_email, new_password_hash, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		token.ID, token.AdminID, token.Code, token.Type,
		token.NewEmail, token.NewPasswordHash, sqlTime(token.ExpiresAt),
	).Scan(&token.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}

	return nil
}

func (r *sqliteVerificationRepo) GetValid(ctx context.Context, adminID string, tokenType models.TokenType, code string) (*models.VerificationToken, error) {
	query := `
		SELECT id, admin_id, code, type, new_email, new_password_hash, expires_at, created_at
		FROM verification_tokens
		WHERE admin_id = ? AND type = ? AND code = ? AND expires_at > CURRENT_TIMESTAMP`

	token := &models.VerificationToken{}
	err := r.db.QueryRowContext(ctx, query, adminID, tokenType, code).Scan(
		&token.ID, &token.AdminID, &token.Code, &token.Type,
		&token.NewEmail, &token.NewPasswordHash, &token.ExpiresAt, &token.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification token: %w", err)
	}

	return token, nil
}

func (r *sqliteVerificationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM verification_tokens WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete verification token: %w", err)
	}
	return requireAffected(result)
}

func (r *sqliteVerificationRepo) DeleteByAdminAndType(ctx context.Context, adminID string, tokenType models.TokenType) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM verification_tokens WHERE admin_id = ? AND type = ?`, adminID, tokenType)
	if err != nil {
		return fmt.Errorf("failed to delete verification tokens: %w", err)
	}
	return nil
}

func (r *sqliteVerificationRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM verification_tokens WHERE expires_at <= CURRENT_TIMESTAMP`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted tokens: %w", err)
	}

	return affected, nil
}
