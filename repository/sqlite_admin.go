// Package repository — AdminRepository'nin SQLite implementasyonu.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oguzhank/dayztrack/database"
	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
)

// sqliteAdminRepo, AdminRepository interface'inin SQLite implementasyonu.
type sqliteAdminRepo struct {
	db database.TxQuerier
}

// NewSQLiteAdminRepo, constructor. Interface döner, concrete struct değil.
func NewSQLiteAdminRepo(db database.TxQuerier) AdminRepository {
	return &sqliteAdminRepo{db: db}
}

func (r *sqliteAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (id, email, password_hash, name, is_email_verified)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		admin.Email,
		admin.PasswordHash,
		admin.Name,
		admin.IsEmailVerified,
	).Scan(&admin.ID, &admin.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

func (r *sqliteAdminRepo) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	query := `
		SELECT id, email, password_hash, name, is_email_verified, created_at
		FROM admins WHERE id = ?`

	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&admin.ID, &admin.Email, &admin.PasswordHash,
		&admin.Name, &admin.IsEmailVerified, &admin.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by id: %w", err)
	}

	return admin, nil
}

func (r *sqliteAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
		SELECT id, email, password_hash, name, is_email_verified, created_at
		FROM admins WHERE email = ?`

	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&admin.ID, &admin.Email, &admin.PasswordHash,
		&admin.Name, &admin.IsEmailVerified, &admin.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return admin, nil
}

func (r *sqliteAdminRepo) SetEmailVerified(ctx context.Context, adminID string, verified bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE admins SET is_email_verified = ? WHERE id = ?`, verified, adminID)
	if err != nil {
		return fmt.Errorf("failed to update email verification: %w", err)
	}
	return requireAffected(result)
}

func (r *sqliteAdminRepo) UpdatePassword(ctx context.Context, adminID, newPasswordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE admins SET password_hash = ? WHERE id = ?`, newPasswordHash, adminID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireAffected(result)
}

func (r *sqliteAdminRepo) UpdateEmail(ctx context.Context, adminID, newEmail string) error {
	// Email değişince doğrulama durumu sıfırlanır — yeni adres kanıtlanmamıştır
	result, err := r.db.ExecContext(ctx,
		`UPDATE admins SET email = ?, is_email_verified = 0 WHERE id = ?`, newEmail, adminID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to update email: %w", err)
	}
	return requireAffected(result)
}

// requireAffected, UPDATE/DELETE sonucunda satır etkilenmemişse
// pkg.ErrNotFound döner. Tüm sqlite repo'ları tarafından paylaşılır.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

// isUniqueViolation, SQLite UNIQUE constraint hatasını kontrol eder.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// sqlTime, time.Time değerini SQL parametresi olarak bağlamadan önce
// UTC'ye çevirip CURRENT_TIMESTAMP ile aynı formata normalize eder.
//
// time.Time doğrudan bağlanırsa driver onu Go'nun String() formatında
// (offset dahil, ör. "... +0300 +03") yazar; CURRENT_TIMESTAMP ise
// offset'siz UTC string üretir ve SQLite'ta tarih karşılaştırması METİN
// karşılaştırmasıdır. UTC dışı bir host'ta expiry filtreleri offset
// kadar kayar. Tüm timestamp bind'leri bu helper'dan geçer.
func sqlTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}
