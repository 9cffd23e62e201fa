// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden
// çalışır. Interface sayesinde testlerde in-memory fake kullanılabilir ve
// SQLite'tan başka bir store'a geçiş sadece yeni implementasyon gerektirir.
package repository

import (
	"context"

	"github.com/oguzhank/dayztrack/models"
)

// AdminRepository, admin hesabı veritabanı işlemleri için interface.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	// GetByEmail, email'e göre admin bulur. Bulunamazsa pkg.ErrNotFound döner.
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	// SetEmailVerified, email doğrulama bayrağını günceller.
	SetEmailVerified(ctx context.Context, adminID string, verified bool) error
	// UpdatePassword, hazır bcrypt hash'i uygular.
	UpdatePassword(ctx context.Context, adminID, newPasswordHash string) error
	// UpdateEmail, email adresini değiştirir ve doğrulama durumunu SIFIRLAR —
	// yeni adres henüz kanıtlanmamıştır.
	UpdateEmail(ctx context.Context, adminID, newEmail string) error
}
