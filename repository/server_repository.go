// Package repository — ServerRepository interface tanımı.
//
// Sunucu CRUD'u, webhook kimliği çözümleme, erişim rolü çözümleme ve
// üyelik yönetimi tek interface altında toplanır — hepsi aynı aggregate'e
// (servers + server_admins) aittir.
package repository

import (
	"context"

	"github.com/oguzhank/dayztrack/models"
)

// ServerRepository, sunucu ve üyelik veritabanı işlemleri için interface.
type ServerRepository interface {
	Create(ctx context.Context, server *models.Server) error
	GetByID(ctx context.Context, id string) (*models.Server, error)
	// GetByWebhookID, ingestion path'inin tek lookup'ı.
	// Bilinmeyen webhookId → pkg.ErrNotFound.
	GetByWebhookID(ctx context.Context, webhookID string) (*models.Server, error)
	// ListByAdmin, admin'in owner veya member olduğu tüm sunucuları
	// oyuncu sayısı ve rol bilgisiyle döner (created_at DESC).
	ListByAdmin(ctx context.Context, adminID string) ([]models.ServerWithMeta, error)
	// UpdateWebhookID, webhook token'ını döndürür — eski URL anında ölür.
	UpdateWebhookID(ctx context.Context, serverID, newWebhookID string) error
	Delete(ctx context.Context, serverID string) error

	// ResolveRole, admin'in sunucu üzerindeki rolünü TEK sorguda çözer.
	// Sunucu yoksa veya admin'in hiçbir erişimi yoksa RoleNone döner —
	// iki durum bilinçli olarak ayırt edilmez.
	ResolveRole(ctx context.Context, serverID, adminID string) (models.ServerRole, error)

	// AddMember, "member" rolüyle üyelik satırı ekler.
	// Zaten üyeyse pkg.ErrAlreadyExists döner (UNIQUE constraint).
	AddMember(ctx context.Context, serverID, adminID string) (*models.ServerAdmin, error)
	// RemoveMember, üyelik satırını siler. Satır yoksa pkg.ErrNotFound.
	RemoveMember(ctx context.Context, serverID, adminID string) error
	// ListAdmins, sentezlenmiş owner kaydı + member satırlarını döner.
	// Owner her zaman listenin başındadır.
	ListAdmins(ctx context.Context, serverID string) ([]models.ServerAdminEntry, error)
}
