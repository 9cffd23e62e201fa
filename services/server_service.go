// Package services — ServerService, sunucu yaşam döngüsü ve üyelik yönetimi.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
	"github.com/oguzhank/dayztrack/repository"
)

// ServerService interface'i — sunucu CRUD + üye admin yönetimi.
//
// Metodlar serverID'nin erişim kontrolünden GEÇMİŞ olduğunu varsayar —
// rol kontrolü middleware katmanında yapılır (ResolveRole ile).
// Owner-vs-member ayrımı gerektiren iş kuralları (owner eklenemez,
// owner çıkarılamaz) burada kalır.
type ServerService interface {
	// Create, yeni sunucu oluşturur; taze webhook ID üretilir.
	Create(ctx context.Context, adminID string, req *models.CreateServerRequest) (*models.Server, error)
	// List, admin'in erişebildiği tüm sunucuları döner.
	List(ctx context.Context, adminID string) ([]models.ServerWithMeta, error)
	Get(ctx context.Context, serverID string) (*models.Server, error)
	// RegenerateWebhook, webhook ID'yi değiştirir — eski ingestion URL'i
	// anında 404 vermeye başlar.
	RegenerateWebhook(ctx context.Context, serverID string) (*models.Server, error)
	// Delete, sunucuyu ve (FK cascade ile) üyelik, oyuncu ve snapshot
	// kayıtlarını siler.
	Delete(ctx context.Context, serverID string) error

	// ResolveRole, middleware'in erişim kararı için rol çözer.
	ResolveRole(ctx context.Context, serverID, adminID string) (models.ServerRole, error)

	// AddAdmin, email'i mevcut bir hesaba çözümleyip member olarak ekler.
	AddAdmin(ctx context.Context, serverID string, req *models.AddServerAdminRequest) (*models.ServerAdminEntry, error)
	// RemoveAdmin, member'ı sunucudan çıkarır. Owner çıkarılamaz.
	RemoveAdmin(ctx context.Context, serverID, memberAdminID string) error
	ListAdmins(ctx context.Context, serverID string) ([]models.ServerAdminEntry, error)
}

// serverService, ServerService interface'inin implementasyonu.
type serverService struct {
	serverRepo repository.ServerRepository
	adminRepo  repository.AdminRepository
}

// NewServerService, constructor.
func NewServerService(serverRepo repository.ServerRepository, adminRepo repository.AdminRepository) ServerService {
	return &serverService{serverRepo: serverRepo, adminRepo: adminRepo}
}

func (s *serverService) Create(ctx context.Context, adminID string, req *models.CreateServerRequest) (*models.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	webhookID, err := generateWebhookID()
	if err != nil {
		return nil, err
	}

	server := &models.Server{
		AdminID:   adminID,
		Name:      req.Name,
		WebhookID: webhookID,
		IsActive:  true,
	}

	if err := s.serverRepo.Create(ctx, server); err != nil {
		return nil, err
	}

	return server, nil
}

func (s *serverService) List(ctx context.Context, adminID string) ([]models.ServerWithMeta, error) {
	return s.serverRepo.ListByAdmin(ctx, adminID)
}

func (s *serverService) Get(ctx context.Context, serverID string) (*models.Server, error) {
	return s.serverRepo.GetByID(ctx, serverID)
}

func (s *serverService) RegenerateWebhook(ctx context.Context, serverID string) (*models.Server, error) {
	webhookID, err := generateWebhookID()
	if err != nil {
		return nil, err
	}

	if err := s.serverRepo.UpdateWebhookID(ctx, serverID, webhookID); err != nil {
		return nil, err
	}

	return s.serverRepo.GetByID(ctx, serverID)
}

func (s *serverService) Delete(ctx context.Context, serverID string) error {
	return s.serverRepo.Delete(ctx, serverID)
}

func (s *serverService) ResolveRole(ctx context.Context, serverID, adminID string) (models.ServerRole, error) {
	return s.serverRepo.ResolveRole(ctx, serverID, adminID)
}

func (s *serverService) AddAdmin(ctx context.Context, serverID string, req *models.AddServerAdminRequest) (*models.ServerAdminEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: no account with that email", pkg.ErrNotFound)
		}
		return nil, err
	}

	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return nil, err
	}

	// Owner zaten tam erişime sahip — member satırı açılmaz
	if server.AdminID == admin.ID {
		return nil, fmt.Errorf("%w: admin is the server owner", pkg.ErrBadRequest)
	}

	member, err := s.serverRepo.AddMember(ctx, serverID, admin.ID)
	if err != nil {
		return nil, err
	}

	return &models.ServerAdminEntry{
		AdminID: admin.ID,
		Email:   admin.Email,
		Name:    admin.Name,
		Role:    member.Role,
	}, nil
}

func (s *serverService) RemoveAdmin(ctx context.Context, serverID, memberAdminID string) error {
	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return err
	}

	if server.AdminID == memberAdminID {
		return fmt.Errorf("%w: cannot remove the server owner", pkg.ErrBadRequest)
	}

	return s.serverRepo.RemoveMember(ctx, serverID, memberAdminID)
}

func (s *serverService) ListAdmins(ctx context.Context, serverID string) ([]models.ServerAdminEntry, error) {
	return s.serverRepo.ListAdmins(ctx, serverID)
}

// generateWebhookID, 16 byte rastgele veriden 32 karakterlik hex token üretir.
// URL-safe'tir ve tahmin edilemez — webhook endpoint'inin tek koruması budur.
func generateWebhookID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate webhook id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
