package repository

import (
	"context"

	"github.com/oguzhank/dayztrack/models"
)

// VerificationRepository, tek kullanımlık doğrulama kodlarının persistence'ı.
//
// Issue akışı: Create çağrılmadan önce DeleteByAdminAndType ile aynı
// (admin, tip) için eski token'lar temizlenir — her akış için en fazla
// bir canlı token invariant'ı böyle korunur.
type VerificationRepository interface {
	// Create, yeni token satırı ekler; ID ve CreatedAt doldurulur.
	Create(ctx context.Context, token *models.VerificationToken) error

	// GetValid, (admin, tip, kod) üçlüsüne uyan ve süresi dolmamış
	// token'ı döner; yoksa pkg.ErrNotFound. Kod karşılaştırması DB'de
	// yapılır — çağıran yanlış kod ile süresi dolmuş kodu ayırt edemez.
	GetValid(ctx context.Context, adminID string, tokenType models.TokenType, code string) (*models.VerificationToken, error)

	// Delete, token'ı ID ile siler (consume adımı).
	Delete(ctx context.Context, id string) error

	// DeleteByAdminAndType, admin'in belirtilen tipteki tüm token'larını siler.
	DeleteByAdminAndType(ctx context.Context, adminID string, tokenType models.TokenType) error

	// DeleteExpired, süresi dolmuş tüm token'ları siler; silinen sayıyı döner.
	DeleteExpired(ctx context.Context) (int64, error)
}
