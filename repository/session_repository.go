package repository

import (
	"context"

	"github.com/oguzhank/dayztrack/models"
)

// SessionRepository, refresh token oturumlarının persistence interface'i.
type SessionRepository interface {
	// Create, yeni oturum satırı ekler; ID ve CreatedAt doldurulur.
	Create(ctx context.Context, session *models.Session) error

	// GetByRefreshToken, süresi dolmamış oturumu döner; yoksa pkg.ErrNotFound.
	GetByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error)

	// DeleteByRefreshToken, oturumu sonlandırır (logout / rotation).
	DeleteByRefreshToken(ctx context.Context, refreshToken string) error

	// DeleteExpired, süresi dolmuş oturumları siler; silinen sayıyı döner.
	DeleteExpired(ctx context.Context) (int64, error)
}
