package repository

import (
	"context"

	"github.com/oguzhank/dayztrack/models"
)

// SnapshotRepository, append-only oyuncu snapshot kayıtlarına erişim.
//
// Update/Delete operasyonu bilinçli olarak yoktur: snapshot'lar immutable
// tarih verisidir, sadece eklenir ve okunur. Silme yalnızca oyuncu/sunucu
// silindiğinde FK cascade ile gerçekleşir.
type SnapshotRepository interface {
	// Create, yeni snapshot satırı ekler; ID ve CreatedAt doldurulur.
	Create(ctx context.Context, snapshot *models.PlayerSnapshot) error

	// ListByPlayer, oyuncunun snapshot'larını en yeniden eskiye döner.
	// days > 0 ise son N güne filtrelenir; limit her zaman uygulanır.
	ListByPlayer(ctx context.Context, playerID string, limit, days int) ([]models.PlayerSnapshot, error)
}
