package repository

import (
	"context"

	"github.com/oguzhank/dayztrack/models"
)

// PlayerRepository, oyuncu kimlik kayıtlarına erişim interface'i.
//
// Upsert, webhook ingestion'ın kimlik çözümleme adımıdır: (server_id,
// steam_id) için kayıt yoksa oluşturur, varsa sadece last_seen'i günceller.
// Name ilk kayıtta set edilir ve bir daha değişmez.
type PlayerRepository interface {
	// Upsert, oyuncuyu bulur veya oluşturur; her durumda last_seen günceller.
	// Dönen Player DB'deki güncel satırdır (ID dahil).
	Upsert(ctx context.Context, serverID, steamID, name string) (*models.Player, error)

	// ListByServerWithLatest, sunucunun tüm oyuncularını en son
	// snapshot'larıyla birlikte döner (snapshot'sız oyuncuda nil).
	ListByServerWithLatest(ctx context.Context, serverID string) ([]models.PlayerWithLatestSnapshot, error)

	// GetByID, oyuncuyu ID ile döner; yoksa pkg.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Player, error)
}
