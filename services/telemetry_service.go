// Package services — TelemetryService, webhook ingestion ve okuma path'i.
//
// Ingestion pipeline'ı:
//  1. webhookId → sunucu çözümleme (bilinmeyen → 404, pasif → 403)
//  2. Payload parse + structural validation (hatalıysa 400 + alan listesi,
//     HİÇBİR şey yazılmaz)
//  3. Her oyuncu için: kimlik upsert (first-seen name korunur) +
//     append-only snapshot yazımı
//
// Oyuncular sırayla ve BAĞIMSIZ işlenir: birinin yazımı patlarsa o ana
// kadar yazılanlar geri alınmaz — telemetri verisi idempotent değildir ama
// kayıplı olması kabul edilebilir, sonraki teslimat açığı kapatır.
package services

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
	"github.com/oguzhank/dayztrack/repository"
)

// Snapshot listesi için limit sınırları.
const (
	defaultSnapshotLimit = 100
	maxSnapshotLimit     = 1000
)

// IngestResult, başarılı webhook teslimatının özeti.
type IngestResult struct {
	Message string   `json:"message"`
	Players []string `json:"players"` // işlenen oyuncu isimleri
}

// TelemetryService interface'i — ingestion + oyuncu/snapshot okuma.
type TelemetryService interface {
	// Ingest, webhook teslimatını işler.
	// Validation hataları []FieldError olarak döner (handler 400 + detay üretir);
	// diğer durumlar error'dadır. İkisi aynı anda dolu olmaz.
	Ingest(ctx context.Context, webhookID string, body io.Reader) (*IngestResult, []models.FieldError, error)

	// ListPlayers, sunucunun oyuncularını en son snapshot'larıyla döner.
	ListPlayers(ctx context.Context, serverID string) ([]models.PlayerWithLatestSnapshot, error)

	// ListSnapshots, oyuncunun snapshot geçmişini döner.
	// Oyuncu bu sunucuya ait değilse pkg.ErrNotFound — başka sunucunun
	// oyuncusu bu endpoint'ten OKUNAMAZ.
	ListSnapshots(ctx context.Context, serverID, playerID string, limit, days int) ([]models.PlayerSnapshot, error)
}

// telemetryService, TelemetryService interface'inin implementasyonu.
type telemetryService struct {
	serverRepo   repository.ServerRepository
	playerRepo   repository.PlayerRepository
	snapshotRepo repository.SnapshotRepository
}

// NewTelemetryService, constructor.
func NewTelemetryService(
	serverRepo repository.ServerRepository,
	playerRepo repository.PlayerRepository,
	snapshotRepo repository.SnapshotRepository,
) TelemetryService {
	return &telemetryService{
		serverRepo:   serverRepo,
		playerRepo:   playerRepo,
		snapshotRepo: snapshotRepo,
	}
}

func (s *telemetryService) Ingest(ctx context.Context, webhookID string, body io.Reader) (*IngestResult, []models.FieldError, error) {
	server, err := s.serverRepo.GetByWebhookID(ctx, webhookID)
	if err != nil {
		return nil, nil, err // bilinmeyen webhookId → ErrNotFound
	}

	if !server.IsActive {
		return nil, nil, fmt.Errorf("%w: server is inactive", pkg.ErrForbidden)
	}

	payload, fieldErrs := models.ParseWebhookPayload(body)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	names := make([]string, 0, len(payload.Players))
	for i := range payload.Players {
		wp := &payload.Players[i]

		player, err := s.playerRepo.Upsert(ctx, server.ID, wp.ID, wp.Name)
		if err != nil {
			log.Printf("[telemetry] upsert failed for steamId=%s server=%s: %v", wp.ID, server.ID, err)
			return nil, nil, err
		}

		snapshot := &models.PlayerSnapshot{
			PlayerID:        player.ID,
			ServerDate:      payload.ServerDate,
			Health:          wp.Health,
			Blood:           wp.Blood,
			Shock:           wp.Shock,
			Water:           wp.Water,
			Energy:          wp.Energy,
			HeatComfort:     wp.HeatComfort,
			Stamina:         wp.Stamina,
			Wetness:         wp.Wetness,
			EnvironmentTemp: wp.EnvironmentTemp,
			Playtime:        wp.Playtime,
			DistanceWalked:  wp.DistanceWalked,
			KilledZombies:   int(wp.KilledZombies),
			PositionX:       wp.Position[0],
			PositionY:       wp.Position[1],
			PositionZ:       wp.Position[2],
			Diseases:        wp.Diseases,
		}

		if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
			log.Printf("[telemetry] snapshot insert failed for player=%s: %v", player.ID, err)
			return nil, nil, err
		}

		names = append(names, player.Name)
	}

	return &IngestResult{
		Message: fmt.Sprintf("processed %d players", len(names)),
		Players: names,
	}, nil, nil
}

func (s *telemetryService) ListPlayers(ctx context.Context, serverID string) ([]models.PlayerWithLatestSnapshot, error) {
	return s.playerRepo.ListByServerWithLatest(ctx, serverID)
}

func (s *telemetryService) ListSnapshots(ctx context.Context, serverID, playerID string, limit, days int) ([]models.PlayerSnapshot, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	// Cross-server okuma engeli: oyuncu var ama BU sunucuya ait değilse
	// de 404 — varlığı sızdırılmaz
	if player.ServerID != serverID {
		return nil, pkg.ErrNotFound
	}

	if limit <= 0 {
		limit = defaultSnapshotLimit
	}
	if limit > maxSnapshotLimit {
		limit = maxSnapshotLimit
	}
	if days < 0 {
		days = 0
	}

	return s.snapshotRepo.ListByPlayer(ctx, playerID, limit, days)
}
