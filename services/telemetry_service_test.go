package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTelemetryService(t *testing.T) (TelemetryService, *fakeServerRepo, *fakePlayerRepo, *fakeSnapshotRepo) {
	t.Helper()
	serverRepo := newFakeServerRepo()
	playerRepo := newFakePlayerRepo()
	snapshotRepo := newFakeSnapshotRepo()
	return NewTelemetryService(serverRepo, playerRepo, snapshotRepo), serverRepo, playerRepo, snapshotRepo
}

func seedServer(t *testing.T, repo *fakeServerRepo, active bool) *models.Server {
	t.Helper()
	server := &models.Server{
		AdminID:   "admin-owner",
		Name:      "Chernarus",
		WebhookID: "abcdef0123456789abcdef0123456789",
		IsActive:  active,
	}
	require.NoError(t, repo.Create(context.Background(), server))
	return server
}

// playerJSON, geçerli tek bir oyuncu girdisi üretir.
func playerJSON(steamID, name string) string {
	return fmt.Sprintf(`{
		"Name": %q, "ID": %q,
		"Health": 95.5, "Blood": 5000, "Shock": 0, "Water": 800,
		"Energy": 600, "HeatComfort": 0.1, "Stamina": 100, "Wetness": 0,
		"EnvironmentTemp": 18.5, "Playtime": 3600, "DistanceWalked": 1234.5,
		"KilledZombies": 12, "Position": [4500.1, 300.2, 10200.9],
		"Diseases": ["cholera"]
	}`, name, steamID)
}

func validPayload(players ...string) string {
	return fmt.Sprintf(`{"ServerDate": "2024-06-01 12:00:00", "Players": [%s]}`,
		strings.Join(players, ","))
}

func TestIngestUnknownWebhookID(t *testing.T) {
	svc, _, _, _ := newTestTelemetryService(t)

	_, _, err := svc.Ingest(context.Background(), "deadbeef", strings.NewReader(validPayload()))
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestIngestInactiveServer(t *testing.T) {
	svc, serverRepo, _, _ := newTestTelemetryService(t)
	server := seedServer(t, serverRepo, false)

	_, _, err := svc.Ingest(context.Background(), server.WebhookID, strings.NewReader(validPayload()))
	assert.ErrorIs(t, err, pkg.ErrForbidden)
}

func TestIngestCreatesPlayersAndSnapshots(t *testing.T) {
	svc, serverRepo, playerRepo, snapshotRepo := newTestTelemetryService(t)
	server := seedServer(t, serverRepo, true)

	body := validPayload(playerJSON("7656111", "SurvivorOne"), playerJSON("7656222", "SurvivorTwo"))
	result, fieldErrs, err := svc.Ingest(context.Background(), server.WebhookID, strings.NewReader(body))
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	assert.Equal(t, []string{"SurvivorOne", "SurvivorTwo"}, result.Players)
	assert.Len(t, playerRepo.players, 2)
	assert.Len(t, snapshotRepo.snapshots, 2)

	snap := snapshotRepo.snapshots[0]
	assert.Equal(t, "2024-06-01 12:00:00", snap.ServerDate)
	assert.InDelta(t, 95.5, snap.Health, 0.001)
	assert.Equal(t, 12, snap.KilledZombies)
	assert.InDelta(t, 4500.1, snap.PositionX, 0.001)
	assert.InDelta(t, 300.2, snap.PositionY, 0.001)
	assert.InDelta(t, 10200.9, snap.PositionZ, 0.001)
	assert.Equal(t, []string{"cholera"}, snap.Diseases)
}

func TestIngestFirstSeenNameSticks(t *testing.T) {
	svc, serverRepo, playerRepo, snapshotRepo := newTestTelemetryService(t)
	server := seedServer(t, serverRepo, true)

	_, _, err := svc.Ingest(context.Background(), server.WebhookID,
		strings.NewReader(validPayload(playerJSON("7656111", "OriginalName"))))
	require.NoError(t, err)

	// Aynı steamId farklı isimle tekrar gelir
	_, _, err = svc.Ingest(context.Background(), server.WebhookID,
		strings.NewReader(validPayload(playerJSON("7656111", "RenamedPlayer"))))
	require.NoError(t, err)

	require.Len(t, playerRepo.players, 1)
	for _, p := range playerRepo.players {
		assert.Equal(t, "OriginalName", p.Name)
	}
	// Snapshot'lar yine de birikir — dedup yok
	assert.Len(t, snapshotRepo.snapshots, 2)
}

func TestIngestIdenticalDeliveriesAppend(t *testing.T) {
	svc, serverRepo, _, snapshotRepo := newTestTelemetryService(t)
	server := seedServer(t, serverRepo, true)

	body := validPayload(playerJSON("7656111", "Survivor"))
	for i := 0; i < 3; i++ {
		_, fieldErrs, err := svc.Ingest(context.Background(), server.WebhookID, strings.NewReader(body))
		require.NoError(t, err)
		require.Empty(t, fieldErrs)
	}

	assert.Len(t, snapshotRepo.snapshots, 3)
}

func TestIngestEmptyPlayersIsValid(t *testing.T) {
	svc, serverRepo, _, snapshotRepo := newTestTelemetryService(t)
	server := seedServer(t, serverRepo, true)

	result, fieldErrs, err := svc.Ingest(context.Background(), server.WebhookID,
		strings.NewReader(validPayload()))
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	assert.Empty(t, result.Players)
	assert.Empty(t, snapshotRepo.snapshots)
}

func TestIngestInvalidPayloadWritesNothing(t *testing.T) {
	svc, serverRepo, playerRepo, snapshotRepo := newTestTelemetryService(t)
	server := seedServer(t, serverRepo, true)

	// İki oyuncudan biri geçersiz — HİÇBİRİ yazılmaz
	broken := `{"Name": "Broken", "ID": "7656333", "Health": "not-a-number"}`
	body := validPayload(playerJSON("7656111", "Valid"), broken)

	result, fieldErrs, err := svc.Ingest(context.Background(), server.WebhookID, strings.NewReader(body))
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NotEmpty(t, fieldErrs)
	assert.Empty(t, playerRepo.players)
	assert.Empty(t, snapshotRepo.snapshots)
}

func TestListSnapshotsCrossServerDenied(t *testing.T) {
	svc, serverRepo, playerRepo, _ := newTestTelemetryService(t)
	serverA := seedServer(t, serverRepo, true)
	serverB := &models.Server{AdminID: "admin-2", Name: "Livonia", WebhookID: "ffff0123456789abcdef0123456789ab", IsActive: true}
	require.NoError(t, serverRepo.Create(context.Background(), serverB))

	player, err := playerRepo.Upsert(context.Background(), serverA.ID, "7656111", "Survivor")
	require.NoError(t, err)

	// Oyuncu serverA'ya ait — serverB üzerinden okunamaz
	_, err = svc.ListSnapshots(context.Background(), serverB.ID, player.ID, 0, 0)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = svc.ListSnapshots(context.Background(), serverA.ID, player.ID, 0, 0)
	assert.NoError(t, err)
}

func TestListSnapshotsLimitDefaults(t *testing.T) {
	svc, serverRepo, playerRepo, snapshotRepo := newTestTelemetryService(t)
	server := seedServer(t, serverRepo, true)

	player, err := playerRepo.Upsert(context.Background(), server.ID, "7656111", "Survivor")
	require.NoError(t, err)

	for i := 0; i < 150; i++ {
		require.NoError(t, snapshotRepo.Create(context.Background(), &models.PlayerSnapshot{
			PlayerID: player.ID,
			Diseases: []string{},
		}))
	}

	// limit=0 → default 100
	snaps, err := svc.ListSnapshots(context.Background(), server.ID, player.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, snaps, defaultSnapshotLimit)

	// limit üst sınırı aşarsa kırpılır
	snaps, err = svc.ListSnapshots(context.Background(), server.ID, player.ID, 5000, 0)
	require.NoError(t, err)
	assert.Len(t, snaps, 150)
}

// Webhook ID yenilendiğinde eski ingestion URL'i çalışmayı bırakmalı.
func TestRegenerateWebhookInvalidatesOldIngestURL(t *testing.T) {
	svc, serverRepo, _, _ := newTestTelemetryService(t)
	server := seedServer(t, serverRepo, true)
	oldWebhookID := server.WebhookID

	serverSvc := NewServerService(serverRepo, newFakeAdminRepo())
	updated, err := serverSvc.RegenerateWebhook(context.Background(), server.ID)
	require.NoError(t, err)
	require.NotEqual(t, oldWebhookID, updated.WebhookID)

	_, _, err = svc.Ingest(context.Background(), oldWebhookID,
		strings.NewReader(validPayload(playerJSON("7656111", "Survivor"))))
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	result, fieldErrs, err := svc.Ingest(context.Background(), updated.WebhookID,
		strings.NewReader(validPayload(playerJSON("7656111", "Survivor"))))
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, []string{"Survivor"}, result.Players)
}
