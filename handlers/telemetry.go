// Package handlers — TelemetryHandler: webhook ingestion + oyuncu okuma.
//
// Webhook endpoint'i auth middleware arkasında DEĞİLDİR — oyun sunucusu
// mod'u JWT taşıyamaz, tek kimlik webhookId'dir. Oyuncu/snapshot okuma
// endpoint'leri ise RequireMember ile korunur.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
	"github.com/oguzhank/dayztrack/services"
)

// TelemetryHandler, telemetri endpoint'lerini yöneten struct.
type TelemetryHandler struct {
	telemetryService services.TelemetryService
}

// NewTelemetryHandler, constructor.
func NewTelemetryHandler(telemetryService services.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{telemetryService: telemetryService}
}

// Ingest godoc
// POST /api/webhook/{webhookId}
//
// Hata taksonomisi:
//   - bilinmeyen webhookId → 404
//   - pasif sunucu → 403
//   - şema hatası → 400 + alan bazlı detay listesi (hiçbir şey yazılmaz)
func (h *TelemetryHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	webhookID := r.PathValue("webhookId")
	if webhookID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "webhookId is required")
		return
	}

	result, fieldErrs, err := h.telemetryService.Ingest(r.Context(), webhookID, r.Body)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	if len(fieldErrs) > 0 {
		pkg.ErrorWithDetails(w, http.StatusBadRequest, "invalid webhook payload", fieldErrs)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}

// ListPlayers godoc
// GET /api/servers/{serverId}/players — RequireMember.
// Her oyuncu en son snapshot'ıyla döner.
func (h *TelemetryHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	serverID, ok := requireServerID(w, r)
	if !ok {
		return
	}

	players, err := h.telemetryService.ListPlayers(r.Context(), serverID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if players == nil {
		players = []models.PlayerWithLatestSnapshot{}
	}

	pkg.JSON(w, http.StatusOK, players)
}

// ListSnapshots godoc
// GET /api/servers/{serverId}/players/{playerId}/snapshots — RequireMember.
// Query: ?limit=100&days=7 (limit default 100, max 1000; days=0 → filtresiz)
func (h *TelemetryHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	serverID, ok := requireServerID(w, r)
	if !ok {
		return
	}

	playerID := r.PathValue("playerId")
	if playerID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "playerId is required")
		return
	}

	limit := parseIntQuery(r, "limit", 0)
	days := parseIntQuery(r, "days", 0)

	snapshots, err := h.telemetryService.ListSnapshots(r.Context(), serverID, playerID, limit, days)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if snapshots == nil {
		snapshots = []models.PlayerSnapshot{}
	}

	pkg.JSON(w, http.StatusOK, snapshots)
}

// parseIntQuery, query parameter'ı int olarak okur.
// Eksik veya bozuk değer fallback'e düşer — hata üretmez.
func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
