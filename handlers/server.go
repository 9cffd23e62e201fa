// Package handlers — ServerHandler: sunucu CRUD + üye admin yönetimi.
//
// {serverId}'li route'lar ServerAccessMiddleware arkasındadır: okuma
// endpoint'leri RequireMember, mutasyonlar RequireOwner ile sarılır.
// Handler'a ulaşan istek erişim kontrolünden geçmiştir — serverID
// context'ten okunur.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
	"github.com/oguzhank/dayztrack/services"
)

// ServerHandler, sunucu endpoint'lerini yöneten struct.
type ServerHandler struct {
	serverService services.ServerService
}

// NewServerHandler, constructor.
func NewServerHandler(serverService services.ServerService) *ServerHandler {
	return &ServerHandler{serverService: serverService}
}

// Create godoc
// POST /api/servers
// Body: { "name": "..." }
func (h *ServerHandler) Create(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	var req models.CreateServerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	server, err := h.serverService.Create(r.Context(), admin.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, server)
}

// List godoc
// GET /api/servers
// Admin'in owner veya member olduğu tüm sunucular.
func (h *ServerHandler) List(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	servers, err := h.serverService.List(r.Context(), admin.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if servers == nil {
		servers = []models.ServerWithMeta{}
	}

	pkg.JSON(w, http.StatusOK, servers)
}

// Get godoc
// GET /api/servers/{serverId} — RequireMember.
func (h *ServerHandler) Get(w http.ResponseWriter, r *http.Request) {
	serverID, ok := requireServerID(w, r)
	if !ok {
		return
	}

	server, err := h.serverService.Get(r.Context(), serverID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	role, _ := r.Context().Value(ServerRoleContextKey).(models.ServerRole)

	pkg.JSON(w, http.StatusOK, map[string]any{
		"server": server,
		"role":   role,
	})
}

// RegenerateWebhook godoc
// POST /api/servers/{serverId}/regenerate-webhook — RequireOwner.
// Eski webhook URL'i anında geçersizleşir.
func (h *ServerHandler) RegenerateWebhook(w http.ResponseWriter, r *http.Request) {
	serverID, ok := requireServerID(w, r)
	if !ok {
		return
	}

	server, err := h.serverService.RegenerateWebhook(r.Context(), serverID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, server)
}

// Delete godoc
// DELETE /api/servers/{serverId} — RequireOwner.
// Üyelik, oyuncu ve snapshot kayıtları cascade ile silinir.
func (h *ServerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	serverID, ok := requireServerID(w, r)
	if !ok {
		return
	}

	if err := h.serverService.Delete(r.Context(), serverID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "server deleted"})
}

// AddAdmin godoc
// POST /api/servers/{serverId}/admins — RequireOwner.
// Body: { "email": "..." }
func (h *ServerHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	serverID, ok := requireServerID(w, r)
	if !ok {
		return
	}

	var req models.AddServerAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.serverService.AddAdmin(r.Context(), serverID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, entry)
}

// RemoveAdmin godoc
// DELETE /api/servers/{serverId}/admins/{adminId} — RequireOwner.
func (h *ServerHandler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	serverID, ok := requireServerID(w, r)
	if !ok {
		return
	}

	adminID := r.PathValue("adminId")
	if adminID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "adminId is required")
		return
	}

	if err := h.serverService.RemoveAdmin(r.Context(), serverID, adminID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "admin removed"})
}

// ListAdmins godoc
// GET /api/servers/{serverId}/admins — RequireMember.
// Owner sentezlenmiş kayıt olarak listenin başındadır.
func (h *ServerHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	serverID, ok := requireServerID(w, r)
	if !ok {
		return
	}

	admins, err := h.serverService.ListAdmins(r.Context(), serverID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, admins)
}

// requireServerID, context'ten serverID'yi çeker; yoksa 500 yazar.
// Eksikse route yanlış kurulmuş demektir — middleware atlanmıştır.
func requireServerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	serverID, ok := r.Context().Value(ServerIDContextKey).(string)
	if !ok || serverID == "" {
		pkg.ErrorWithMessage(w, http.StatusInternalServerError, "server id not found in context")
		return "", false
	}
	return serverID, true
}
