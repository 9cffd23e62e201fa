// Package middleware — ServerAccessMiddleware: sunucu erişim kontrolü.
//
// URL'den {serverId} path parameter'ını alır, admin'in rolünü TEK sorguda
// çözer ve serverID + rolü context'e ekler. AuthMiddleware'den SONRA
// çalışır — context'te admin bilgisi zaten mevcuttur.
//
// Erişim taksonomisi:
//   - RoleNone → 404. Sunucu yoksa da, var ama erişim yoksa da AYNI cevap —
//     üye olmayan bir admin sunucunun varlığını öğrenemez.
//   - RequireOwner altında RoleMember → 403. Member sunucuyu görebildiği
//     için varlığını saklamanın anlamı yoktur; yetki eksikliği açıkça söylenir.
package middleware

import (
	"context"
	"net/http"

	"github.com/oguzhank/dayztrack/handlers"
	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
	"github.com/oguzhank/dayztrack/services"
)

// ServerAccessMiddleware, sunucu rol çözümleme middleware'ı.
type ServerAccessMiddleware struct {
	serverService services.ServerService
}

// NewServerAccessMiddleware, constructor.
func NewServerAccessMiddleware(serverService services.ServerService) *ServerAccessMiddleware {
	return &ServerAccessMiddleware{serverService: serverService}
}

// RequireMember, okuma erişimi (owner VEYA member) zorunlu kılar.
func (m *ServerAccessMiddleware) RequireMember(next http.Handler) http.Handler {
	return m.require(next, func(role models.ServerRole) bool { return role.IsMember() })
}

// RequireOwner, mutasyon yetkisi (sadece owner) zorunlu kılar.
func (m *ServerAccessMiddleware) RequireOwner(next http.Handler) http.Handler {
	return m.require(next, func(role models.ServerRole) bool { return role.IsOwner() })
}

func (m *ServerAccessMiddleware) require(next http.Handler, allowed func(models.ServerRole) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, ok := r.Context().Value(handlers.AdminContextKey).(*models.Admin)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "admin not found in context")
			return
		}

		// Go 1.22+ PathValue: route tanımındaki {serverId} parametresi
		serverID := r.PathValue("serverId")
		if serverID == "" {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "serverId is required")
			return
		}

		role, err := m.serverService.ResolveRole(r.Context(), serverID, admin.ID)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusInternalServerError, "failed to resolve server access")
			return
		}

		// Hiç erişim yok → 404, sunucunun varlığı sızdırılmaz
		if !role.IsMember() {
			pkg.ErrorWithMessage(w, http.StatusNotFound, "server not found")
			return
		}

		if !allowed(role) {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "owner access required")
			return
		}

		ctx := context.WithValue(r.Context(), handlers.ServerIDContextKey, serverID)
		ctx = context.WithValue(ctx, handlers.ServerRoleContextKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
