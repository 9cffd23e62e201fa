// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları burada tanımlıdır:
//   - auth: JWT token doğrulaması
//   - authMember: auth + sunucu okuma erişimi (owner veya member)
//   - authOwner: auth + sunucu mutasyon yetkisi (sadece owner)
package main

import (
	"fmt"
	"net/http"

	"github.com/oguzhank/dayztrack/middleware"
	"github.com/oguzhank/dayztrack/repository"
	"github.com/oguzhank/dayztrack/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	serverService services.ServerService,
	adminRepo repository.AdminRepository,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, adminRepo)
	accessMw := middleware.NewServerAccessMiddleware(serverService)

	// ─── Middleware Chain Helpers ───
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}
	authMember := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(accessMw.RequireMember(http.HandlerFunc(handler)))
	}
	authOwner := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(accessMw.RequireOwner(http.HandlerFunc(handler)))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"dayztrack"}`)
	})

	// Webhook ingestion — auth YOK, kimlik webhookId'nin kendisidir.
	// Oyun sunucusu mod'u JWT taşıyamaz.
	mux.HandleFunc("POST /api/webhook/{webhookId}", h.Telemetry.Ingest)

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.Handle("GET /api/auth/me", auth(h.Auth.Me))

	// Account — kod onaylı hesap mutasyonları
	mux.Handle("POST /api/account/verify-email", auth(h.Account.VerifyEmail))
	mux.Handle("POST /api/account/resend-verification", auth(h.Account.ResendVerification))
	mux.Handle("POST /api/account/change-password", auth(h.Account.ChangePassword))
	mux.Handle("POST /api/account/confirm-password-change", auth(h.Account.ConfirmPasswordChange))
	mux.Handle("POST /api/account/change-email", auth(h.Account.ChangeEmail))
	mux.Handle("POST /api/account/confirm-email-change", auth(h.Account.ConfirmEmailChange))

	// Servers — liste ve oluşturma sunucu bağımsız
	mux.Handle("GET /api/servers", auth(h.Server.List))
	mux.Handle("POST /api/servers", auth(h.Server.Create))

	// Server-scoped — okuma RequireMember, mutasyon RequireOwner
	mux.Handle("GET /api/servers/{serverId}", authMember(h.Server.Get))
	mux.Handle("DELETE /api/servers/{serverId}", authOwner(h.Server.Delete))
	mux.Handle("POST /api/servers/{serverId}/regenerate-webhook", authOwner(h.Server.RegenerateWebhook))

	// Üye admin yönetimi
	mux.Handle("GET /api/servers/{serverId}/admins", authMember(h.Server.ListAdmins))
	mux.Handle("POST /api/servers/{serverId}/admins", authOwner(h.Server.AddAdmin))
	mux.Handle("DELETE /api/servers/{serverId}/admins/{adminId}", authOwner(h.Server.RemoveAdmin))

	// Telemetri okuma
	mux.Handle("GET /api/servers/{serverId}/players", authMember(h.Telemetry.ListPlayers))
	mux.Handle("GET /api/servers/{serverId}/players/{playerId}/snapshots", authMember(h.Telemetry.ListSnapshots))
}
