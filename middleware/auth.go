// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Middleware'lar zincir şeklinde çalışır: Auth → ServerAccess → Handler.
// Go'da middleware bir fonksiyondur: func(next http.Handler) http.Handler.
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır;
// hata varsa next çağrılmaz, request orada durur.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/oguzhank/dayztrack/handlers"
	"github.com/oguzhank/dayztrack/pkg"
	"github.com/oguzhank/dayztrack/repository"
	"github.com/oguzhank/dayztrack/services"
)

// AuthMiddleware, JWT token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService services.AuthService
	adminRepo   repository.AdminRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, adminRepo repository.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		adminRepo:   adminRepo,
	}
}

// Require, JWT token zorunlu kılan middleware.
// Token yoksa veya geçersizse → 401 Unauthorized.
//
// HTTP header formatı: Authorization: Bearer <token>
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		// Token geçerli ama hesap silinmiş olabilir — DB'den getir
		admin, err := m.adminRepo.GetByID(r.Context(), claims.AdminID)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "account not found")
			return
		}

		// Hash context'te taşınmaz
		admin.PasswordHash = ""

		ctx := context.WithValue(r.Context(), handlers.AdminContextKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
