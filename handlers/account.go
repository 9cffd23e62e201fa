// Package handlers — AccountHandler: kod onaylı hesap mutasyon endpoint'leri.
//
// Tüm endpoint'ler auth middleware arkasındadır — admin context'ten gelir.
// Confirm endpoint'leri admin bazlı rate limit'e tabidir: 6 haneli kod
// brute-force ile denenebilir, limiter bunu anlamsız kılar.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
	"github.com/oguzhank/dayztrack/pkg/ratelimit"
	"github.com/oguzhank/dayztrack/services"
)

// AccountHandler, hesap yönetimi endpoint'lerini yöneten struct.
type AccountHandler struct {
	accountService services.AccountService
	codeLimiter    *ratelimit.AttemptLimiter
}

// NewAccountHandler, constructor.
// codeLimiter: kod onay brute-force koruması. nil ise devre dışı.
func NewAccountHandler(accountService services.AccountService, codeLimiter *ratelimit.AttemptLimiter) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		codeLimiter:    codeLimiter,
	}
}

// VerifyEmail godoc
// POST /api/account/verify-email
// Body: { "code": "123456" }
func (h *AccountHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	code, ok := h.readCode(w, r, admin.ID)
	if !ok {
		return
	}

	if err := h.accountService.VerifyEmail(r.Context(), admin.ID, code); err != nil {
		pkg.Error(w, err)
		return
	}

	h.resetLimiter(admin.ID)
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "email verified"})
}

// ResendVerification godoc
// POST /api/account/resend-verification
func (h *AccountHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	emailSent, err := h.accountService.ResendVerification(r.Context(), admin.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{
		"message":   "verification code issued",
		"emailSent": emailSent,
	})
}

// ChangePassword godoc
// POST /api/account/change-password
// Body: { "current_password": "...", "new_password": "..." }
//
// Şifre HEMEN değişmez — onay kodu gönderilir, confirm-password-change
// ile kod doğrulanınca değişir.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emailSent, err := h.accountService.InitiatePasswordChange(r.Context(), admin.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{
		"message":   "confirmation code sent",
		"emailSent": emailSent,
	})
}

// ConfirmPasswordChange godoc
// POST /api/account/confirm-password-change
// Body: { "code": "123456" }
func (h *AccountHandler) ConfirmPasswordChange(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	code, ok := h.readCode(w, r, admin.ID)
	if !ok {
		return
	}

	if err := h.accountService.ConfirmPasswordChange(r.Context(), admin.ID, code); err != nil {
		pkg.Error(w, err)
		return
	}

	h.resetLimiter(admin.ID)
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}

// ChangeEmail godoc
// POST /api/account/change-email
// Body: { "password": "...", "new_email": "..." }
//
// Onay kodu YENİ adrese gider — sahipliği kanıtlanması gereken adres odur.
func (h *AccountHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	var req models.ChangeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emailSent, err := h.accountService.InitiateEmailChange(r.Context(), admin.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{
		"message":   "confirmation code sent to new address",
		"emailSent": emailSent,
	})
}

// ConfirmEmailChange godoc
// POST /api/account/confirm-email-change
// Body: { "code": "123456" }
func (h *AccountHandler) ConfirmEmailChange(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	code, ok := h.readCode(w, r, admin.ID)
	if !ok {
		return
	}

	if err := h.accountService.ConfirmEmailChange(r.Context(), admin.ID, code); err != nil {
		pkg.Error(w, err)
		return
	}

	h.resetLimiter(admin.ID)
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "email changed, please verify the new address"})
}

// ─── Private Helpers ───

// readCode, confirm endpoint'lerinin ortak gövdesi: rate limit kontrolü +
// body parse + kod format validation. Hata yazıldıysa ok=false döner.
func (h *AccountHandler) readCode(w http.ResponseWriter, r *http.Request, adminID string) (string, bool) {
	if h.codeLimiter != nil && !h.codeLimiter.Allow(adminID) {
		retryAfter := h.codeLimiter.RetryAfterSeconds(adminID)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many attempts, please try again in %s",
				ratelimit.FormatRetryMessage(retryAfter)))
		return "", false
	}

	var req models.ConfirmCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}

	if err := req.Validate(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return "", false
	}

	return req.Code, true
}

func (h *AccountHandler) resetLimiter(adminID string) {
	if h.codeLimiter != nil {
		h.codeLimiter.Reset(adminID)
	}
}

// requireAdmin, context'ten admin'i çeker; yoksa 401 yazar.
// Auth middleware'in arkasındaki tüm handler'lar bunu kullanır.
func requireAdmin(w http.ResponseWriter, r *http.Request) (*models.Admin, bool) {
	admin, ok := r.Context().Value(AdminContextKey).(*models.Admin)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "admin not found in context")
		return nil, false
	}
	return admin, true
}
