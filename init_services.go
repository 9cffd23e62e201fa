// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
//
// Sıralama kuralı: AccountService → AuthService'ten ÖNCE oluşturulmalı,
// çünkü Register kayıt sonrası email doğrulama kodunu AccountService
// üzerinden gönderir.
package main

import (
	"log"
	"time"

	"github.com/oguzhank/dayztrack/config"
	"github.com/oguzhank/dayztrack/pkg/email"
	"github.com/oguzhank/dayztrack/pkg/ratelimit"
	"github.com/oguzhank/dayztrack/services"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth      services.AuthService
	Account   services.AccountService
	Server    services.ServerService
	Telemetry services.TelemetryService
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login *ratelimit.AttemptLimiter // IP bazlı login brute-force koruması
	Code  *ratelimit.AttemptLimiter // admin bazlı kod onay brute-force koruması
}

// Stop, tüm limiter cleanup goroutine'lerini durdurur.
func (l *RateLimiters) Stop() {
	l.Login.Stop()
	l.Code.Stop()
}

// initServices, tüm service'leri, rate limiter'ları ve token sweeper'ı oluşturur.
func initServices(repos *Repositories, cfg *config.Config) (*Services, *RateLimiters, services.TokenSweeper) {
	// ─── Email sender (opsiyonel) ───
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" && cfg.Email.FromEmail != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail)
		log.Printf("[main] email sending enabled (from=%s)", cfg.Email.FromEmail)
	} else {
		log.Println("[main] RESEND_API_KEY not set, email sending disabled")
	}

	accountService := services.NewAccountService(repos.Admin, repos.Verification, emailSender)

	svcs := &Services{
		Account: accountService,
		Auth: services.NewAuthService(
			repos.Admin,
			repos.Session,
			accountService,
			cfg.JWT.Secret,
			cfg.JWT.AccessTokenExpiry,
			cfg.JWT.RefreshTokenExpiry,
		),
		Server:    services.NewServerService(repos.Server, repos.Admin),
		Telemetry: services.NewTelemetryService(repos.Server, repos.Player, repos.Snapshot),
	}

	// ─── Rate limiters ───
	// Login: 5 deneme / 15 dakika (IP bazlı).
	// Kod onayı: 10 deneme / 15 dakika (admin bazlı) — 6 haneli kodun
	// brute-force edilmesini anlamsız kılar.
	limiters := &RateLimiters{
		Login: ratelimit.NewAttemptLimiter(5, 15*time.Minute),
		Code:  ratelimit.NewAttemptLimiter(10, 15*time.Minute),
	}

	// ─── Token sweeper ───
	// Süresi dolmuş verification token ve session kayıtlarını saatte bir siler.
	sweeper := services.NewTokenSweeper(repos.Verification, repos.Session, time.Hour)

	return svcs, limiters, sweeper
}
