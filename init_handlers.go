// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin"dir — sadece HTTP parse + service call + response write.
package main

import (
	"github.com/oguzhank/dayztrack/handlers"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Account   *handlers.AccountHandler
	Server    *handlers.ServerHandler
	Telemetry *handlers.TelemetryHandler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters) *Handlers {
	return &Handlers{
		Auth:      handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Account:   handlers.NewAccountHandler(svcs.Account, limiters.Code),
		Server:    handlers.NewServerHandler(svcs.Server),
		Telemetry: handlers.NewTelemetryHandler(svcs.Telemetry),
	}
}
