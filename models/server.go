// Package models — Server ve üyelik domain modelleri.
//
// Server, telemetri gönderen tek bir oyun sunucusunu temsil eder.
// Her sunucunun TEK bir owner'ı vardır (admin_id); ek okuma erişimi
// server_admins join tablosu üzerinden "member" rolüyle verilir.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Server, DB'deki "servers" tablosunun Go karşılığı.
//
// WebhookID tahmin edilemez bir token'dır — ingestion URL'ini oluşturur.
// Regenerate edildiğinde eski URL ANINDA geçersiz olur.
type Server struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	Name      string    `json:"name"`
	WebhookID string    `json:"webhook_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ServerWithMeta, sunucu listesi response'u için view model:
// sunucu + oyuncu sayısı + isteği yapan admin'in rolü.
type ServerWithMeta struct {
	Server
	PlayerCount int        `json:"player_count"`
	Role        ServerRole `json:"role"`
}

// ServerAdmin, üyelik kaydı — DB'deki "server_admins" tablosu.
// Invariant: owner bu tabloda ASLA yer almaz, owner'lık Server.AdminID'dedir.
type ServerAdmin struct {
	ID        string    `json:"id"`
	ServerID  string    `json:"server_id"`
	AdminID   string    `json:"admin_id"`
	Role      string    `json:"role"` // her zaman "member" — owner satırı yoktur
	CreatedAt time.Time `json:"created_at"`
}

// ServerAdminEntry, admin listesi response'u için view model.
// Owner kaydı DB'den değil sentezden gelir (role="owner").
type ServerAdminEntry struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"` // "owner" | "member"
}

// CreateServerRequest, sunucu oluşturma isteği.
type CreateServerRequest struct {
	Name string `json:"name"`
}

// Validate, CreateServerRequest kontrolü.
func (r *CreateServerRequest) Validate() error {
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("server name must be between 1 and 100 characters")
	}
	return nil
}

// AddServerAdminRequest, üye admin ekleme isteği.
// Email mevcut bir Admin hesabına çözümlenmek ZORUNDADIR —
// salt-email davet akışı yoktur.
type AddServerAdminRequest struct {
	Email string `json:"email"`
}

// Validate, AddServerAdminRequest kontrolü.
// Email, kayıtta saklanan normalize form ile eşleşsin diye
// trim + lowercase edilir.
func (r *AddServerAdminRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}
