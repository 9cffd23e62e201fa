// Package models — Session: JWT refresh token oturumu.
//
// Access token kısa ömürlüdür (15dk), refresh token uzun (7 gün).
// Refresh token'lar DB'de tutulur: çalınan token revoke edilebilir,
// logout'ta sadece ilgili oturum silinir.
package models

import "time"

// Session, DB'deki "sessions" tablosunun Go karşılığı.
type Session struct {
	ID           string    `json:"id"`
	AdminID      string    `json:"admin_id"`
	RefreshToken string    `json:"-"` // API'ye gönderilmez
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
