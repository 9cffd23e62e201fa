// Package models — VerificationToken: hassas hesap mutasyonlarını koruyan
// tek kullanımlık 6 haneli kodlar.
//
// Üç token tipi tek tabloyu paylaşır; tipe özel payload (NewEmail,
// NewPasswordHash) nullable kolonlardır. Uygulama katmanında bu,
// tip + ilişkili veri taşıyan bir tagged variant olarak modellenir:
// her tip için ayrı constructor vardır ve payload alanları sadece
// ilgili constructor'da set edilir.
//
// Yaşam döngüsü: Issue → (Consume | Expire). Aynı (admin, tip) için
// yeni token verilmeden önce eskileri silinir — en fazla bir canlı token.
package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType, verification token'ın hangi akışa ait olduğunu belirtir.
type TokenType string

// İzin verilen TokenType değerleri.
const (
	TokenTypeEmailVerification TokenType = "email_verification"
	TokenTypePasswordChange    TokenType = "password_change"
	TokenTypeEmailChange       TokenType = "email_change"
)

// VerificationToken, DB'deki "verification_tokens" tablosunun Go karşılığı.
//
// NewPasswordHash: şifre değişikliğinde yeni şifre İSTEK ANINDA hash'lenir
// ve token'a gömülür — plaintext şifre hiçbir yerde saklanmaz. Kod onayı
// sadece hazır hash'i Admin.PasswordHash'e uygular.
type VerificationToken struct {
	ID              string    `json:"id"`
	AdminID         string    `json:"admin_id"`
	Code            string    `json:"-"` // API response'a asla dahil edilmez
	Type            TokenType `json:"type"`
	NewEmail        *string   `json:"-"`
	NewPasswordHash *string   `json:"-"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewEmailVerificationToken, email doğrulama token'ı oluşturur (payload'sız).
func NewEmailVerificationToken(adminID, code string, expiresAt time.Time) *VerificationToken {
	return &VerificationToken{
		AdminID:   adminID,
		Code:      code,
		Type:      TokenTypeEmailVerification,
		ExpiresAt: expiresAt,
	}
}

// NewPasswordChangeToken, şifre değişikliği token'ı oluşturur.
// newPasswordHash önceden hesaplanmış bcrypt hash'tir.
func NewPasswordChangeToken(adminID, code, newPasswordHash string, expiresAt time.Time) *VerificationToken {
	return &VerificationToken{
		AdminID:         adminID,
		Code:            code,
		Type:            TokenTypePasswordChange,
		NewPasswordHash: &newPasswordHash,
		ExpiresAt:       expiresAt,
	}
}

// NewEmailChangeToken, email değişikliği token'ı oluşturur.
func NewEmailChangeToken(adminID, code, newEmail string, expiresAt time.Time) *VerificationToken {
	return &VerificationToken{
		AdminID:   adminID,
		Code:      code,
		Type:      TokenTypeEmailChange,
		NewEmail:  &newEmail,
		ExpiresAt: expiresAt,
	}
}

// TokenClaims, JWT access token'ın payload'ı.
//
// models paketinde tanımlanır çünkü birden fazla katman (services,
// middleware) kullanır — circular dependency'yi önler.
type TokenClaims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}
