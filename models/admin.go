// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda API'den
// gelen/giden verilerin şeklini de belirler. json tag'leri struct field'larının
// JSON'a nasıl serialize/deserialize edileceğini belirler.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Admin, bir dashboard hesabını temsil eder.
// DB'deki "admins" tablosunun Go karşılığıdır.
type Admin struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"` // json:"-" → API response'a DAHİL ETME
	Name            string    `json:"name"`
	IsEmailVerified bool      `json:"is_email_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

// emailRegex, basit email format kontrolü.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailRegex, email format regex'ini döner — service katmanı da kullanır.
func EmailRegex() *regexp.Regexp {
	return emailRegex
}

// RegisterRequest, kayıt olurken dashboard'dan gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate, RegisterRequest'in geçerli olup olmadığını kontrol eder.
// Kurallar: geçerli email formatı, şifre ≥ 8 karakter, isim ≥ 2 karakter.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 2 || nameLen > 64 {
		return fmt.Errorf("name must be between 2 and 64 characters")
	}

	return nil
}

// LoginRequest, giriş yaparken dashboard'dan gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest kontrolü.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ChangePasswordRequest, şifre değişikliği BAŞLATMA isteği.
// Mevcut şifre doğrulanır, yeni şifre hash'lenip token'a gömülür —
// kod onayı gelene kadar Admin.PasswordHash DEĞİŞMEZ.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate, ChangePasswordRequest kontrolü.
func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return fmt.Errorf("current password is required")
	}
	if utf8.RuneCountInString(r.NewPassword) < 8 {
		return fmt.Errorf("new password must be at least 8 characters")
	}
	return nil
}

// ChangeEmailRequest, email değişikliği BAŞLATMA isteği.
// Güvenlik: mevcut şifre doğrulaması zorunlu (re-authentication).
type ChangeEmailRequest struct {
	Password string `json:"password"`
	NewEmail string `json:"new_email"`
}

// Validate, ChangeEmailRequest kontrolü.
func (r *ChangeEmailRequest) Validate() error {
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	r.NewEmail = strings.TrimSpace(strings.ToLower(r.NewEmail))
	if r.NewEmail == "" {
		return fmt.Errorf("new email is required")
	}
	if !emailRegex.MatchString(r.NewEmail) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ConfirmCodeRequest, 6 haneli doğrulama kodu ile onay isteği.
// verify-email, confirm-password-change ve confirm-email-change
// endpoint'lerinin üçü de aynı body'yi kullanır.
type ConfirmCodeRequest struct {
	Code string `json:"code"`
}

// Validate, ConfirmCodeRequest kontrolü — kod tam 6 ASCII rakam olmalı.
func (r *ConfirmCodeRequest) Validate() error {
	r.Code = strings.TrimSpace(r.Code)
	if len(r.Code) != 6 {
		return fmt.Errorf("code must be 6 digits")
	}
	for _, ch := range r.Code {
		if ch < '0' || ch > '9' {
			return fmt.Errorf("code must be 6 digits")
		}
	}
	return nil
}
