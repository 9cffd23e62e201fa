// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile email gönderim detayları soyutlanır.
// Şu anki implementasyon Resend API kullanır. İleride farklı bir sağlayıcıya
// geçmek için sadece yeni bir implementasyon yazıp constructor'da değiştirmek yeterli.
//
// Önemli davranış kuralı: email gönderimi best-effort'tur. Verification token
// zaten DB'ye yazılmıştır — gönderim başarısız olursa service katmanı
// emailSent=false raporlar ama operasyonu BAŞARISIZ saymaz.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// EmailSender, doğrulama kodu email'leri için interface.
// Service katmanı bu interface'e bağımlıdır, concrete Resend implementasyonuna değil.
type EmailSender interface {
	// SendVerificationCode, email doğrulama kodunu gönderir (kayıt sonrası).
	SendVerificationCode(ctx context.Context, toEmail, name, code string) error

	// SendPasswordChangeCode, şifre değişikliği onay kodunu gönderir.
	SendPasswordChangeCode(ctx context.Context, toEmail, name, code string) error

	// SendEmailChangeCode, yeni email adresine değişiklik onay kodunu gönderir.
	// Kod YENİ adrese gider — yeni adresin sahipliği böyle kanıtlanır.
	SendEmailChangeCode(ctx context.Context, toEmail, name, code string) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: noreply@dayztrack.app)
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// fromEmail: Gönderici email adresi — Resend'de doğrulanmış domain altında olmalı.
func NewResendSender(apiKey, fromEmail string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

func (s *resendSender) SendVerificationCode(ctx context.Context, toEmail, name, code string) error {
	html := codeEmailHTML(
		fmt.Sprintf("Welcome to DayZ Tracker, %s!", name),
		"Please verify your email address by entering this code:",
		code,
		"If you didn't request this, you can safely ignore this email.",
	)
	return s.send(ctx, toEmail, "Verify your email — DayZ Tracker", html)
}

func (s *resendSender) SendPasswordChangeCode(ctx context.Context, toEmail, name, code string) error {
	html := codeEmailHTML(
		fmt.Sprintf("Hello %s,", name),
		"You requested to change your password. Enter this code to confirm:",
		code,
		"If you didn't request this, please change your password immediately.",
	)
	return s.send(ctx, toEmail, "Password Change Confirmation — DayZ Tracker", html)
}

func (s *resendSender) SendEmailChangeCode(ctx context.Context, toEmail, name, code string) error {
	html := codeEmailHTML(
		fmt.Sprintf("Hello %s,", name),
		"You requested to change your email to this address. Enter this code to confirm:",
		code,
		"If you didn't request this, you can safely ignore this email.",
	)
	return s.send(ctx, toEmail, "Confirm Your New Email — DayZ Tracker", html)
}

// send, ortak Resend çağrısı.
func (s *resendSender) send(ctx context.Context, toEmail, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("DayZ Tracker <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// codeEmailHTML, 6 haneli kod içeren standart email template'i üretir.
// Tüm kod email'leri aynı görsel yapıyı paylaşır — sadece metinler değişir.
func codeEmailHTML(heading, lead, code, footer string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#111827;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#111827;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#1f2937;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#e5e7eb;font-size:24px;margin:0 0 8px 0;">DayZ Tracker</h1>
              <h2 style="color:#e5e7eb;font-size:18px;margin:0 0 24px 0;">%s</h2>
              <p style="color:#9ca3af;font-size:15px;line-height:1.6;margin:0 0 24px 0;">%s</p>
              <table width="100%%" cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td align="center" style="background-color:#111827;border-radius:6px;padding:20px;">
                    <span style="color:#e5e7eb;font-size:32px;font-weight:bold;letter-spacing:8px;">%s</span>
                  </td>
                </tr>
              </table>
              <p style="color:#6b7280;font-size:13px;line-height:1.6;margin:0 0 16px 0;">
                This code expires in 15 minutes.
              </p>
              <p style="color:#4b5563;font-size:13px;line-height:1.6;margin:0;">%s</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, heading, lead, code, footer)
}
