// Package services — AccountService, hassas hesap mutasyonlarının
// (email doğrulama, şifre/email değişikliği) kod onaylı akışlarını yönetir.
//
// Üç akış da aynı iskeleti izler:
//  1. Initiate: re-authentication (gereken yerde) + 6 haneli kod üret +
//     token'ı DB'ye yaz + kodu email ile gönder
//  2. Confirm: kod eşleşirse token'daki payload'ı uygula, token'ı sil
//
// Email gönderimi BEST-EFFORT'tur: Resend erişilemezse veya API key
// yoksa token yine de oluşur, çağırana emailSent=false raporlanır.
// Böylece email altyapısı çökükken bile akış (ör. test ortamı) kilitlenmez.
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
	"github.com/oguzhank/dayztrack/pkg/email"
	"github.com/oguzhank/dayztrack/repository"
	"golang.org/x/crypto/bcrypt"
)

// verificationCodeTTL — kod üretildikten sonra geçerlilik süresi.
const verificationCodeTTL = 15 * time.Minute

// AccountService interface'i — kod onaylı hesap mutasyonları.
//
// Initiate* metodlarının bool dönüşü emailSent'tir: token oluştu mu
// sorusu error ile, kod email'e ulaştı mı sorusu bool ile cevaplanır.
type AccountService interface {
	// IssueEmailVerification, admin'e email doğrulama kodu üretir ve gönderir.
	// Register akışı da bunu kullanır.
	IssueEmailVerification(ctx context.Context, admin *models.Admin) (bool, error)

	// ResendVerification, doğrulanmamış hesap için yeni kod üretir.
	// Hesap zaten doğrulanmışsa ErrBadRequest.
	ResendVerification(ctx context.Context, adminID string) (bool, error)

	// VerifyEmail, kodu doğrular ve is_email_verified'ı set eder.
	VerifyEmail(ctx context.Context, adminID, code string) error

	// InitiatePasswordChange, mevcut şifreyi doğrular, yeni şifreyi
	// hash'leyip token'a gömer ve onay kodu gönderir.
	InitiatePasswordChange(ctx context.Context, adminID string, req *models.ChangePasswordRequest) (bool, error)

	// ConfirmPasswordChange, kodu doğrular ve token'daki hash'i uygular.
	ConfirmPasswordChange(ctx context.Context, adminID, code string) error

	// InitiateEmailChange, şifreyi doğrular ve onay kodunu YENİ adrese gönderir.
	InitiateEmailChange(ctx context.Context, adminID string, req *models.ChangeEmailRequest) (bool, error)

	// ConfirmEmailChange, kodu doğrular, email'i günceller ve doğrulanmış
	// bayrağını sıfırlar — yeni adres tekrar doğrulanmalıdır.
	ConfirmEmailChange(ctx context.Context, adminID, code string) error
}

// accountService, AccountService interface'inin implementasyonu.
type accountService struct {
	adminRepo        repository.AdminRepository
	verificationRepo repository.VerificationRepository
	sender           email.EmailSender // nil ise gönderim devre dışı
}

// NewAccountService, constructor. sender nil olabilir (RESEND_API_KEY yoksa).
func NewAccountService(
	adminRepo repository.AdminRepository,
	verificationRepo repository.VerificationRepository,
	sender email.EmailSender,
) AccountService {
	return &accountService{
		adminRepo:        adminRepo,
		verificationRepo: verificationRepo,
		sender:           sender,
	}
}

func (s *accountService) IssueEmailVerification(ctx context.Context, admin *models.Admin) (bool, error) {
	code, err := generateCode()
	if err != nil {
		return false, err
	}

	token := models.NewEmailVerificationToken(admin.ID, code, time.Now().Add(verificationCodeTTL))
	if err := s.storeToken(ctx, token); err != nil {
		return false, err
	}

	return s.trySend(func(sender email.EmailSender) error {
		return sender.SendVerificationCode(ctx, admin.Email, admin.Name, code)
	}), nil
}

func (s *accountService) ResendVerification(ctx context.Context, adminID string) (bool, error) {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return false, err
	}

	if admin.IsEmailVerified {
		return false, fmt.Errorf("%w: email is already verified", pkg.ErrBadRequest)
	}

	return s.IssueEmailVerification(ctx, admin)
}

func (s *accountService) VerifyEmail(ctx context.Context, adminID, code string) error {
	token, err := s.consumeToken(ctx, adminID, models.TokenTypeEmailVerification, code)
	if err != nil {
		return err
	}

	if err := s.adminRepo.SetEmailVerified(ctx, adminID, true); err != nil {
		return err
	}

	return s.verificationRepo.Delete(ctx, token.ID)
}

func (s *accountService) InitiatePasswordChange(ctx context.Context, adminID string, req *models.ChangePasswordRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return false, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return false, fmt.Errorf("%w: current password is incorrect", pkg.ErrUnauthorized)
	}

	// Yeni şifre ŞİMDİ hash'lenir — plaintext token'a girmez
	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return false, fmt.Errorf("failed to hash new password: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return false, err
	}

	token := models.NewPasswordChangeToken(adminID, code, string(newHash), time.Now().Add(verificationCodeTTL))
	if err := s.storeToken(ctx, token); err != nil {
		return false, err
	}

	return s.trySend(func(sender email.EmailSender) error {
		return sender.SendPasswordChangeCode(ctx, admin.Email, admin.Name, code)
	}), nil
}

func (s *accountService) ConfirmPasswordChange(ctx context.Context, adminID, code string) error {
	token, err := s.consumeToken(ctx, adminID, models.TokenTypePasswordChange, code)
	if err != nil {
		return err
	}

	if token.NewPasswordHash == nil {
		return fmt.Errorf("%w: token has no password payload", pkg.ErrInternal)
	}

	if err := s.adminRepo.UpdatePassword(ctx, adminID, *token.NewPasswordHash); err != nil {
		return err
	}

	return s.verificationRepo.Delete(ctx, token.ID)
}

func (s *accountService) InitiateEmailChange(ctx context.Context, adminID string, req *models.ChangeEmailRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return false, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return false, fmt.Errorf("%w: password is incorrect", pkg.ErrUnauthorized)
	}

	if req.NewEmail == admin.Email {
		return false, fmt.Errorf("%w: new email is the same as current email", pkg.ErrBadRequest)
	}

	// Adres başka hesapta kayıtlıysa erken reddet
	if _, err := s.adminRepo.GetByEmail(ctx, req.NewEmail); err == nil {
		return false, fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
	} else if !errors.Is(err, pkg.ErrNotFound) {
		return false, err
	}

	code, err := generateCode()
	if err != nil {
		return false, err
	}

	token := models.NewEmailChangeToken(adminID, code, req.NewEmail, time.Now().Add(verificationCodeTTL))
	if err := s.storeToken(ctx, token); err != nil {
		return false, err
	}

	// Kod YENİ adrese gider — sahipliği kanıtlanan adres odur
	return s.trySend(func(sender email.EmailSender) error {
		return sender.SendEmailChangeCode(ctx, req.NewEmail, admin.Name, code)
	}), nil
}

func (s *accountService) ConfirmEmailChange(ctx context.Context, adminID, code string) error {
	token, err := s.consumeToken(ctx, adminID, models.TokenTypeEmailChange, code)
	if err != nil {
		return err
	}

	if token.NewEmail == nil {
		return fmt.Errorf("%w: token has no email payload", pkg.ErrInternal)
	}

	// UpdateEmail doğrulanmış bayrağını da sıfırlar
	if err := s.adminRepo.UpdateEmail(ctx, adminID, *token.NewEmail); err != nil {
		return err
	}

	return s.verificationRepo.Delete(ctx, token.ID)
}

// ─── Private Helpers ───

// storeToken, aynı (admin, tip) için eski token'ları silip yenisini yazar.
// Invariant: akış başına en fazla bir canlı token.
func (s *accountService) storeToken(ctx context.Context, token *models.VerificationToken) error {
	if err := s.verificationRepo.DeleteByAdminAndType(ctx, token.AdminID, token.Type); err != nil {
		return err
	}
	return s.verificationRepo.Create(ctx, token)
}

// consumeToken, kodu doğrular. Yanlış kod ile süresi dolmuş kod çağırana
// AYNI hatayla döner — hangi durumda olduğunu sızdırmayız.
func (s *accountService) consumeToken(ctx context.Context, adminID string, tokenType models.TokenType, code string) (*models.VerificationToken, error) {
	token, err := s.verificationRepo.GetValid(ctx, adminID, tokenType, code)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid or expired code", pkg.ErrBadRequest)
		}
		return nil, err
	}
	return token, nil
}

// trySend, email gönderimini best-effort çalıştırır ve sonucu bool döner.
func (s *accountService) trySend(send func(email.EmailSender) error) bool {
	if s.sender == nil {
		log.Println("[account] email sending disabled, code not delivered")
		return false
	}
	if err := send(s.sender); err != nil {
		log.Printf("[account] failed to send verification email: %v", err)
		return false
	}
	return true
}

// generateCode, crypto/rand ile [100000, 999999] aralığında 6 haneli kod üretir.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
