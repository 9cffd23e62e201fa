// Package services, business logic katmanını barındırır.
//
// Handler (HTTP) ile Repository (DB) arasında oturan katmandır.
// Tüm iş kuralları burada yaşar: şifre hash'leme, JWT üretimi,
// webhook payload işleme, erişim rolü kararları.
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
	"github.com/oguzhank/dayztrack/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService interface'i — kimlik doğrulama API'si.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	// Register, yeni hesap oluşturur, token çifti üretir ve email
	// doğrulama kodunu (best-effort) gönderir.
	Register(ctx context.Context, req *models.RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
	// GetAdmin, /me endpoint'i için güncel hesap bilgisini döner.
	GetAdmin(ctx context.Context, adminID string) (*models.Admin, error)
}

// AuthTokens, login/register sonrası dönen token çifti.
type AuthTokens struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	Admin        models.Admin `json:"admin"`
}

// RegisterResult, AuthTokens + doğrulama emailinin gidip gitmediği.
type RegisterResult struct {
	AuthTokens
	EmailSent bool `json:"email_sent"`
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	adminRepo   repository.AdminRepository
	sessionRepo repository.SessionRepository
	accounts    AccountService
	jwtSecret   []byte
	accessExp   time.Duration
	refreshExp  time.Duration
}

// NewAuthService, constructor.
func NewAuthService(
	adminRepo repository.AdminRepository,
	sessionRepo repository.SessionRepository,
	accounts AccountService,
	jwtSecret string,
	accessExpMinutes int,
	refreshExpDays int,
) AuthService {
	return &authService{
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
		accounts:    accounts,
		jwtSecret:   []byte(jwtSecret),
		accessExp:   time.Duration(accessExpMinutes) * time.Minute,
		refreshExp:  time.Duration(refreshExpDays) * 24 * time.Hour,
	}
}

// Register, yeni admin hesabı oluşturur.
//
// Hesap doğrulanmamış (is_email_verified=false) başlar ama token çifti
// hemen verilir — dashboard'a giriş doğrulama beklemez, doğrulama sadece
// hassas akışların (şifre/email değişikliği onayı) ön koşuludur.
// Email gönderimi başarısız olsa bile kayıt BAŞARILIDIR (emailSent=false).
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*RegisterResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Bcrypt hash (cost=12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err // ErrAlreadyExists olabilir
	}

	emailSent, err := s.accounts.IssueEmailVerification(ctx, admin)
	if err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(ctx, admin)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{AuthTokens: *tokens, EmailSent: emailSent}, nil
}

// Login, email + şifre ile giriş yapar.
// Bilinmeyen email ile yanlış şifre AYNI mesajla reddedilir.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
	}

	return s.generateTokens(ctx, admin)
}

// RefreshToken, refresh token'ı yeni bir token çiftiyle DEĞİŞTİRİR (rotation).
// Eski refresh token her durumda geçersizleşir.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := s.sessionRepo.DeleteByRefreshToken(ctx, session.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	admin, err := s.adminRepo.GetByID(ctx, session.AdminID)
	if err != nil {
		return nil, err
	}

	return s.generateTokens(ctx, admin)
}

// Logout, refresh token'ı iptal eder. Bilinmeyen token no-op'tur —
// logout idempotent'tir.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	err := s.sessionRepo.DeleteByRefreshToken(ctx, refreshToken)
	if errors.Is(err, pkg.ErrNotFound) {
		return nil
	}
	return err
}

// ValidateAccessToken, JWT access token'ı doğrular ve claims'i döner.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims, nil
}

// GetAdmin, admin'i ID ile döner.
func (s *authService) GetAdmin(ctx context.Context, adminID string) (*models.Admin, error) {
	return s.adminRepo.GetByID(ctx, adminID)
}

// ─── Private Helpers ───

func (s *authService) generateTokens(ctx context.Context, admin *models.Admin) (*AuthTokens, error) {
	now := time.Now()
	accessClaims := &models.TokenClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "dayztrack",
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshBytes := make([]byte, 32)
	if _, err := rand.Read(refreshBytes); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshString := hex.EncodeToString(refreshBytes)

	session := &models.Session{
		AdminID:      admin.ID,
		RefreshToken: refreshString,
		ExpiresAt:    now.Add(s.refreshExp),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	adminCopy := *admin
	adminCopy.PasswordHash = ""

	return &AuthTokens{
		AccessToken:  accessString,
		RefreshToken: refreshString,
		Admin:        adminCopy,
	}, nil
}
