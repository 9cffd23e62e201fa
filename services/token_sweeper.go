// Package services — TokenSweeper, süresi dolmuş kayıtları temizleyen
// periyodik arka plan servisi.
//
// Verification token'lar ve refresh session'lar okuma anında zaten
// expiry filtresinden geçer — sweeper correctness için değil, tablonun
// süresiz büyümemesi için vardır.
//
// Goroutine pattern: time.NewTicker + select + stopCh.
// Graceful shutdown: main.go'da sweeper.Stop() çağrılır.
package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/oguzhank/dayztrack/repository"
)

// TokenSweeper, periyodik temizlik servisi interface'i.
type TokenSweeper interface {
	// Start, sweeper goroutine'ini başlatır. İlk sweep hemen çalışır.
	Start()
	// Stop, sweeper goroutine'ini durdurur.
	Stop()
}

type tokenSweeper struct {
	verificationRepo repository.VerificationRepository
	sessionRepo      repository.SessionRepository

	interval time.Duration

	stopCh chan struct{}
	mu     sync.Mutex // Start/Stop race koruması
}

// NewTokenSweeper, constructor. interval production'da 1 saattir.
func NewTokenSweeper(
	verificationRepo repository.VerificationRepository,
	sessionRepo repository.SessionRepository,
	interval time.Duration,
) TokenSweeper {
	return &tokenSweeper{
		verificationRepo: verificationRepo,
		sessionRepo:      sessionRepo,
		interval:         interval,
		stopCh:           make(chan struct{}),
	}
}

func (s *tokenSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("[token-sweeper] starting (interval=%s)", s.interval)

	go func() {
		// İlk sweep'i hemen yap — restart sonrası birikmiş kayıtları temizle
		s.sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopCh:
				log.Println("[token-sweeper] stopped")
				return
			}
		}
	}()
}

func (s *tokenSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	close(s.stopCh)
}

// sweep, tek bir temizlik turu çalıştırır.
func (s *tokenSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tokens, err := s.verificationRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("[token-sweeper] failed to delete expired tokens: %v", err)
	}

	sessions, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("[token-sweeper] failed to delete expired sessions: %v", err)
	}

	if tokens > 0 || sessions > 0 {
		log.Printf("[token-sweeper] removed %d tokens, %d sessions", tokens, sessions)
	}
}
