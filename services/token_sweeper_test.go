package services

import (
	"context"
	"testing"
	"time"

	"github.com/oguzhank/dayztrack/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sweep'i doğrudan çağırırız — goroutine + ticker beklemek testleri
// yavaşlatır ve flaky yapar.
func TestSweepRemovesOnlyExpired(t *testing.T) {
	verificationRepo := newFakeVerificationRepo()
	sessionRepo := newFakeSessionRepo()
	sweeper := NewTokenSweeper(verificationRepo, sessionRepo, time.Hour).(*tokenSweeper)

	ctx := context.Background()

	expired := models.NewEmailVerificationToken("admin-1", "111111", time.Now().Add(-time.Minute))
	live := models.NewEmailVerificationToken("admin-1", "222222", time.Now().Add(15*time.Minute))
	require.NoError(t, verificationRepo.Create(ctx, expired))
	require.NoError(t, verificationRepo.Create(ctx, live))

	require.NoError(t, sessionRepo.Create(ctx, &models.Session{
		AdminID:      "admin-1",
		RefreshToken: "stale-token",
		ExpiresAt:    time.Now().Add(-time.Hour),
	}))
	require.NoError(t, sessionRepo.Create(ctx, &models.Session{
		AdminID:      "admin-1",
		RefreshToken: "fresh-token",
		ExpiresAt:    time.Now().Add(time.Hour),
	}))

	sweeper.sweep()

	tokens := verificationRepo.byAdminAndType("admin-1", models.TokenTypeEmailVerification)
	require.Len(t, tokens, 1)
	assert.Equal(t, "222222", tokens[0].Code)

	_, err := sessionRepo.GetByRefreshToken(ctx, "fresh-token")
	assert.NoError(t, err)
	assert.Len(t, sessionRepo.sessions, 1)
}

func TestSweepEmptyReposIsNoop(t *testing.T) {
	sweeper := NewTokenSweeper(newFakeVerificationRepo(), newFakeSessionRepo(), time.Hour).(*tokenSweeper)
	sweeper.sweep() // panic ya da hata olmamalı
}
