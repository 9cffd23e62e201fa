package repository

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzhank/dayztrack/database"
	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
)

// Gerçek SQLite üzerinde çalışan repo testleri — fake'lerin göremeyeceği
// davranışları (SQL expiry filtreleri, upsert, cascade) burada doğrularız.
// Her test kendi temp-file DB'sini açar, migration'lar embed'den çalışır.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db.Conn
}

func seedTestAdmin(t *testing.T, conn *sql.DB, email string) *models.Admin {
	t.Helper()
	admin := &models.Admin{Email: email, PasswordHash: "hash", Name: "Test Admin"}
	require.NoError(t, NewSQLiteAdminRepo(conn).Create(context.Background(), admin))
	return admin
}

func seedTestServer(t *testing.T, conn *sql.DB, adminID string) *models.Server {
	t.Helper()
	server := &models.Server{
		AdminID:   adminID,
		Name:      "Chernarus",
		WebhookID: "abcdef0123456789abcdef0123456789",
		IsActive:  true,
	}
	require.NoError(t, NewSQLiteServerRepo(conn).Create(context.Background(), server))
	return server
}

// Expiry SQL'de CURRENT_TIMESTAMP (offset'siz UTC metin) ile
// karşılaştırılır; bind edilen timestamp UTC'ye normalize edilmezse
// UTC dışı host'larda filtre offset kadar kayar. Bu yüzden buradaki
// zamanlar bilinçli olarak sabit UTC dışı zone'larda üretilir.
func TestVerificationGetValidExpiryNotAffectedByTimezone(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	admin := seedTestAdmin(t, conn, "a@example.com")
	repo := NewSQLiteVerificationRepo(conn)

	east := time.FixedZone("UTC+3", 3*3600)
	west := time.FixedZone("UTC-7", -7*3600)

	t.Run("dogudaki zone'da suresi dolmus token tuketilemez", func(t *testing.T) {
		expired := models.NewEmailVerificationToken(admin.ID, "111111",
			time.Now().In(east).Add(-time.Hour))
		require.NoError(t, repo.Create(ctx, expired))

		_, err := repo.GetValid(ctx, admin.ID, models.TokenTypeEmailVerification, "111111")
		assert.ErrorIs(t, err, pkg.ErrNotFound)
	})

	t.Run("batidaki zone'da gecerli token erken reddedilmez", func(t *testing.T) {
		live := models.NewEmailVerificationToken(admin.ID, "222222",
			time.Now().In(west).Add(15*time.Minute))
		require.NoError(t, repo.Create(ctx, live))

		got, err := repo.GetValid(ctx, admin.ID, models.TokenTypeEmailVerification, "222222")
		require.NoError(t, err)
		assert.Equal(t, "222222", got.Code)
	})

	t.Run("yanlis kod bulunamaz", func(t *testing.T) {
		_, err := repo.GetValid(ctx, admin.ID, models.TokenTypeEmailVerification, "999999")
		assert.ErrorIs(t, err, pkg.ErrNotFound)
	})
}

func TestVerificationDeleteExpiredRemovesOnlyExpired(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	admin := seedTestAdmin(t, conn, "a@example.com")
	repo := NewSQLiteVerificationRepo(conn)

	expired := models.NewEmailVerificationToken(admin.ID, "111111",
		time.Now().In(time.Local).Add(-time.Minute))
	require.NoError(t, repo.Create(ctx, expired))

	live := models.NewPasswordChangeToken(admin.ID, "222222", "newhash",
		time.Now().In(time.Local).Add(15*time.Minute))
	require.NoError(t, repo.Create(ctx, live))

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.GetValid(ctx, admin.ID, models.TokenTypePasswordChange, "222222")
	require.NoError(t, err)
	assert.Equal(t, live.ID, got.ID)
}

func TestSessionExpiryAgainstSQLite(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	admin := seedTestAdmin(t, conn, "a@example.com")
	repo := NewSQLiteSessionRepo(conn)

	east := time.FixedZone("UTC+3", 3*3600)

	stale := &models.Session{
		AdminID:      admin.ID,
		RefreshToken: "stale-token",
		ExpiresAt:    time.Now().In(east).Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, stale))

	fresh := &models.Session{
		AdminID:      admin.ID,
		RefreshToken: "fresh-token",
		ExpiresAt:    time.Now().In(east).Add(24 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, fresh))

	// Süresi dolmuş session, doğru token'la bile dönmez
	_, err := repo.GetByRefreshToken(ctx, "stale-token")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	got, err := repo.GetByRefreshToken(ctx, "fresh-token")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.AdminID)

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.GetByRefreshToken(ctx, "fresh-token")
	assert.NoError(t, err)
}

func TestPlayerUpsertAgainstSQLite(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	admin := seedTestAdmin(t, conn, "a@example.com")
	server := seedTestServer(t, conn, admin.ID)
	repo := NewSQLitePlayerRepo(conn)

	first, err := repo.Upsert(ctx, server.ID, "76561198000000001", "Survivor")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	// Aynı (server, steamID) tekrar gelirse yeni satır açılmaz,
	// isim ilk görülen haliyle kalır
	again, err := repo.Upsert(ctx, server.ID, "76561198000000001", "RenamedSurvivor")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Survivor", again.Name)

	other, err := repo.Upsert(ctx, server.ID, "76561198000000002", "Bandit")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}
