package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var webhookIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func newTestServerService(t *testing.T) (ServerService, *fakeServerRepo, *fakeAdminRepo) {
	t.Helper()
	serverRepo := newFakeServerRepo()
	adminRepo := newFakeAdminRepo()
	return NewServerService(serverRepo, adminRepo), serverRepo, adminRepo
}

func seedSecondAdmin(t *testing.T, repo *fakeAdminRepo, email string) *models.Admin {
	t.Helper()
	admin := &models.Admin{Email: email, PasswordHash: "x", Name: "Member"}
	require.NoError(t, repo.Create(context.Background(), admin))
	return admin
}

func TestCreateServerGeneratesWebhookID(t *testing.T) {
	svc, _, _ := newTestServerService(t)

	server, err := svc.Create(context.Background(), "admin-1", &models.CreateServerRequest{Name: "Chernarus #1"})
	require.NoError(t, err)

	assert.Regexp(t, webhookIDPattern, server.WebhookID)
	assert.True(t, server.IsActive)
	assert.Equal(t, "admin-1", server.AdminID)
}

func TestCreateServerRejectsEmptyName(t *testing.T) {
	svc, _, _ := newTestServerService(t)

	_, err := svc.Create(context.Background(), "admin-1", &models.CreateServerRequest{Name: ""})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestRegenerateWebhookChangesID(t *testing.T) {
	svc, _, _ := newTestServerService(t)
	server, err := svc.Create(context.Background(), "admin-1", &models.CreateServerRequest{Name: "S"})
	require.NoError(t, err)

	regenerated, err := svc.RegenerateWebhook(context.Background(), server.ID)
	require.NoError(t, err)

	assert.NotEqual(t, server.WebhookID, regenerated.WebhookID)
	assert.Regexp(t, webhookIDPattern, regenerated.WebhookID)
}

func TestResolveRoleTaxonomy(t *testing.T) {
	svc, serverRepo, adminRepo := newTestServerService(t)
	member := seedSecondAdmin(t, adminRepo, "member@example.com")

	server, err := svc.Create(context.Background(), "admin-owner", &models.CreateServerRequest{Name: "S"})
	require.NoError(t, err)
	_, err = serverRepo.AddMember(context.Background(), server.ID, member.ID)
	require.NoError(t, err)

	ownerRole, err := svc.ResolveRole(context.Background(), server.ID, "admin-owner")
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, ownerRole)
	assert.True(t, ownerRole.IsMember(), "owner sıfır üyelik satırıyla bile member'dır")

	memberRole, err := svc.ResolveRole(context.Background(), server.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, memberRole)
	assert.False(t, memberRole.IsOwner())

	// Yabancı admin ile var olmayan sunucu aynı sonucu verir
	strangerRole, err := svc.ResolveRole(context.Background(), server.ID, "admin-stranger")
	require.NoError(t, err)
	missingRole, err := svc.ResolveRole(context.Background(), "no-such-server", "admin-owner")
	require.NoError(t, err)
	assert.Equal(t, models.RoleNone, strangerRole)
	assert.Equal(t, missingRole, strangerRole)
}

func TestAddAdminResolvesEmail(t *testing.T) {
	svc, _, adminRepo := newTestServerService(t)
	member := seedSecondAdmin(t, adminRepo, "member@example.com")

	server, err := svc.Create(context.Background(), "admin-owner", &models.CreateServerRequest{Name: "S"})
	require.NoError(t, err)

	entry, err := svc.AddAdmin(context.Background(), server.ID, &models.AddServerAdminRequest{Email: "member@example.com"})
	require.NoError(t, err)
	assert.Equal(t, member.ID, entry.AdminID)
	assert.Equal(t, "member", entry.Role)

	// İkinci ekleme conflict
	_, err = svc.AddAdmin(context.Background(), server.ID, &models.AddServerAdminRequest{Email: "member@example.com"})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestAddAdminUnknownEmail(t *testing.T) {
	svc, _, _ := newTestServerService(t)
	server, err := svc.Create(context.Background(), "admin-owner", &models.CreateServerRequest{Name: "S"})
	require.NoError(t, err)

	_, err = svc.AddAdmin(context.Background(), server.ID, &models.AddServerAdminRequest{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestAddAdminRejectsOwner(t *testing.T) {
	svc, _, adminRepo := newTestServerService(t)
	owner := seedSecondAdmin(t, adminRepo, "owner@example.com")

	server, err := svc.Create(context.Background(), owner.ID, &models.CreateServerRequest{Name: "S"})
	require.NoError(t, err)

	_, err = svc.AddAdmin(context.Background(), server.ID, &models.AddServerAdminRequest{Email: "owner@example.com"})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestRemoveAdmin(t *testing.T) {
	svc, serverRepo, adminRepo := newTestServerService(t)
	member := seedSecondAdmin(t, adminRepo, "member@example.com")

	server, err := svc.Create(context.Background(), "admin-owner", &models.CreateServerRequest{Name: "S"})
	require.NoError(t, err)
	_, err = serverRepo.AddMember(context.Background(), server.ID, member.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveAdmin(context.Background(), server.ID, member.ID))

	role, err := svc.ResolveRole(context.Background(), server.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleNone, role)

	// Üye olmayanı çıkarmak 404
	err = svc.RemoveAdmin(context.Background(), server.ID, member.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestRemoveAdminRejectsOwner(t *testing.T) {
	svc, _, _ := newTestServerService(t)
	server, err := svc.Create(context.Background(), "admin-owner", &models.CreateServerRequest{Name: "S"})
	require.NoError(t, err)

	err = svc.RemoveAdmin(context.Background(), server.ID, "admin-owner")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

// Owner'ın yazdığı email farklı case/boşlukla gelse de kayıtlı
// (lowercase) hesaba çözümlenmeli.
func TestAddAdminNormalizesEmail(t *testing.T) {
	svc, _, adminRepo := newTestServerService(t)
	member := seedSecondAdmin(t, adminRepo, "carol@example.com")

	server, err := svc.Create(context.Background(), "admin-owner", &models.CreateServerRequest{Name: "S"})
	require.NoError(t, err)

	entry, err := svc.AddAdmin(context.Background(), server.ID,
		&models.AddServerAdminRequest{Email: "  Carol@Example.COM "})
	require.NoError(t, err)
	assert.Equal(t, member.ID, entry.AdminID)
}
