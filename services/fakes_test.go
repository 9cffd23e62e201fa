package services

import (
	"context"
	"fmt"
	"time"

	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
)

// In-memory repository fake'leri — service testleri SQLite'a dokunmaz.
// Sadece test goroutine'inden erişilirler, mutex gerekmez.

type fakeAdminRepo struct {
	admins map[string]*models.Admin
	nextID int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*models.Admin)}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	for _, a := range r.admins {
		if a.Email == admin.Email {
			return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
		}
	}
	r.nextID++
	admin.ID = fmt.Sprintf("admin-%d", r.nextID)
	admin.CreatedAt = time.Now()
	stored := *admin
	r.admins[admin.ID] = &stored
	return nil
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id string) (*models.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeAdminRepo) SetEmailVerified(_ context.Context, adminID string, verified bool) error {
	a, ok := r.admins[adminID]
	if !ok {
		return pkg.ErrNotFound
	}
	a.IsEmailVerified = verified
	return nil
}

func (r *fakeAdminRepo) UpdatePassword(_ context.Context, adminID, newPasswordHash string) error {
	a, ok := r.admins[adminID]
	if !ok {
		return pkg.ErrNotFound
	}
	a.PasswordHash = newPasswordHash
	return nil
}

func (r *fakeAdminRepo) UpdateEmail(_ context.Context, adminID, newEmail string) error {
	a, ok := r.admins[adminID]
	if !ok {
		return pkg.ErrNotFound
	}
	a.Email = newEmail
	a.IsEmailVerified = false
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.Session // refresh token → session
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	r.nextID++
	session.ID = fmt.Sprintf("session-%d", r.nextID)
	session.CreatedAt = time.Now()
	stored := *session
	r.sessions[session.RefreshToken] = &stored
	return nil
}

func (r *fakeSessionRepo) GetByRefreshToken(_ context.Context, refreshToken string) (*models.Session, error) {
	s, ok := r.sessions[refreshToken]
	if !ok || time.Now().After(s.ExpiresAt) {
		return nil, pkg.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) DeleteByRefreshToken(_ context.Context, refreshToken string) error {
	if _, ok := r.sessions[refreshToken]; !ok {
		return pkg.ErrNotFound
	}
	delete(r.sessions, refreshToken)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	for token, s := range r.sessions {
		if time.Now().After(s.ExpiresAt) {
			delete(r.sessions, token)
			n++
		}
	}
	return n, nil
}

type fakeServerRepo struct {
	servers map[string]*models.Server
	members map[string]map[string]bool // serverID → adminID set
	nextID  int
}

func newFakeServerRepo() *fakeServerRepo {
	return &fakeServerRepo{
		servers: make(map[string]*models.Server),
		members: make(map[string]map[string]bool),
	}
}

func (r *fakeServerRepo) Create(_ context.Context, server *models.Server) error {
	r.nextID++
	server.ID = fmt.Sprintf("server-%d", r.nextID)
	server.CreatedAt = time.Now()
	stored := *server
	r.servers[server.ID] = &stored
	r.members[server.ID] = make(map[string]bool)
	return nil
}

func (r *fakeServerRepo) GetByID(_ context.Context, id string) (*models.Server, error) {
	s, ok := r.servers[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeServerRepo) GetByWebhookID(_ context.Context, webhookID string) (*models.Server, error) {
	for _, s := range r.servers {
		if s.WebhookID == webhookID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeServerRepo) ListByAdmin(_ context.Context, adminID string) ([]models.ServerWithMeta, error) {
	var out []models.ServerWithMeta
	for _, s := range r.servers {
		role := models.RoleNone
		if s.AdminID == adminID {
			role = models.RoleOwner
		} else if r.members[s.ID][adminID] {
			role = models.RoleMember
		}
		if role == models.RoleNone {
			continue
		}
		out = append(out, models.ServerWithMeta{Server: *s, Role: role})
	}
	return out, nil
}

func (r *fakeServerRepo) UpdateWebhookID(_ context.Context, serverID, newWebhookID string) error {
	s, ok := r.servers[serverID]
	if !ok {
		return pkg.ErrNotFound
	}
	s.WebhookID = newWebhookID
	return nil
}

func (r *fakeServerRepo) Delete(_ context.Context, serverID string) error {
	if _, ok := r.servers[serverID]; !ok {
		return pkg.ErrNotFound
	}
	delete(r.servers, serverID)
	delete(r.members, serverID)
	return nil
}

func (r *fakeServerRepo) ResolveRole(_ context.Context, serverID, adminID string) (models.ServerRole, error) {
	s, ok := r.servers[serverID]
	if !ok {
		return models.RoleNone, nil
	}
	if s.AdminID == adminID {
		return models.RoleOwner, nil
	}
	if r.members[serverID][adminID] {
		return models.RoleMember, nil
	}
	return models.RoleNone, nil
}

func (r *fakeServerRepo) AddMember(_ context.Context, serverID, adminID string) (*models.ServerAdmin, error) {
	if r.members[serverID][adminID] {
		return nil, fmt.Errorf("%w: already a member", pkg.ErrAlreadyExists)
	}
	r.members[serverID][adminID] = true
	return &models.ServerAdmin{
		ID:        fmt.Sprintf("member-%s-%s", serverID, adminID),
		ServerID:  serverID,
		AdminID:   adminID,
		Role:      "member",
		CreatedAt: time.Now(),
	}, nil
}

func (r *fakeServerRepo) RemoveMember(_ context.Context, serverID, adminID string) error {
	if !r.members[serverID][adminID] {
		return pkg.ErrNotFound
	}
	delete(r.members[serverID], adminID)
	return nil
}

func (r *fakeServerRepo) ListAdmins(_ context.Context, serverID string) ([]models.ServerAdminEntry, error) {
	s, ok := r.servers[serverID]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	entries := []models.ServerAdminEntry{{AdminID: s.AdminID, Role: "owner"}}
	for adminID := range r.members[serverID] {
		entries = append(entries, models.ServerAdminEntry{AdminID: adminID, Role: "member"})
	}
	return entries, nil
}

type fakePlayerRepo struct {
	players map[string]*models.Player // player ID → player
	nextID  int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[string]*models.Player)}
}

func (r *fakePlayerRepo) Upsert(_ context.Context, serverID, steamID, name string) (*models.Player, error) {
	for _, p := range r.players {
		if p.ServerID == serverID && p.SteamID == steamID {
			p.LastSeen = time.Now()
			copied := *p
			return &copied, nil
		}
	}
	r.nextID++
	p := &models.Player{
		ID:       fmt.Sprintf("player-%d", r.nextID),
		ServerID: serverID,
		SteamID:  steamID,
		Name:     name,
		LastSeen: time.Now(),
	}
	r.players[p.ID] = p
	copied := *p
	return &copied, nil
}

func (r *fakePlayerRepo) ListByServerWithLatest(_ context.Context, serverID string) ([]models.PlayerWithLatestSnapshot, error) {
	var out []models.PlayerWithLatestSnapshot
	for _, p := range r.players {
		if p.ServerID == serverID {
			out = append(out, models.PlayerWithLatestSnapshot{Player: *p})
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id string) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

type fakeSnapshotRepo struct {
	snapshots []models.PlayerSnapshot
	nextID    int
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{}
}

func (r *fakeSnapshotRepo) Create(_ context.Context, snapshot *models.PlayerSnapshot) error {
	r.nextID++
	snapshot.ID = fmt.Sprintf("snapshot-%d", r.nextID)
	snapshot.CreatedAt = time.Now()
	r.snapshots = append(r.snapshots, *snapshot)
	return nil
}

func (r *fakeSnapshotRepo) ListByPlayer(_ context.Context, playerID string, limit, days int) ([]models.PlayerSnapshot, error) {
	var out []models.PlayerSnapshot
	cutoff := time.Time{}
	if days > 0 {
		cutoff = time.Now().AddDate(0, 0, -days)
	}
	// En yeniden eskiye
	for i := len(r.snapshots) - 1; i >= 0; i-- {
		s := r.snapshots[i]
		if s.PlayerID != playerID {
			continue
		}
		if days > 0 && s.CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, s)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type fakeVerificationRepo struct {
	tokens map[string]*models.VerificationToken
	nextID int
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{tokens: make(map[string]*models.VerificationToken)}
}

func (r *fakeVerificationRepo) Create(_ context.Context, token *models.VerificationToken) error {
	r.nextID++
	token.ID = fmt.Sprintf("token-%d", r.nextID)
	token.CreatedAt = time.Now()
	stored := *token
	r.tokens[token.ID] = &stored
	return nil
}

func (r *fakeVerificationRepo) GetValid(_ context.Context, adminID string, tokenType models.TokenType, code string) (*models.VerificationToken, error) {
	for _, t := range r.tokens {
		if t.AdminID == adminID && t.Type == tokenType && t.Code == code && time.Now().Before(t.ExpiresAt) {
			copied := *t
			return &copied, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeVerificationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tokens[id]; !ok {
		return pkg.ErrNotFound
	}
	delete(r.tokens, id)
	return nil
}

func (r *fakeVerificationRepo) DeleteByAdminAndType(_ context.Context, adminID string, tokenType models.TokenType) error {
	for id, t := range r.tokens {
		if t.AdminID == adminID && t.Type == tokenType {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *fakeVerificationRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	for id, t := range r.tokens {
		if !time.Now().Before(t.ExpiresAt) {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

// byAdminAndType, testlerin token'lara (ve kodlarına) erişmesi için helper.
func (r *fakeVerificationRepo) byAdminAndType(adminID string, tokenType models.TokenType) []*models.VerificationToken {
	var out []*models.VerificationToken
	for _, t := range r.tokens {
		if t.AdminID == adminID && t.Type == tokenType {
			out = append(out, t)
		}
	}
	return out
}

// fakeEmailSender, gönderilen kodları kaydeder; failSend=true ise hata döner.
type fakeEmailSender struct {
	failSend bool
	sent     []sentEmail
}

type sentEmail struct {
	to   string
	code string
}

func (s *fakeEmailSender) SendVerificationCode(_ context.Context, toEmail, _, code string) error {
	return s.record(toEmail, code)
}

func (s *fakeEmailSender) SendPasswordChangeCode(_ context.Context, toEmail, _, code string) error {
	return s.record(toEmail, code)
}

func (s *fakeEmailSender) SendEmailChangeCode(_ context.Context, toEmail, _, code string) error {
	return s.record(toEmail, code)
}

func (s *fakeEmailSender) record(toEmail, code string) error {
	if s.failSend {
		return fmt.Errorf("resend unavailable")
	}
	s.sent = append(s.sent, sentEmail{to: toEmail, code: code})
	return nil
}
