package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oguzhank/dayztrack/database"
	"github.com/oguzhank/dayztrack/models"
	"github.com/oguzhank/dayztrack/pkg"
)

// sqlitePlayerRepo, PlayerRepository interface'inin SQLite implementasyonu.
type sqlitePlayerRepo struct {
	db database.TxQuerier
}

// NewSQLitePlayerRepo, constructor.
func NewSQLitePlayerRepo(db database.TxQuerier) PlayerRepository {
	return &sqlitePlayerRepo{db: db}
}

func (r *sqlitePlayerRepo) Upsert(ctx context.Context, serverID, steamID, name string) (*models.Player, error) {
	// ON CONFLICT: mevcut kayıtta sadece last_seen güncellenir, name
	// bilinçli olarak dokunulmaz (ilk görülen isim kalıcıdır).
	query := `
		INSERT INTO players (id, server_id, steam_id, name, last_seen)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (server_id, steam_id)
		DO UPDATE SET last_seen = CURRENT_TIMESTAMP
		RETURNING id, server_id, steam_id, name, last_seen`

	player := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, serverID, steamID, name).Scan(
		&player.ID, &player.ServerID, &player.SteamID, &player.Name, &player.LastSeen,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert player: %w", err)
	}

	return player, nil
}

func (r *sqlitePlayerRepo) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `
		SELECT id, server_id, steam_id, name, last_seen
		FROM players WHERE id = ?`

	player := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID, &player.ServerID, &player.SteamID, &player.Name, &player.LastSeen,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (r *sqlitePlayerRepo) ListByServerWithLatest(ctx context.Context, serverID string) ([]models.PlayerWithLatestSnapshot, error) {
	// Her oyuncu için en büyük (created_at, id) snapshot'ı LEFT JOIN ile
	// bağlanır — snapshot'sız oyuncular NULL kolonlarla gelir.
	query := `
		SELECT p.id, p.server_id, p.steam_id, p.name, p.last_seen,
			ps.id, ps.server_date, ps.health, ps.blood, ps.shock, ps.water,
			ps.energy, ps.heat_comfort, ps.stamina, ps.wetness,
			ps.environment_temp, ps.playtime, ps.distance_walked,
			ps.killed_zombies, ps.position_x, ps.position_y, ps.position_z,
			ps.diseases, ps.created_at
		FROM players p
		LEFT JOIN player_snapshots ps ON ps.id = (
			SELECT id FROM player_snapshots
			WHERE player_id = p.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)
		WHERE p.server_id = ?
		ORDER BY p.last_seen DESC`

	rows, err := r.db.QueryContext(ctx, query, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.PlayerWithLatestSnapshot
	for rows.Next() {
		var p models.PlayerWithLatestSnapshot
		var snapID, serverDate, diseases sql.NullString
		var health, blood, shock, water, energy, heatComfort sql.NullFloat64
		var stamina, wetness, envTemp, playtime, distance sql.NullFloat64
		var posX, posY, posZ sql.NullFloat64
		var killedZombies sql.NullInt64
		var createdAt sql.NullTime

		if err := rows.Scan(
			&p.ID, &p.ServerID, &p.SteamID, &p.Name, &p.LastSeen,
			&snapID, &serverDate, &health, &blood, &shock, &water,
			&energy, &heatComfort, &stamina, &wetness,
			&envTemp, &playtime, &distance,
			&killedZombies, &posX, &posY, &posZ,
			&diseases, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}

		if snapID.Valid {
			snap := &models.PlayerSnapshot{
				ID:              snapID.String,
				PlayerID:        p.ID,
				ServerDate:      serverDate.String,
				Health:          health.Float64,
				Blood:           blood.Float64,
				Shock:           shock.Float64,
				Water:           water.Float64,
				Energy:          energy.Float64,
				HeatComfort:     heatComfort.Float64,
				Stamina:         stamina.Float64,
				Wetness:         wetness.Float64,
				EnvironmentTemp: envTemp.Float64,
				Playtime:        playtime.Float64,
				DistanceWalked:  distance.Float64,
				KilledZombies:   int(killedZombies.Int64),
				PositionX:       posX.Float64,
				PositionY:       posY.Float64,
				PositionZ:       posZ.Float64,
				CreatedAt:       createdAt.Time,
			}
			if err := json.Unmarshal([]byte(diseases.String), &snap.Diseases); err != nil {
				return nil, fmt.Errorf("failed to decode diseases for snapshot %s: %w", snap.ID, err)
			}
			p.LatestSnapshot = snap
		}

		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}

	return players, nil
}
