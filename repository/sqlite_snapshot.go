package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oguzhank/dayztrack/database"
	"github.com/oguzhank/dayztrack/models"
)

// sqliteSnapshotRepo, SnapshotRepository interface'inin SQLite implementasyonu.
type sqliteSnapshotRepo struct {
	db database.TxQuerier
}

// NewSQLiteSnapshotRepo, constructor.
func NewSQLiteSnapshotRepo(db database.TxQuerier) SnapshotRepository {
	return &sqliteSnapshotRepo{db: db}
}

func (r *sqliteSnapshotRepo) Create(ctx context.Context, snapshot *models.PlayerSnapshot) error {
	diseases, err := json.Marshal(snapshot.Diseases)
	if err != nil {
		return fmt.Errorf("failed to encode diseases: %w", err)
	}

	query := `
		INSERT INTO player_snapshots (
			id, player_id, server_date, health, blood, shock, water,
			energy, heat_comfort, stamina, wetness, environment_temp,
			playtime, distance_walked, killed_zombies,
			position_x, position_y, position_z, diseases
		)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		snapshot.PlayerID, snapshot.ServerDate,
		snapshot.Health, snapshot.Blood, snapshot.Shock, snapshot.Water,
		snapshot.Energy, snapshot.HeatComfort, snapshot.Stamina, snapshot.Wetness,
		snapshot.EnvironmentTemp, snapshot.Playtime, snapshot.DistanceWalked,
		snapshot.KilledZombies,
		snapshot.PositionX, snapshot.PositionY, snapshot.PositionZ,
		string(diseases),
	).Scan(&snapshot.ID, &snapshot.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	return nil
}

func (r *sqliteSnapshotRepo) ListByPlayer(ctx context.Context, playerID string, limit, days int) ([]models.PlayerSnapshot, error) {
	query := `
		SELECT id, player_id, server_date, health, blood, shock, water,
			energy, heat_comfort, stamina, wetness, environment_temp,
			playtime, distance_walked, killed_zombies,
			position_x, position_y, position_z, diseases, created_at
		FROM player_snapshots
		WHERE player_id = ?`

	args := []any{playerID}
	if days > 0 {
		query += ` AND created_at >= datetime('now', ?)`
		args = append(args, fmt.Sprintf("-%d days", days))
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []models.PlayerSnapshot
	for rows.Next() {
		var s models.PlayerSnapshot
		var diseases string
		if err := rows.Scan(
			&s.ID, &s.PlayerID, &s.ServerDate,
			&s.Health, &s.Blood, &s.Shock, &s.Water,
			&s.Energy, &s.HeatComfort, &s.Stamina, &s.Wetness,
			&s.EnvironmentTemp, &s.Playtime, &s.DistanceWalked,
			&s.KilledZombies,
			&s.PositionX, &s.PositionY, &s.PositionZ,
			&diseases, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		if err := json.Unmarshal([]byte(diseases), &s.Diseases); err != nil {
			return nil, fmt.Errorf("failed to decode diseases for snapshot %s: %w", s.ID, err)
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}

	return snapshots, nil
}
