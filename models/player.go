// Package models — Player ve PlayerSnapshot domain modelleri.
package models

import "time"

// Player, bir oyun sunucusundaki tek bir oyuncu kimliğini temsil eder.
//
// Kimlik (server_id, steam_id) ikilisiyle tanımlıdır: aynı steamId farklı
// sunucularda AYRI Player kayıtlarıdır. Name ilk görüldüğü andaki isimdir —
// sonraki webhook'larda güncellenmez (first-seen sticks).
type Player struct {
	ID       string    `json:"id"`
	ServerID string    `json:"server_id"`
	SteamID  string    `json:"steam_id"`
	Name     string    `json:"name"`
	LastSeen time.Time `json:"last_seen"`
}

// PlayerWithLatestSnapshot, oyuncu listesi response'u için view model:
// oyuncu + en son snapshot (hiç snapshot yoksa nil).
type PlayerWithLatestSnapshot struct {
	Player
	LatestSnapshot *PlayerSnapshot `json:"latest_snapshot"`
}

// PlayerSnapshot, tek bir webhook teslimatındaki oyuncu durum kaydı.
//
// Immutable ve append-only: her kabul edilen teslimat, içerik önceki
// satırın aynısı olsa bile YENİ bir satır üretir (dedup yok).
// Sıralama created_at'e göredir.
type PlayerSnapshot struct {
	ID              string    `json:"id"`
	PlayerID        string    `json:"player_id"`
	ServerDate      string    `json:"server_date"`
	Health          float64   `json:"health"`
	Blood           float64   `json:"blood"`
	Shock           float64   `json:"shock"`
	Water           float64   `json:"water"`
	Energy          float64   `json:"energy"`
	HeatComfort     float64   `json:"heat_comfort"`
	Stamina         float64   `json:"stamina"`
	Wetness         float64   `json:"wetness"`
	EnvironmentTemp float64   `json:"environment_temp"`
	Playtime        float64   `json:"playtime"`
	DistanceWalked  float64   `json:"distance_walked"`
	KilledZombies   int       `json:"killed_zombies"`
	PositionX       float64   `json:"position_x"`
	PositionY       float64   `json:"position_y"`
	PositionZ       float64   `json:"position_z"`
	Diseases        []string  `json:"diseases"`
	CreatedAt       time.Time `json:"created_at"`
}
