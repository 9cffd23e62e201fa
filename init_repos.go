// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository aynı *sql.DB bağlantısını alır ve interface döner.
package main

import (
	"database/sql"

	"github.com/oguzhank/dayztrack/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Tek struct kullanmak fonksiyon imzalarını temiz tutar ve yeni repository
// eklendiğinde sadece struct + initRepositories güncellenir.
type Repositories struct {
	Admin        repository.AdminRepository
	Session      repository.SessionRepository
	Server       repository.ServerRepository
	Player       repository.PlayerRepository
	Snapshot     repository.SnapshotRepository
	Verification repository.VerificationRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Go'nun sql.DB'si thread-safe connection pool'dur — aynı bağlantının
// tüm repository'lerce paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		Admin:        repository.NewSQLiteAdminRepo(conn),
		Session:      repository.NewSQLiteSessionRepo(conn),
		Server:       repository.NewSQLiteServerRepo(conn),
		Player:       repository.NewSQLitePlayerRepo(conn),
		Snapshot:     repository.NewSQLiteSnapshotRepo(conn),
		Verification: repository.NewSQLiteVerificationRepo(conn),
	}
}
