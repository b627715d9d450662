package storage

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"
)

var db *sql.DB

// InitDB Postgres 연결 및 테이블 생성
func InitDB(databaseURL string) {
	var err error

	db, err = sql.Open("postgres", databaseURL)
	if err != nil {
		log.Fatal("InitDB(): Failed to open database :", err)
	}
	if err = db.Ping(); err != nil {
		log.Fatal("storage.InitDB(): Failed to connect to database: ", err)
	}

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT,
			provider TEXT,
			created_at BIGINT NOT NULL
	);`
	createAPIKeysTable := `
	CREATE TABLE IF NOT EXISTS api_keys (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL,
			key_hash TEXT NOT NULL,
			fingerprint TEXT NOT NULL UNIQUE,
			uses INT NOT NULL DEFAULT 0,
			max_uses INT NOT NULL DEFAULT 1000,
			revoked BOOLEAN NOT NULL DEFAULT FALSE,
			expires_at BIGINT NOT NULL,
			created BIGINT NOT NULL,
			bound_ip TEXT
	);`
	createTrainingTable := `
	CREATE TABLE IF NOT EXISTS training_records (
			id SERIAL PRIMARY KEY,
			owner_email TEXT NOT NULL,
			content TEXT NOT NULL,
			tags TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	createAuditTable := `
	CREATE TABLE IF NOT EXISTS audit_logs (
			id SERIAL PRIMARY KEY,
			api_key_id INT,
			email TEXT,
			endpoint TEXT,
			meta BYTEA,
			ts BIGINT NOT NULL
	);`

	if _, err := db.Exec(createUsersTable); err != nil {
		log.Fatalf("InitDB(): Failed to create users table: %v", err)
	}
	if _, err := db.Exec(createAPIKeysTable); err != nil {
		log.Fatalf("InitDB(): Failed to create api_keys table: %v", err)
	}
	if _, err := db.Exec(createTrainingTable); err != nil {
		log.Fatalf("InitDB(): Failed to create training_records table: %v", err)
	}
	if _, err := db.Exec(createAuditTable); err != nil {
		log.Fatalf("InitDB(): Failed to create audit_logs table: %v", err)
	}
	log.Println("InitDB(): Init and create table successfully!")
}

// CloseDB 종료 시 커넥션 풀 정리
func CloseDB() {
	if db != nil {
		db.Close()
	}
}
