package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/mkwon-dev/user-account-service/config"
)

// Seeds two well-known accounts for manual testing: one ACTIVE, one PENDING
// with a fixed certification code.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	var activeID int64
	err = db.QueryRow(`
		INSERT INTO users (email, nickname, address, status, certification_code, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET nickname = EXCLUDED.nickname
		RETURNING id
	`, "bing@test.com", "bing", "seoul-1", "ACTIVE", "aaaa-aaaa-aaaa", 0).Scan(&activeID)
	if err != nil {
		log.Fatalf("failed to seed active user: %v", err)
	}
	fmt.Printf("seeded active user: id=%d email=bing@test.com\n", activeID)

	var pendingID int64
	err = db.QueryRow(`
		INSERT INTO users (email, nickname, address, status, certification_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET nickname = EXCLUDED.nickname
		RETURNING id
	`, "bong@test.com", "bong", "seoul-2", "PENDING", "aaaa-aaaa-aaaa").Scan(&pendingID)
	if err != nil {
		log.Fatalf("failed to seed pending user: %v", err)
	}
	fmt.Printf("seeded pending user: id=%d email=bong@test.com code=aaaa-aaaa-aaaa\n", pendingID)
}
