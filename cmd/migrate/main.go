package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"movievault/pkg/config"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		dir     = flag.String("dir", "migrations", "directory with migration files")
		command = flag.String("command", "up", "migration command (up, down, status, create)")
		name    = flag.String("name", "", "name for new migration (used with create command)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	switch *command {
	case "up":
		if err := goose.Up(db, *dir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations applied")
	case "down":
		if err := goose.Down(db, *dir); err != nil {
			log.Fatalf("Failed to roll back migration: %v", err)
		}
		log.Println("Migration rolled back")
	case "status":
		if err := goose.Status(db, *dir); err != nil {
			log.Fatalf("Failed to get status: %v", err)
		}
	case "create":
		if *name == "" {
			log.Fatal("Migration name is required for create command")
		}
		if err := goose.Create(db, *dir, *name, "sql"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
	default:
		log.Fatalf("Unknown command: %s", *command)
	}
}
