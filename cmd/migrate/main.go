package main

import (
	"log"
	"os"

	"lv-broker/internal/db"
)

func main() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is required")
	}
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = "db/migrations"
	}
	if err := db.Migrate(dsn, dir); err != nil {
		log.Fatal(err)
	}
	log.Println("migrations applied")
}
