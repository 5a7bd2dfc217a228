// Seeds an empty database with the demo lesson and users.
//
// Startup already does this when the users table is empty; the script exists
// for re-seeding a wiped development database without restarting the server.
//
// Usage: go run scripts/seed_demo.go
package main

import (
	"log"

	"lingua_school_backend/internal/config"
	"lingua_school_backend/pkg/database"
	"lingua_school_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	if _, err := database.InitDB(&cfg.Database, true); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	log.Println("Seed completed")
}
