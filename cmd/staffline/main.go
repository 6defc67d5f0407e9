package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/staffline-dev/staffline/db"
	"github.com/staffline-dev/staffline/internal/auth"
	"github.com/staffline-dev/staffline/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.NewRouter()

	port := os.Getenv("PORT")

	if port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
