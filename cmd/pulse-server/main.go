package main

import (
	"log"
	"os"

	"github.com/oan-pulse/pulse/internal/logger"
	"github.com/oan-pulse/pulse/server"
)

func main() {
	logConfig := logger.DefaultConfig()
	logConfig.Console = true
	if err := logger.Init(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// A postgres:// URL selects postgres; anything else is a sqlite
	// file path.
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "pulse.db"
	}

	srv, err := server.New(dbURL)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("Error closing server: %v", err)
		}
	}()

	log.Printf("Pulse server starting on :%s", port)
	if err := srv.Start(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
