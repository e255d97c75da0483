package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"club-backend/internal/auth"
	"club-backend/internal/config"
	"club-backend/internal/handlers"
	"club-backend/internal/middleware"
)

func main() {
	// A missing .env file is fine; real deployments set the environment.
	godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cred, err := auth.NewCredential(cfg.Server.SyncPassword)
	if err != nil {
		log.Fatalf("Failed to prepare sync credential: %v", err)
	}

	state := handlers.NewCollectionState(cfg.Server.StatePath)
	if cfg.Server.StatePath != "" {
		log.Printf("Persisting player collection to %s", cfg.Server.StatePath)
	} else {
		log.Println("Using in-memory player collection")
	}

	h := handlers.New(state, cred)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.CORS(cfg.Server.CORSOrigin)(mux)

	log.Printf("Server starting on :%s", cfg.Server.Port)
	log.Printf("Allowed CORS origin: %s", cfg.Server.CORSOrigin)

	if err := http.ListenAndServe(":"+cfg.Server.Port, handler); err != nil {
		log.Fatal(err)
	}
}
