package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/plumeria-dev/snapfeed/backend/internal/identity"
	"github.com/plumeria-dev/snapfeed/backend/internal/reconcile"
	"github.com/plumeria-dev/snapfeed/backend/internal/repositories"
	"github.com/plumeria-dev/snapfeed/backend/internal/router"
	"github.com/plumeria-dev/snapfeed/backend/pkg/config"
	"github.com/plumeria-dev/snapfeed/backend/pkg/firebase"
	"github.com/plumeria-dev/snapfeed/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	if err := router.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Identity verifier: Firebase in production, HMAC JWT for local runs
	var verifier identity.Verifier
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		log.Println("AUTH_MODE=jwt: using local HMAC token verifier")
		verifier = identity.NewJWTVerifier(cfg.JWTSecret)
	default:
		ctx := context.Background()
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		verifier = identity.NewFirebaseVerifier(firebaseApp.AuthClient)
	}

	// Background sweep for orphaned media-less posts
	sweeper := reconcile.NewSweeper(
		repositories.NewPostgresPostRepository(db),
		cfg.ReconcileInterval,
		cfg.ReconcileGracePeriod,
	)
	sweeper.Start()
	defer sweeper.Stop()

	// Create Echo instance
	e := echo.New()
	router.SetupMiddleware(e)
	router.SetupRoutes(e, db, verifier)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
