package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/plumeria-dev/snapfeed/backend/internal/handlers"
	"github.com/plumeria-dev/snapfeed/backend/internal/identity"
	"github.com/plumeria-dev/snapfeed/backend/internal/middleware"
	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"github.com/plumeria-dev/snapfeed/backend/internal/repositories"
	"github.com/plumeria-dev/snapfeed/backend/internal/stats"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.CORS())
}

// Migrate runs the schema migrations for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Bookmark{},
	)
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, verifier identity.Verifier) {
	e.GET("/health", handlers.HealthCheck)

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(db)

	aggregator := stats.NewAggregator(likeRepo, commentRepo, bookmarkRepo)

	// Reads are public but viewer-aware; mutations require a verified
	// principal.
	public := e.Group("/api")
	public.Use(middleware.OptionalAuth(verifier))
	protected := e.Group("/api")
	protected.Use(middleware.RequireAuth(verifier))

	postHandler := handlers.NewPostHandler(postRepo, userRepo, aggregator)
	postHandler.RegisterPostRoutes(public, protected)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo)
	commentHandler.RegisterCommentRoutes(public, protected)

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, userRepo)
	likeHandler.RegisterLikeRoutes(protected)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(public, protected)

	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkRepo, postRepo, userRepo)
	bookmarkHandler.RegisterBookmarkRoutes(protected)

	userHandler := handlers.NewUserHandler(userRepo, postRepo, followRepo)
	userHandler.RegisterUserRoutes(public, protected)

	log.Println("All routes configured.")
}
