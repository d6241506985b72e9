package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/bookmanager/catalog-api/docs"
	"github.com/bookmanager/catalog-api/internal/api/handler"
	"github.com/bookmanager/catalog-api/internal/api/middleware"
	"github.com/bookmanager/catalog-api/internal/core/domain"
	"github.com/bookmanager/catalog-api/internal/core/service"
	"github.com/bookmanager/catalog-api/internal/infrastructure/config"
	mongodb "github.com/bookmanager/catalog-api/internal/infrastructure/db/mongo"
	"github.com/bookmanager/catalog-api/internal/pkg/password"
)

// Deps carries everything the router needs to assemble the application.
type Deps struct {
	Config  *config.Config
	DB      *mongo.Database
	Redis   *redis.Client // nil disables the login throttle
	Limiter service.LoginLimiter
	Audit   service.AuditSink
	Log     zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bookcatalog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(d.DB)
	bookRepo := mongodb.NewBookRepository(d.DB)

	hasher := password.NewHasher(d.Config.BcryptCost)
	tokens := service.NewTokenService(d.Config.JWTSecret, d.Config.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, hasher, d.Limiter, d.Audit, d.Log)
	bookService := service.NewBookService(bookRepo, d.Log)

	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)
	healthHandler := handler.NewHealthHandler(d.DB, d.Redis)

	requireAuth := middleware.Auth(tokens)

	// --- API root and auth routes ---
	e.GET("/api", handler.Index)
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)
	e.GET("/api/profile", authHandler.Profile, requireAuth)
	e.PUT("/api/admin/change-password", authHandler.ChangePassword,
		requireAuth,
		middleware.RequireRole("Access denied. Only admins can update their password.", domain.RoleAdmin))

	// --- Book routes: reads are public, mutations are admin-only ---
	e.GET("/api/books", bookHandler.List)
	e.GET("/api/books/search/:query", bookHandler.Search)
	e.GET("/api/books/:id", bookHandler.Get)
	e.POST("/api/books", bookHandler.Create,
		requireAuth, middleware.RequireRole("Only admins can add books", domain.RoleAdmin))
	e.PUT("/api/books/:id", bookHandler.Update,
		requireAuth, middleware.RequireRole("Only admins can update books", domain.RoleAdmin))
	e.DELETE("/api/books/:id", bookHandler.Delete,
		requireAuth, middleware.RequireRole("Only admins can delete books", domain.RoleAdmin))

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	return e
}
