package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell/blog-platform/internal/api/handler"
	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/core/service"
	"github.com/inkwell/blog-platform/internal/core/token"
	"github.com/inkwell/blog-platform/internal/infrastructure/config"
	mongodb "github.com/inkwell/blog-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/inkwell/blog-platform/internal/infrastructure/db/redis"
	"github.com/inkwell/blog-platform/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	tagRepo := mongodb.NewTagRepository(db)
	resetThrottle := redisdb.NewResetThrottle(rdb)

	// --- Token codecs ---
	sessionCodec := token.NewSessionCodec(cfg.JWTSecret, cfg.SessionTTL)
	resetCodec := token.NewResetCodec(cfg.JWTSecret, cfg.ResetTTL)

	// --- Services ---
	authService := service.NewAuthService(userRepo, sessionCodec, resetCodec, resetThrottle, log)
	postService := service.NewPostService(postRepo, log)
	commentService := service.NewCommentService(commentRepo, postRepo, log)
	tagService := service.NewTagService(tagRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	tagHandler := handler.NewTagHandler(tagService)

	requireAuth := middleware.Auth(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	// --- Auth routes ---
	v1 := e.Group("/v1")
	v1.POST("/auth/register", authHandler.Register, optionalAuth)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/password-reset", authHandler.RequestPasswordReset)
	v1.POST("/auth/password-reset/redeem", authHandler.RedeemPasswordReset)
	v1.GET("/me", authHandler.Me, requireAuth)

	// --- Post routes ---
	v1.POST("/posts", postHandler.Create, requireAuth)
	v1.GET("/posts", postHandler.List)
	v1.GET("/posts/:id", postHandler.Get)
	v1.PUT("/posts/:id", postHandler.Update, requireAuth)
	v1.DELETE("/posts/:id", postHandler.Delete, requireAuth)

	// --- Comment routes ---
	v1.POST("/posts/:id/comments", commentHandler.Create, requireAuth)
	v1.GET("/posts/:id/comments", commentHandler.ListByPost)
	v1.DELETE("/comments/:id", commentHandler.Delete, requireAuth)

	// --- Tag routes ---
	v1.POST("/tags", tagHandler.Create, requireAuth, middleware.RequireAdmin("tag"))
	v1.GET("/tags", tagHandler.List)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
