package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/talenthub/jobboard-api/internal/api/handler"
	"github.com/talenthub/jobboard-api/internal/api/middleware"
	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// Services groups the use-case implementations the router exposes.
type Services struct {
	Auth        ports.AuthService
	Job         ports.JobService
	Application ports.ApplicationService
	Profile     ports.ProfileService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svcs Services, db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("jobboard"))

	authMiddleware := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svcs.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Jobs ---
	jobHandler := handler.NewJobHandler(svcs.Job)
	jobs := e.Group("/v1/jobs", authMiddleware)
	jobs.GET("", jobHandler.List)
	jobs.GET("/:id", jobHandler.Get)
	jobs.POST("", jobHandler.Create, middleware.RBAC(domain.RoleEmployer))
	jobs.PUT("/:id", jobHandler.Update, middleware.RBAC(domain.RoleEmployer))
	jobs.DELETE("/:id", jobHandler.Delete, middleware.RBAC(domain.RoleEmployer))

	// --- Applications ---
	appHandler := handler.NewApplicationHandler(svcs.Application)
	apps := e.Group("/v1/applications", authMiddleware)
	apps.GET("", appHandler.List)
	apps.GET("/:id", appHandler.Get)
	apps.POST("", appHandler.Create, middleware.RBAC(domain.RoleJobSeeker))
	apps.PUT("/:id/status", appHandler.UpdateStatus, middleware.RBAC(domain.RoleEmployer))
	apps.PUT("/:id/resume", appHandler.UpdateResume, middleware.RBAC(domain.RoleJobSeeker))
	apps.DELETE("/:id", appHandler.Delete)

	// --- Job seeker profiles ---
	profileHandler := handler.NewProfileHandler(svcs.Profile)
	profiles := e.Group("/v1/profiles", authMiddleware)
	profiles.GET("/me", profileHandler.GetOwn)
	profiles.GET("/:id", profileHandler.Get)
	profiles.POST("", profileHandler.Create, middleware.RBAC(domain.RoleJobSeeker))
	profiles.PUT("/:id", profileHandler.Update)
	profiles.DELETE("/:id", profileHandler.Delete)

	e.GET("/v1/resumes/:file_id", appHandler.DownloadResume, authMiddleware)
	e.GET("/v1/users/me", authHandler.Me, authMiddleware)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
