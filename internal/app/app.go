// Package app wires configuration, storage, and routes into a
// runnable HTTP server.
package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meridian-institute/core/internal/config"
	"github.com/meridian-institute/core/internal/database"
	"github.com/meridian-institute/core/internal/middleware"
	"github.com/meridian-institute/core/internal/modules/identity"
	"github.com/meridian-institute/core/internal/modules/upload"
	"github.com/meridian-institute/core/internal/pkg/jwt"
	"github.com/meridian-institute/core/internal/pkg/metrics"
	pkgredis "github.com/meridian-institute/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	db       *gorm.DB
	rc       *pkgredis.Client
	uploader *upload.Uploader
	logger   *zap.Logger
}

// New initializes the application: config → DB → Redis → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	jwt.SetSecret(cfg.Auth.ProviderSecret)
	metrics.Init()

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	var uploader *upload.Uploader
	if cfg.S3.Enable {
		uploader, err = upload.NewUploader(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("s3: %w", err)
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(metrics.Instrument())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && cfg.IsProduction() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return originAllowed(patterns, origin)
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	resolver := identity.NewService(db, cfg.Auth.BootstrapAdmins)
	router.Use(middleware.Identity(resolver))
	router.Use(middleware.RateLimit(rc.Raw()))

	app := &App{
		cfg:      cfg,
		router:   router,
		db:       db,
		rc:       rc,
		uploader: uploader,
		logger:   logger,
	}
	app.registerRoutes()

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }
