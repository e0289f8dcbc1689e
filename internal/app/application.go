package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"linkbucket/internal/config"
	"linkbucket/internal/content"
	"linkbucket/internal/handlers"
	"linkbucket/internal/middleware"
	"linkbucket/internal/models"
	"linkbucket/internal/repository"
	"linkbucket/internal/service"
	"linkbucket/pkg/cache"
	"linkbucket/pkg/logger"
	"linkbucket/pkg/utils"
	"linkbucket/web"
)

type Options struct {
	// DB replaces the postgres connection, mainly for tests.
	DB *gorm.DB
	// Cache replaces the Redis connection built from the config.
	Cache *cache.Cache
}

type Application struct {
	cfg     *config.Config
	options Options

	db    *gorm.DB
	cache *cache.Cache

	rateLimiter *middleware.RateLimitManager

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	templateHandler *handlers.TemplateHandler
	router          *gin.Engine
	server          *http.Server
}

type repositoryContainer struct {
	Tag repository.TagRepository
}

type serviceContainer struct {
	Tag      *service.TagService
	SitePage *service.SitePageService
}

type handlerContainer struct {
	Tag      *handlers.TagHandler
	SitePage *handlers.SitePageHandler
	SEO      *handlers.SEOHandler
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{
		cfg:     cfg,
		options: opts,
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	app.initCache()
	app.initRepositories()
	app.initServices()

	if err := app.initHandlers(); err != nil {
		return nil, err
	}

	if err := app.initRouter(); err != nil {
		return nil, err
	}

	app.services.SitePage.Warm(context.Background())

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.rateLimiter != nil {
		if err := a.rateLimiter.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limiter", nil)
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil && a.options.DB == nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	if a.options.DB != nil {
		a.db = a.options.DB
		return nil
	}

	if !a.cfg.EnableDatabase {
		logger.Info("Database disabled, tag API will not be served", nil)
		return nil
	}

	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return nil
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.Tag{},
		&models.LinkTag{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) initCache() {
	if a.options.Cache != nil {
		a.cache = a.options.Cache
		return
	}

	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableCache)
	if err != nil {
		logger.Error(err, "Redis unavailable, continuing without cache", map[string]interface{}{"addr": a.cfg.RedisURL})
		c, _ = cache.NewCache("", false)
	}
	a.cache = c
}

func (a *Application) initRepositories() {
	if a.db == nil {
		return
	}
	a.repositories = repositoryContainer{
		Tag: repository.NewTagRepository(a.db),
	}
}

func (a *Application) initServices() {
	a.services = serviceContainer{
		Tag:      service.NewTagService(a.repositories.Tag, a.cache),
		SitePage: service.NewSitePageService(content.NewStore(a.cfg.ContentDir), content.NewRenderer(), a.cache),
	}
}

func (a *Application) initHandlers() error {
	a.handlers = handlerContainer{
		Tag:      handlers.NewTagHandler(a.services.Tag),
		SitePage: handlers.NewSitePageHandler(a.services.SitePage),
		SEO:      handlers.NewSEOHandler(a.services.SitePage, a.cfg),
	}

	templates, err := utils.LoadTemplates(web.Templates())
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	logger.Info("Templates loaded successfully", nil)

	templateHandler, err := handlers.NewTemplateHandler(a.services.SitePage, a.cfg, templates)
	if err != nil {
		return fmt.Errorf("failed to initialize template handler: %w", err)
	}

	a.templateHandler = templateHandler
	return nil
}

func (a *Application) initRouter() error {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a.rateLimiter = middleware.NewRateLimitManager(context.Background())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	router.Use(middleware.SecurityHeadersMiddleware())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimiter))

	// cors.New panics on an empty origin list; no origins means same-origin only.
	if len(a.cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     a.cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	} else {
		logger.Warn("No CORS origins configured, cross-origin requests are not allowed", nil)
	}

	router.StaticFS("/static", http.FS(web.Static()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": a.db != nil,
			"cache":    a.cache.Enabled(),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.GET("/sitemap.xml", a.handlers.SEO.Sitemap)
	router.GET("/robots.txt", a.handlers.SEO.Robots)

	router.GET("/", a.templateHandler.RenderIndex)
	router.GET("/site/:slug", a.templateHandler.RenderSitePage)

	api := router.Group("/api/v1")
	api.Use(middleware.NoIndexMiddleware())
	{
		api.GET("/footer", a.templateHandler.Footer().GetFooter)

		api.GET("/site/pages", a.handlers.SitePage.List)
		api.GET("/site/pages/:slug", a.handlers.SitePage.Get)

		if a.services.Tag != nil {
			tags := api.Group("/users/:user_id/tags")
			{
				tags.GET("", a.handlers.Tag.List)
				tags.POST("", a.handlers.Tag.Create)
				tags.GET("/:slug", a.handlers.Tag.Get)
			}
		}
	}

	router.NoRoute(a.templateHandler.RenderNotFound)

	a.router = router
	return nil
}
