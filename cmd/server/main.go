package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-browser/internal/backend"
	"catalog-browser/internal/config"
	"catalog-browser/internal/handler"
	"catalog-browser/internal/i18n"
	"catalog-browser/internal/middleware"
	"catalog-browser/internal/repository"
	"catalog-browser/internal/service"
	"catalog-browser/pkg/httpclient"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// preferenceTTL keeps a client's language preference for a year of inactivity.
const preferenceTTL = 365 * 24 * time.Hour

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	log.Info().
		Str("port", cfg.Port).
		Str("mode", cfg.GinMode).
		Str("default_language", cfg.DefaultLanguage).
		Strs("languages", cfg.SupportedLanguages).
		Msg("🚀 Starting catalog-browser")

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Language bundle is built once and installed as the process default
	bundle, err := i18n.NewBundle(cfg.DefaultLanguage, cfg.SupportedLanguages)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load translations")
	}
	i18n.SetDefault(bundle)

	// Preference store: Redis when configured, otherwise in-process memory
	var (
		store   repository.Store
		metrics *repository.Metrics
		rdb     *redis.Client
		prefs   handler.PreferenceCounter
	)
	if cfg.RedisURL != "" {
		rdb, err = repository.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		redisStore := repository.NewRedisStore(rdb, preferenceTTL)
		store = redisStore
		prefs = redisStore
		metrics = repository.NewMetrics(rdb)
		metrics.RecordServerStart(context.Background())
		log.Info().Msg("📊 Metrics enabled")
	} else {
		store = repository.NewMemoryStore()
		log.Warn().Msg("⚠️  REDIS_URL 未配置，语言偏好仅保存在内存中，统计已关闭")
	}

	detector := i18n.NewDetector(bundle, store)

	// TMDB adapter: single attempt per fetch, no cache
	httpClient := httpclient.NewClient(cfg.RequestTimeout)
	tmdbService := service.NewTMDBService(httpClient, cfg.TMDBAPIKeys, cfg.TMDBBaseURL, cfg.TMDBImageBase)
	if tmdbService.IsConfigured() {
		log.Info().Int("keys", tmdbService.KeyCount()).Msg("🎬 TMDB service enabled (轮询模式)")
	} else {
		log.Warn().Msg("⚠️  TMDB_API_KEY 未配置，所有行都会显示错误状态")
	}

	// Initialize handlers
	var recorder handler.OutcomeRecorder
	var apiRecorder middleware.APIRecorder
	if metrics != nil {
		recorder = metrics
		apiRecorder = metrics
	}
	pageHandler := handler.NewPageHandler(tmdbService, bundle, recorder, cfg.RequestTimeout)
	overviewHandler := handler.NewOverviewHandler(tmdbService, bundle, cfg.RequestTimeout)
	languageHandler := handler.NewLanguageHandler(detector)
	adminHandler := handler.NewAdminHandler(tmdbService, bundle, metrics, prefs, backend.New())

	// Setup router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logging())
	r.Use(middleware.Metrics(apiRecorder))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	// API routes - 公开访问
	api := r.Group("/api/v1")
	api.Use(middleware.Language(detector))
	{
		api.GET("/status", adminHandler.GetStatus)
		api.GET("/pages", pageHandler.ListPages)
		api.GET("/pages/:page", pageHandler.GetPage)
		api.GET("/row", pageHandler.GetRow)
		api.GET("/overview/:type/:id", overviewHandler.GetOverview)
		api.GET("/language", languageHandler.GetLanguage)
		api.PUT("/language", languageHandler.SetLanguage)
	}

	// Admin routes - 需要认证（如果配置了 ADMIN_API_KEY）
	admin := r.Group("/api/v1")
	admin.Use(middleware.AdminAuth(cfg.AdminAPIKey))
	{
		admin.GET("/analytics", adminHandler.GetAnalytics)
		admin.DELETE("/analytics", adminHandler.ResetAnalytics)
		admin.GET("/backend/:op", adminHandler.InvokeBackend)
	}

	// 日志输出认证状态
	if cfg.AdminAPIKey != "" {
		log.Info().Msg("🔐 Admin API 认证已启用")
	} else {
		log.Warn().Msg("⚠️  Admin API 未配置认证，管理接口对外开放")
	}

	// Create HTTP server with graceful shutdown support
	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("🌐 Server listening")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("👋 Server exited")
}
