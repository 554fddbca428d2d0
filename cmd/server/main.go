package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"propertychat/internal/config"
	"propertychat/internal/handler"
	"propertychat/internal/observability"
	"propertychat/internal/repository"
	"propertychat/internal/service"
	"propertychat/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.Tracing.ServiceName, cfg.Logging.Format, cfg.Logging.Level)
	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("property chat search service")

	ctx := context.Background()
	shutdownTracer := observability.InitTracer(ctx, cfg.Tracing)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	sessions := newSessionTracker(ctx, cfg)

	// Initialize OpenAI client
	openaiClient := service.NewOpenAIClient(&cfg.OpenAI)
	if openaiClient.IsEnabled() {
		log.Info().
			Str("api_base", cfg.OpenAI.APIBase).
			Str("chat_model", cfg.OpenAI.ChatModel).
			Str("embedding_model", cfg.OpenAI.EmbeddingModel).
			Float64("temperature", cfg.OpenAI.ChatTemperature).
			Msg("OpenAI client initialized")
	} else {
		log.Warn().Msg("OpenAI is disabled, chat intents use the keyword fallback. Set OPENAI_API_KEY to enable")
	}

	// Initialize services
	analytics := service.NewAnalytics(store)
	extractor := service.NewIntentExtractor(openaiClient, cfg.Chat.DefaultLocation, time.Duration(cfg.OpenAI.Timeout)*time.Second)
	dispatcher := service.NewSearchDispatcher(store, analytics, cfg.Chat.DefaultLocation, cfg.Search.DefaultLimit)
	chatService := service.NewChatService(store, extractor, dispatcher, sessions)
	propertyService := service.NewPropertyService(store, analytics, openaiClient, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), observability.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitList(cfg.Server.AllowedOrigins)
	corsConfig.AllowMethods = splitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = splitList(cfg.Server.AllowedHeaders)
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    cfg.Tracing.ServiceName,
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
			"ai_enabled": openaiClient.IsEnabled(),
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	handler.RegisterRoutes(router.Group("/api"),
		handler.NewPropertyHandler(propertyService),
		handler.NewEmbeddingHandler(propertyService, cfg.OpenAI.EmbeddingDimensions),
		handler.NewChatHandler(chatService),
	)

	// Serve the chat UI
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	analytics.Wait()
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracer shutdown failed")
	}

	log.Info().Msg("server stopped")
}

// newSessionTracker uses Redis when REDIS_ADDR is set and process memory otherwise
func newSessionTracker(ctx context.Context, cfg *config.Config) session.Tracker {
	ttl := time.Duration(cfg.Redis.SessionTTL) * time.Second

	if cfg.Redis.Addr == "" {
		log.Info().Dur("ttl", ttl).Msg("tracking sessions in memory")
		return session.NewMemoryTracker(ttl)
	}

	rdb, err := session.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, tracking sessions in memory")
		return session.NewMemoryTracker(ttl)
	}

	log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", ttl).Msg("tracking sessions in redis")
	return session.NewRedisTracker(rdb, ttl)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
