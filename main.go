package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/rosterpad/rosterpad/handlers"
	"github.com/rosterpad/rosterpad/internal/auth"
	"github.com/rosterpad/rosterpad/internal/config"
	"github.com/rosterpad/rosterpad/internal/members"
	"github.com/rosterpad/rosterpad/internal/notes"
	"github.com/rosterpad/rosterpad/internal/sessions"
	"github.com/rosterpad/rosterpad/internal/store"
	"github.com/rosterpad/rosterpad/internal/tokens"
	"github.com/rosterpad/rosterpad/pkg/logger"
	"github.com/rosterpad/rosterpad/pkg/metrics"
	"github.com/rosterpad/rosterpad/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: store=%s path=%s redis=%v jwt_secret_set=%v",
		cfg.Store.Backend, cfg.Store.Path, cfg.Redis.Host != "", cfg.JWT.Secret != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple; production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the blacklist and rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err == nil {
			sessions.SetBlacklistClient(redisClient)
			logger.Infof("Connected to Redis for sessions and token blacklist: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Open the document store (single JSON file by default, sqlite optional)
	st, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		logger.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()
	if _, err := st.Load(); err != nil {
		logger.Fatalf("failed to load document: %v", err)
	}

	// Sessions: Redis-backed when available, in-memory otherwise
	var sessionRepo sessions.Repository
	if redisClient != nil {
		sessionRepo = sessions.NewRedisRepository(redisClient, "")
		logger.Infof("Using Redis for session storage")
	} else {
		sessionRepo = sessions.NewMemoryRepository()
	}
	sessionsSvc := sessions.NewService(sessionRepo)

	membersSvc := members.NewService(st)
	notesSvc := notes.NewService(st)
	authSvc := auth.NewService(cfg, st, sessionsSvc)

	// Session gate for protected routes: verify JWTs when a secret is set,
	// otherwise enforce credential presence only
	var verifier middleware.Verifier
	if cfg.JWT.Secret != "" {
		verifier = tokens.NewVerifier(cfg)
	} else {
		logger.Warnf("JWT_SECRET not set: session gate enforces credential presence only")
	}
	requireSession := middleware.RequireSession(verifier)

	handlers.NewAuthHandler(cfg, authSvc).Register(r.Group("/"))
	handlers.RegisterMemberRoutes(r, membersSvc, requireSession)
	handlers.RegisterNoteRoutes(r, notesSvc)

	// readiness endpoint: return 200 only when the store is reachable
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"redis": redisClient != nil || cfg.Redis.Host == ""}
		if _, err := st.Load(); err != nil {
			deps["store"] = false
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		deps["store"] = true
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting rosterpad on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
