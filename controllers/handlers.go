package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/RushabhMehta2005/stores-api/config"
	"github.com/RushabhMehta2005/stores-api/database"
	"github.com/RushabhMehta2005/stores-api/logging"
	"github.com/RushabhMehta2005/stores-api/metrics"
	"github.com/RushabhMehta2005/stores-api/middleware"
	"github.com/RushabhMehta2005/stores-api/repository"
	"github.com/RushabhMehta2005/stores-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	healthTimeout   = 2 * time.Second
	rateLimiterIdle = 10 * time.Minute
)

// Handler holds the application's dependencies, making them explicit.
type Handler struct {
	DB      *gorm.DB
	Items   *repository.ItemRepository
	Stores  *repository.StoreRepository
	Users   *repository.UserRepository
	Auth    *services.AuthService
	Guard   *middleware.Authenticator
	Limiter *middleware.RateLimiter
	Metrics *metrics.Metrics

	hasher *services.Hasher
}

// NewHandler wires repositories and services on top of db. m may be nil to
// run without instrumentation.
func NewHandler(db *gorm.DB, cfg *config.Config, m *metrics.Metrics) *Handler {
	users := repository.NewUserRepository(db)
	hasher := services.NewHasher(cfg.Auth.HashWorkers, cfg.Auth.BcryptCost)
	tokens := services.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	guard := middleware.NewAuthenticator(cfg.Auth.HeaderPrefix, tokens, users, cfg.Auth.UserCacheTTL)
	users.OnDelete(guard.Forget)

	h := &Handler{
		DB:      db,
		Items:   repository.NewItemRepository(db),
		Stores:  repository.NewStoreRepository(db),
		Users:   users,
		Auth:    services.NewAuthService(users, hasher, tokens),
		Guard:   guard,
		Metrics: m,
		hasher:  hasher,
	}
	if cfg.RateLimit.Enabled {
		h.Limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, rateLimiterIdle)
	}
	return h
}

// Close stops background workers.
func (h *Handler) Close() {
	h.hasher.Close()
}

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := database.Ping(ctx, h.DB); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ## Helper Methods

func (h *Handler) jsonError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}

// internalError logs err against the request and answers 500 with message.
func (h *Handler) internalError(c *gin.Context, err error, message string) {
	logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg(message)
	h.jsonError(c, http.StatusInternalServerError, message)
}

func (h *Handler) message(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
