package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/RushabhMehta2005/stores-api/logging"
	"github.com/RushabhMehta2005/stores-api/models"
	"github.com/RushabhMehta2005/stores-api/repository"
	"github.com/RushabhMehta2005/stores-api/services"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

const userContextKey = "user"

// TokenVerifier resolves an access token to a user id.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// UserFinder loads the user named by a token.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Authenticator guards routes with "Authorization: <prefix> <token>" headers.
// Resolved users are cached for cacheTTL to spare a lookup per request; a
// zero TTL disables the cache.
type Authenticator struct {
	prefix   string
	tokens   TokenVerifier
	users    UserFinder
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewAuthenticator(prefix string, tokens TokenVerifier, users UserFinder, cacheTTL time.Duration) *Authenticator {
	return &Authenticator{
		prefix:   prefix,
		tokens:   tokens,
		users:    users,
		cache:    cache.New(cacheTTL, 2*cacheTTL),
		cacheTTL: cacheTTL,
	}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// extractToken splits the header into prefix and token.
func (a *Authenticator) extractToken(header string) (string, string) {
	if header == "" {
		return "", "Authorization token required"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, a.prefix) {
		return "", "Invalid authorization header format"
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", "Authorization token required"
	}
	return token, ""
}

// RequireAuth aborts with 401 unless the request carries a valid token for an
// existing user. The user is stored on the context for CurrentUser.
func (a *Authenticator) RequireAuth(c *gin.Context) {
	token, msg := a.extractToken(c.GetHeader("Authorization"))
	if msg != "" {
		abortJSON(c, http.StatusUnauthorized, msg)
		return
	}

	userID, err := a.tokens.Verify(token)
	if errors.Is(err, services.ErrExpiredToken) {
		abortJSON(c, http.StatusUnauthorized, "Token has expired")
		return
	}
	if err != nil {
		abortJSON(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	key := userCacheKey(userID)
	if a.cacheTTL > 0 {
		if cached, found := a.cache.Get(key); found {
			if user, ok := cached.(models.User); ok {
				c.Set(userContextKey, user)
				c.Next()
				return
			}
		}
	}

	user, err := a.users.FindByID(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		abortJSON(c, http.StatusUnauthorized, "User not found")
		return
	}
	if err != nil {
		logging.Ctx(c.Request.Context()).Error().Err(err).Uint("user_id", userID).Msg("loading authenticated user")
		abortJSON(c, http.StatusInternalServerError, "An error occurred while authenticating")
		return
	}

	if a.cacheTTL > 0 {
		a.cache.Set(key, *user, cache.DefaultExpiration)
	}

	c.Set(userContextKey, *user)
	c.Next()
}

// Forget drops a cached user. NewHandler registers it as a user deletion hook.
func (a *Authenticator) Forget(userID uint) {
	a.cache.Delete(userCacheKey(userID))
}

// CurrentUser returns the user stored by RequireAuth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	u, exists := c.Get(userContextKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := u.(models.User)
	return user, ok
}

func abortJSON(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}
