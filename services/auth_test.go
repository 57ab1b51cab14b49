package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/RushabhMehta2005/stores-api/repository"
	"github.com/RushabhMehta2005/stores-api/services"
	"github.com/RushabhMehta2005/stores-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*services.AuthService, *services.TokenManager) {
	t.Helper()
	hasher := services.NewHasher(1, bcrypt.MinCost)
	t.Cleanup(hasher.Close)
	tokens := services.NewTokenManager("test-secret-key-for-jwt-signing", time.Hour)
	users := repository.NewUserRepository(testutil.NewDB(t))
	return services.NewAuthService(users, hasher, tokens), tokens
}

func TestAuthService_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newAuthService(t)

	user, err := svc.Register(ctx, "test", "1234")
	require.NoError(t, err)
	assert.NotEqual(t, "1234", user.Password)

	token, err := svc.Authenticate(ctx, "test", "1234")
	require.NoError(t, err)

	id, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	refreshed, err := svc.Refresh(user.ID)
	require.NoError(t, err)
	id, err = tokens.Verify(refreshed)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestAuthService_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)
	_, err := svc.Register(ctx, "test", "1234")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "test", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "1234")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	_, err := svc.Register(ctx, "test", "1234")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "test", "5678")
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
}
