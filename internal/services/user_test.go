package services

import (
	"context"
	"testing"

	"github.com/fullstack-app/apiserver/config"
	"github.com/fullstack-app/apiserver/internal/store"
	"github.com/fullstack-app/apiserver/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testService(t *testing.T) *AuthService {
	t.Helper()
	repo, err := store.NewUserRepository(store.NewMemoryBackend(), config.DatabaseConfig{
		Table:     "users-test",
		IndexName: "gsi1",
	})
	require.NoError(t, err)
	return NewAuthService(repo, testSecret)
}

func TestRegister_IssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	ctx := context.Background()

	tok, err := svc.Register(ctx, "test@test.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := token.Verify(tok, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "test@test.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.NotZero(t, claims.CreatedAt)
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dup@test.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@test.com", "pw")
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := testService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "login@test.com", "correct-horse")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		tok, err := svc.Login(ctx, "login@test.com", "correct-horse")
		require.NoError(t, err)

		claims, err := token.Verify(tok, []byte(testSecret))
		require.NoError(t, err)

		user, err := svc.CurrentUser(ctx, claims.ID)
		require.NoError(t, err)
		assert.Equal(t, user, claims.User())
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@test.com", "whatever")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "login@test.com", "battery-staple")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})
}

func TestCurrentUser_Unknown(t *testing.T) {
	t.Parallel()

	svc := testService(t)

	_, err := svc.CurrentUser(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
