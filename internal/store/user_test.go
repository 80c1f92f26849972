package store

import (
	"context"
	"testing"

	"github.com/fullstack-app/apiserver/config"
	"github.com/fullstack-app/apiserver/internal/credentials"
	"github.com/fullstack-app/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepository(t *testing.T) *UserRepository {
	t.Helper()
	repo, err := NewUserRepository(NewMemoryBackend(), config.DatabaseConfig{
		Table:     "users-test",
		IndexName: "gsi1",
	})
	require.NoError(t, err)
	return repo
}

func TestNewUserRepository_RequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := NewUserRepository(NewMemoryBackend(), config.DatabaseConfig{IndexName: "gsi1"})
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewUserRepository(NewMemoryBackend(), config.DatabaseConfig{Table: "users"})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRegister_NewUser(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Register(ctx, "test@test.com", "password123"))

	user, err := repo.GetByEmail(ctx, "test@test.com")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "test@test.com", user.Email)
	assert.Equal(t, types.RecordTypeUser, user.RecordType)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, credentials.ComparePassword("password123", user.PasswordHash))
	assert.NotZero(t, user.CreatedAt)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "password123"},
		{"missing password", "test@test.com", ""},
		{"invalid email", "not-an-email", "password123"},
		{"short tld", "a@a.a", "password123"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := repo.Register(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Register(ctx, "dup@test.com", "first"))

	err := repo.Register(ctx, "dup@test.com", "second")
	assert.ErrorIs(t, err, ErrConflict)

	// Still exactly one record, with the original password.
	items, err := repo.backend.QueryByPartitionKey(ctx, repo.table, "dup@test.com")
	require.NoError(t, err)
	require.Len(t, items, 1)

	user, err := repo.GetByEmail(ctx, "dup@test.com")
	require.NoError(t, err)
	assert.True(t, credentials.ComparePassword("first", user.PasswordHash))
}

func TestRegister_FreshExternalIDs(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Register(ctx, "one@test.com", "pw"))
	require.NoError(t, repo.Register(ctx, "two@test.com", "pw"))

	one, err := repo.GetByEmail(ctx, "one@test.com")
	require.NoError(t, err)
	two, err := repo.GetByEmail(ctx, "two@test.com")
	require.NoError(t, err)

	assert.NotEmpty(t, one.ID)
	assert.NotEmpty(t, two.ID)
	assert.NotEqual(t, one.ID, two.ID)
}

func TestGetByEmail_NoMatch(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	user, err := repo.GetByEmail(context.Background(), "missing@test.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestGetByEmail_Validation(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	_, err := repo.GetByEmail(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.GetByEmail(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Register(ctx, "byid@test.com", "pw"))
	created, err := repo.GetByEmail(ctx, "byid@test.com")
	require.NoError(t, err)

	user, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.Email, user.Email)
	assert.Equal(t, created.ID, user.ID)

	missing, err := repo.GetByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.GetByID(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPublicProjection(t *testing.T) {
	t.Parallel()

	user := types.User{
		Email:        "pub@test.com",
		RecordType:   types.RecordTypeUser,
		ID:           "abc123",
		PasswordHash: "$2a$10$secret",
		CreatedAt:    1700000000000,
		UpdatedAt:    1700000000001,
	}

	public := user.Public()
	assert.Equal(t, types.PublicUser{
		ID:        "abc123",
		Email:     "pub@test.com",
		CreatedAt: 1700000000000,
		UpdatedAt: 1700000000001,
	}, public)

	// Empty input projects to an empty view without failing.
	assert.Equal(t, types.PublicUser{}, types.User{}.Public())
}
