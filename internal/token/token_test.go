package token

import (
	"testing"
	"time"

	"github.com/fullstack-app/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = types.PublicUser{
	ID:        "user-123",
	Email:     "test@test.com",
	CreatedAt: 1700000000000,
	UpdatedAt: 1700000000000,
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := Issue(testUser, secret, time.Hour)
	require.NoError(t, err)

	claims, err := Verify(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, testUser, claims.User())
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := Issue(testUser, secret, -1*time.Second)
	require.NoError(t, err)

	_, err = Verify(tok, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := Issue(testUser, []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = Verify(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Verify("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_NoSecretFailsClosed(t *testing.T) {
	t.Parallel()

	tok, err := Issue(testUser, []byte("secret"), time.Hour)
	require.NoError(t, err)

	_, err = Verify(tok, nil)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := Issue(testUser, nil, time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
}
