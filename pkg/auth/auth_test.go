package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bibliotek/library-api/pkg/auth"
)

func TestManager_TokenRoundTrip(t *testing.T) {
	t.Parallel()
	m := auth.NewManager(auth.Config{JWTKey: "test-signing-key", TTL: time.Hour})

	token, err := m.IssueToken(7, "max@lib.io")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
	require.Equal(t, "max@lib.io", claims.Email)
	require.NotEmpty(t, claims.ID)
}

func TestManager_WrongKey(t *testing.T) {
	t.Parallel()
	m := auth.NewManager(auth.Config{JWTKey: "test-signing-key", TTL: time.Hour})
	other := auth.NewManager(auth.Config{JWTKey: "another-key", TTL: time.Hour})

	token, err := m.IssueToken(7, "max@lib.io")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestManager_Expired(t *testing.T) {
	t.Parallel()
	m := auth.NewManager(auth.Config{JWTKey: "test-signing-key", TTL: -time.Minute})

	token, err := m.IssueToken(7, "max@lib.io")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	require.Error(t, err)
}

func TestManager_Garbage(t *testing.T) {
	t.Parallel()
	m := auth.NewManager(auth.Config{JWTKey: "test-signing-key", TTL: time.Hour})

	_, err := m.ParseToken("not.a.token")
	require.Error(t, err)
}
