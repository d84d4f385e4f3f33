package token_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-session-service/token"
)

func TestNewRotatorInstallsSecret(t *testing.T) {
	rotator, err := token.NewRotator(64)
	require.NoError(t, err)

	secret := rotator.Current()
	require.Len(t, secret, 128) // 64 random bytes, hex encoded

	decoded, err := hex.DecodeString(string(secret))
	require.NoError(t, err)
	require.Len(t, decoded, 64)
}

func TestRotateReplacesSecret(t *testing.T) {
	rotator, err := token.NewRotator(64)
	require.NoError(t, err)

	before := rotator.Current()
	after, err := rotator.Rotate()
	require.NoError(t, err)

	require.NotEqual(t, before, after)
	require.Equal(t, after, rotator.Current())
}

func TestNewRotatorDefaultsLength(t *testing.T) {
	rotator, err := token.NewRotator(0)
	require.NoError(t, err)
	require.Len(t, rotator.Current(), 2*token.DefaultSecretLength)
}
