package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"userauth/internal/application/auth"
	"userauth/internal/config"
)

func TestSeedRequest(t *testing.T) {
	req, err := seedRequest("demo", "demo@userauth.local", "password", 0, "", "")
	require.NoError(t, err)
	assert.Nil(t, req.Age)

	req, err = seedRequest("demo", "demo@userauth.local", "password", 30, "Test City", "")
	require.NoError(t, err)
	require.NotNil(t, req.Age)
	assert.Equal(t, 30, *req.Age)

	_, err = seedRequest("demo", "not-an-email", "12", 12, "", "")
	require.Error(t, err)
	assert.ErrorContains(t, err, auth.MsgInvalidEmail)
	assert.ErrorContains(t, err, auth.MsgPasswordShort)
	assert.ErrorContains(t, err, auth.MsgUserTooYoung)
}

func TestSeedHasher_UsesConfiguredCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "5")

	hasher, err := newSeedHasher(config.Load())
	require.NoError(t, err)

	hashed, err := hasher.Hash(context.Background(), "password")
	require.NoError(t, err)

	got, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}
