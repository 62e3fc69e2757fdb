package jwtauth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/jwtauth"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	u := models.User{ID: 42, Username: "connoisseur"}

	token, issued, err := jwtauth.GetToken(u, time.Hour, secret)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Id)

	claims, err := jwtauth.ValidateToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "connoisseur", claims.Username)
	require.Equal(t, issued.Id, claims.Id)
}

func TestValidateTokenRejects(t *testing.T) {
	u := models.User{ID: 1, Username: "u"}

	token, _, err := jwtauth.GetToken(u, time.Hour, secret)
	require.NoError(t, err)

	_, err = jwtauth.ValidateToken(token, "other-secret")
	require.True(t, errors.Is(err, jwtauth.ErrInvalidToken))

	expired, _, err := jwtauth.GetToken(u, -time.Minute, secret)
	require.NoError(t, err)

	_, err = jwtauth.ValidateToken(expired, secret)
	require.True(t, errors.Is(err, jwtauth.ErrInvalidToken))

	_, err = jwtauth.ValidateToken("garbage", secret)
	require.True(t, errors.Is(err, jwtauth.ErrInvalidToken))
}
