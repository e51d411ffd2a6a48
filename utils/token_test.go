package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorTokenRoundTrip(t *testing.T) {
	token, err := GenerateOperatorToken("s3cret", "ops@city.gov", time.Hour)
	require.NoError(t, err)

	operator, err := ParseOperatorToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "ops@city.gov", operator)
}

func TestGenerateOperatorTokenWithoutSecret(t *testing.T) {
	_, err := GenerateOperatorToken("", "ops", time.Hour)
	assert.Error(t, err)
}

func TestParseOperatorTokenRejects(t *testing.T) {
	expired, err := GenerateOperatorToken("s3cret", "ops", -time.Minute)
	require.NoError(t, err)

	wrongSecret, err := GenerateOperatorToken("other", "ops", time.Hour)
	require.NoError(t, err)

	noClaim, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"operator": "ops",
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: wrongSecret},
		{name: "missing operator claim", token: noClaim},
		{name: "unexpected signing method", token: hs512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOperatorToken("s3cret", tt.token)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestParseOperatorTokenAcceptsUserIDClaim(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "64f1c2",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	operator, err := ParseOperatorToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c2", operator)
}
