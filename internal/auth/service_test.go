package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *Service {
	return &Service{issuer: "lv-broker-test", secret: []byte("test-secret"), ttl: time.Hour}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testService()
	token, err := svc.signToken(42)
	require.NoError(t, err)

	userID, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := testService().signToken(42)
	require.NoError(t, err)

	other := &Service{issuer: "lv-broker-test", secret: []byte("other-secret"), ttl: time.Hour}
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenWrongIssuer(t *testing.T) {
	stranger := &Service{issuer: "someone-else", secret: []byte("test-secret"), ttl: time.Hour}
	token, err := stranger.signToken(42)
	require.NoError(t, err)

	_, err = testService().ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := testService().ParseToken("not.a.token")
	assert.Error(t, err)
}
