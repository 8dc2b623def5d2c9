package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)

	tok, err := iss.Issue("user-1")
	require.NoError(t, err)

	id, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	tok, err := NewIssuer("a", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewIssuer("b", time.Hour).Verify(tok)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	iss := NewIssuer("s3cret", time.Minute)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return base }

	tok, err := iss.Issue("user-1")
	require.NoError(t, err)

	iss.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = iss.Verify(tok)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewIssuer("s3cret", time.Hour).Verify("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("123456")
	require.NoError(t, err)

	assert.NotEqual(t, "123456", h)
	assert.True(t, MatchPassword(h, "123456"))
	assert.False(t, MatchPassword(h, "654321"))
}
