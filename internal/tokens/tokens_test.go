package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akorchagin/product-catalog/internal/models"
)

var testSecret = []byte("test-jwt-secret")

func testUser() *models.User {
	return &models.User{
		ID:       7,
		Username: "alice",
		Email:    "a@x.com",
		Role:     models.RoleUser,
	}
}

func TestSignParse_RoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Now()
	token, err := Sign(testUser(), testSecret, now)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, now.Add(24*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := Sign(testUser(), testSecret, time.Now())
	require.NoError(t, err)

	claims, err := Parse(token, []byte("other-secret"))
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	issued := time.Now().Add(-25 * time.Hour)
	token, err := Sign(testUser(), testSecret, issued)
	require.NoError(t, err)

	claims, err := Parse(token, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	t.Parallel()

	claims, err := Parse("not-a-jwt", testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_UnknownRole(t *testing.T) {
	t.Parallel()

	u := testUser()
	u.Role = models.Role("superadmin")
	token, err := Sign(u, testSecret, time.Now())
	require.NoError(t, err)

	claims, err := Parse(token, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
