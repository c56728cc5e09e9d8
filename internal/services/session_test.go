package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/portfolio-backend/internal/apperrors"
	"github.com/AnshRaj112/portfolio-backend/internal/models"
)

func testUser() *models.User {
	u := &models.User{FullName: "Jane Doe", Email: "jane@example.com"}
	u.ID = primitive.NewObjectID()
	return u
}

func TestSessionIssuer_RoundTrip(t *testing.T) {
	s := NewSessionIssuer("secret", 7*24*time.Hour)
	u := testUser()

	token, expiresAt, err := s.Issue(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	id, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), id)
}

func TestSessionIssuer_RejectsTamperedToken(t *testing.T) {
	s := NewSessionIssuer("secret", time.Hour)
	token, _, err := s.Issue(testUser())
	require.NoError(t, err)

	other := NewSessionIssuer("another-secret", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	tampered := token[:len(token)-2] + "xx"
	_, err = s.Parse(tampered)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = s.Parse("not.a.jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestSessionIssuer_RejectsExpiredToken(t *testing.T) {
	s := NewSessionIssuer("secret", time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)
	s.now = func() time.Time { return issuedAt }

	token, _, err := s.Issue(testUser())
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	assert.Equal(t, "Token expired. Try Again.", apperrors.PublicMessage(err))
}

func TestSessionIssuer_RejectsUnsignedToken(t *testing.T) {
	s := NewSessionIssuer("secret", time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   primitive.NewObjectID().Hex(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
