package token

import (
	"testing"
	"time"

	"carwash-marketplace/internal/data/entity"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	id := uuid.New()

	for _, role := range []entity.Role{entity.RoleCustomer, entity.RoleProvider, entity.RoleEmployee} {
		signed, err := issuer.Issue(id, role)
		require.NoError(t, err)

		principal, err := issuer.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, id, principal.ID)
		assert.Equal(t, role, principal.Role)
	}
}

func TestIssueUnknownRole(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	_, err := issuer.Issue(uuid.New(), entity.Role("admin"))
	assert.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	issuer.now = func() time.Time { return issued }

	signed, err := issuer.Issue(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := NewIssuer("secret", time.Hour).Issue(uuid.New(), entity.RoleProvider)
	require.NoError(t, err)

	_, err = NewIssuer("other", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyMalformed(t *testing.T) {
	_, err := NewIssuer("secret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	claims := Claims{
		ID:   uuid.NewString(),
		Role: entity.Role("admin"),
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsOtherAlgorithm(t *testing.T) {
	claims := Claims{
		ID:   uuid.NewString(),
		Role: entity.RoleCustomer,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
