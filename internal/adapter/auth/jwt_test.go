package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sklep-internetowy/backend/internal/adapter/config"
	"github.com/sklep-internetowy/backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeys(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemKey)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTVerifier_New_BadKey(t *testing.T) {
	_, err := New(&config.Auth{PublicKey: "not a pem block"})
	assert.Error(t, err)
}

func TestJWTVerifier_VerifyToken(t *testing.T) {
	key, pemKey := newTestKeys(t)
	otherKey, _ := newTestKeys(t)

	verifier, err := New(&config.Auth{PublicKey: pemKey, AdminRole: "admin"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		expErr error
		expSub string
		expAdm bool
	}{
		{
			name: "valid token with realm roles",
			token: signToken(t, key, jwt.MapClaims{
				"sub": "user-1",
				"exp": time.Now().Add(time.Hour).Unix(),
				"realm_access": map[string]any{
					"roles": []string{"customer", "admin"},
				},
			}),
			expSub: "user-1",
			expAdm: true,
		},
		{
			name: "valid token without roles",
			token: signToken(t, key, jwt.MapClaims{
				"sub": "user-2",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			expSub: "user-2",
			expAdm: false,
		},
		{
			name: "expired token",
			token: signToken(t, key, jwt.MapClaims{
				"sub": "user-1",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			expErr: domain.ErrExpiredToken,
		},
		{
			name: "token signed with a different key",
			token: signToken(t, otherKey, jwt.MapClaims{
				"sub": "user-1",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			expErr: domain.ErrInvalidToken,
		},
		{
			name: "token without a subject",
			token: signToken(t, key, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			expErr: domain.ErrInvalidToken,
		},
		{
			name:   "garbage token",
			token:  "not.a.token",
			expErr: domain.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := verifier.VerifyToken(tt.token)
			if tt.expErr != nil {
				assert.ErrorIs(t, err, tt.expErr)
				assert.Nil(t, payload)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expSub, payload.Subject)
			assert.Equal(t, tt.expAdm, payload.HasRole("admin"))
		})
	}
}

func TestJWTVerifier_RejectsWrongAlgorithm(t *testing.T) {
	_, pemKey := newTestKeys(t)

	verifier, err := New(&config.Auth{PublicKey: pemKey, AdminRole: "admin"})
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("shared secret"))
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
