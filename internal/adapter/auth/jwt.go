package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sklep-internetowy/backend/internal/adapter/config"
	"github.com/sklep-internetowy/backend/internal/core/domain"
	"github.com/sklep-internetowy/backend/internal/core/port"
)

// JWTVerifier validates bearer tokens issued by the external identity
// provider against its published RSA key. Tokens are self-contained:
// no server-side session state is kept.
type JWTVerifier struct {
	key *rsa.PublicKey
}

func New(conf *config.Auth) (*JWTVerifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(conf.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("error parsing identity provider public key: %w", err)
	}

	return &JWTVerifier{key: key}, nil
}

// realmClaims mirrors the identity provider's access-token layout:
// subject in the registered claims, realm roles under realm_access.
type realmClaims struct {
	jwt.RegisteredClaims
	RealmAccess struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

func (v *JWTVerifier) VerifyToken(token string) (*port.TokenPayload, error) {
	claims := &realmClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return v.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &port.TokenPayload{
		Subject: claims.Subject,
		Roles:   claims.RealmAccess.Roles,
	}, nil
}
