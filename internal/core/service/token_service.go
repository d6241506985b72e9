package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookmanager/catalog-api/internal/core/domain"
	"github.com/bookmanager/catalog-api/internal/core/ports"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// TokenService issues and verifies HS256-signed bearer tokens. The signing
// key is fixed for the process lifetime; rotating it invalidates every
// outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

type tokenClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token embedding claims with an absolute expiry ttl from now.
func (s *TokenService) Issue(claims ports.TokenClaims) (string, error) {
	now := time.Now().UTC()
	tc := tokenClaims{
		ID:       claims.ID,
		Username: claims.Username,
		Role:     claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims. It
// never consults the user store: a token outlives mutations to its account
// until the token itself expires.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return &ports.TokenClaims{ID: tc.ID, Username: tc.Username, Role: tc.Role}, nil
}
