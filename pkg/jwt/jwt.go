package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingSecret        = errors.New("signing secret is empty")
	ErrInvalidSigningMethod = errors.New("unexpected signing method")
	ErrInvalidToken         = errors.New("invalid token")
)

// Claims binds a session token to a user id on top of the registered
// claim set. Tokens are self-contained: there is no revocation list, and
// rotating the secret invalidates everything outstanding.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenService fails when the secret is empty so that a
// misconfigured deployment dies at startup rather than per-request.
func NewTokenService(secret string, ttl time.Duration, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
	}, nil
}

// Issue produces a signed token embedding the user id and an expiration
// at now+TTL.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiration and returns the embedded user
// id. Any failure collapses to ErrInvalidToken: there is no partial
// trust in a token.
func (s *TokenService) Verify(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return s.secret, nil
	})
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	if !token.Valid || claims.UserID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}

	return claims.UserID, nil
}
