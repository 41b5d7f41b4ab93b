package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/accounts/account-service/internal/core/domain"
)

// SessionClaims is the signed payload of a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// JWTIssuer signs session tokens with HS256 and a server-held secret.
//
// With a zero ttl tokens carry no exp claim and stay valid for as long as the
// secret does. There is no revocation.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("token issuer: empty signing secret")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs {sub, email, name} for account and returns the token with the
// redacted profile.
func (i *JWTIssuer) Issue(account *domain.Account) (*domain.IssuedToken, error) {
	now := i.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  account.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Email: account.Email,
		Name:  account.Name,
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.IssuedToken{AccessToken: signed, User: account.Profile()}, nil
}

// Verify checks the signature (and exp, when present) and returns the
// profile carried by the token.
func (i *JWTIssuer) Verify(token string) (*domain.Profile, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Profile{ID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}
