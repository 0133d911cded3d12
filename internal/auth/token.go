package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kmandell/mechanic-shop/internal/models"
)

// Claims carried by customer bearer tokens.
type Claims struct {
	CustomerID int64  `json:"customer_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed, time-limited bearer tokens.
// Tokens are self-contained; validity is signature plus expiry, no
// revocation list.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService initializes a token service with the process-wide secret.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token with subject = customer id, expiring after
// the configured TTL.
func (s *TokenService) Issue(customerID int64, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		CustomerID: customerID,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(customerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Validate verifies signature and expiry and returns the customer id the
// token was issued for. It returns models.ErrTokenExpired past expiry and
// models.ErrTokenInvalid for any signature, format or algorithm failure.
func (s *TokenService) Validate(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, models.ErrTokenExpired
		}
		return 0, models.ErrTokenInvalid
	}
	if !token.Valid {
		return 0, models.ErrTokenInvalid
	}
	return claims.CustomerID, nil
}
