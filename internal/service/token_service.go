package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-session-auth/internal/model"
)

type tokenClaims struct {
	UserID int `json:"id"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenService)

// WithClock replaces time.Now for issuing and verifying tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Issue signs an HS256 token for subjectID that expires TTL after now.
func (s *TokenService) Issue(subjectID int) (string, time.Time, error) {
	now := s.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(subjectID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify returns the subject id carried by tokenString.
func (s *TokenService) Verify(tokenString string) (int, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// Parse checks signature, algorithm and expiry. Every failure is reported as model.ErrInvalidToken.
func (s *TokenService) Parse(tokenString string) (model.TokenClaims, error) {
	if tokenString == "" {
		return model.TokenClaims{}, model.ErrInvalidToken
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return model.TokenClaims{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}

	if claims.Subject != strconv.Itoa(claims.UserID) {
		return model.TokenClaims{}, fmt.Errorf("%w: subject mismatch", model.ErrInvalidToken)
	}

	out := model.TokenClaims{UserID: claims.UserID}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}

	return out, nil
}
