package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the lifetime of a session token.
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrEmptySecret = errors.New("token: signing secret is empty")
	ErrInvalidTTL  = errors.New("token: ttl must be positive")
	ErrInvalidUser = errors.New("token: user id must be positive")
)

type Option func(*Codec)

// WithClock replaces time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// Codec signs and verifies HS256 session tokens with a secret fixed at
// construction. It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

func NewCodec(secret []byte, ttl time.Duration, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	c := &Codec{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	return c, nil
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for userID that expires TTL after now.
func (c *Codec) Issue(userID int64) (string, Claims, error) {
	if userID <= 0 {
		return "", Claims{}, ErrInvalidUser
	}

	now := c.now().UTC().Truncate(time.Second)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("token signing error: %w", err)
	}
	return signed, claims, nil
}

// Verify checks the signature, signing method and expiry of raw.
func (c *Codec) Verify(raw string) Result {
	claims := &Claims{}

	_, err := c.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return Result{Reason: classify(err)}
	}

	if claims.UserID <= 0 || claims.ExpiresAt == nil {
		return Result{Reason: ReasonClaims}
	}
	return Result{Claims: claims, Reason: ReasonOK}
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ReasonSignature
	default:
		return ReasonMalformed
	}
}
