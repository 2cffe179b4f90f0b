package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhive/taskhive/pkg/apierr"
)

// Codec signs and verifies access tokens. Validation is stateless: a token
// that decodes successfully was issued by this process's secret and is within
// its validity window. Whether the subject still exists is the resolver's job.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a Codec from the given config.
func NewCodec(cfg Config) *Codec {
	return &Codec{
		secret: cfg.Secret,
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// WithClock overrides the codec's clock. Test hook.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Issue creates a signed HS256 token for the given user id with the
// configured TTL.
func (c *Codec) Issue(userID uint64) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies a presented token and extracts the subject user id.
// Any structural, signature, or claim problem yields apierr.ErrInvalidToken;
// a token past its expiry yields apierr.ErrTokenExpired. Tampering with any
// claim, including the subject, fails the signature check here rather than
// downstream.
func (c *Codec) Decode(raw string) (uint64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apierr.ErrTokenExpired
		}
		return 0, apierr.ErrInvalidToken
	}
	if !token.Valid {
		return 0, apierr.ErrInvalidToken
	}

	if claims.Subject == "" {
		return 0, apierr.ErrInvalidToken
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, apierr.ErrInvalidToken
	}

	return userID, nil
}
