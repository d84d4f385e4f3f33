// Package token implements the session-token lifecycle primitives: the
// rotating signing secret, the HMAC codec, and the consumed-token ledger.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

var (
	// ErrTokenExpired reports a correctly signed token whose expiration
	// timestamp is in the past.
	ErrTokenExpired = errors.New("token expired")

	// ErrSignatureInvalid reports a token whose signature does not match
	// or whose structure is malformed.
	ErrSignatureInvalid = errors.New("token signature invalid")
)

// DecodeOptions controls token verification.
type DecodeOptions struct {
	// IgnoreExpiration accepts an expired but correctly signed token.
	// The refresh flow needs this: a token must be expired to
	// legitimately ask for renewal, yet its authenticity still matters.
	IgnoreExpiration bool
}

// Codec signs and verifies session tokens using symmetric HMAC-SHA256.
type Codec struct {
	expiry time.Duration
}

// NewCodec creates a Codec issuing tokens with the given lifetime.
func NewCodec(expiry time.Duration) *Codec {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &Codec{expiry: expiry}
}

// Encode signs payload plus a fixed expiration horizon under secret. The
// payload is copied; standard claims on it are overwritten.
func (c *Codec) Encode(payload jwt.MapClaims, secret []byte) (string, error) {
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}

	now := NowTimeFunc()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(c.expiry).Unix()
	claims["jti"] = uuid.New().String()

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to sign token with HMAC")
	}
	return signedToken, nil
}

// Decode verifies raw against secret and returns its claims. Expiry and
// signature failures are distinct: a tampered token is ErrSignatureInvalid
// even when it is also past its expiration.
func (c *Codec) Decode(raw string, secret []byte, opts DecodeOptions) (jwt.MapClaims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if opts.IgnoreExpiration {
		parserOpts = append(parserOpts, jwt.WithoutClaimsValidation())
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, parserOpts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrSignatureInvalid
	}
	if !parsedToken.Valid {
		return nil, ErrSignatureInvalid
	}
	return claims, nil
}
