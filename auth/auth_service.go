// Package auth implements the session authentication state machine:
// token issuance, refresh, and per-request verification against the
// consumed-token ledger.
package auth

import (
	"errors"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jrsteele09/go-session-service/token"
)

// Demonstrative identity issued by Login. There is no user store; the
// service models a single session at a time.
const (
	demoUserID   = 1
	demoUsername = "exampleuser"
)

// SessionService owns the session-token lifecycle. All state it guards
// (the live secret and the ledger) is process-wide; the service assumes a
// single process owns both.
type SessionService struct {
	rotator *token.Rotator
	codec   *token.Codec
	ledger  token.Ledger

	issueMu sync.Mutex // sequences rotate+encode as one unit
}

func NewSessionService(rotator *token.Rotator, codec *token.Codec, ledger token.Ledger) *SessionService {
	return &SessionService{
		rotator: rotator,
		codec:   codec,
		ledger:  ledger,
	}
}

// Login issues a fresh token for the demonstrative identity. The secret
// rotates on every login, so any token issued to a previous session stops
// verifying immediately.
func (s *SessionService) Login() (string, error) {
	return s.issue(jwt.MapClaims{
		"id":       demoUserID,
		"username": demoUsername,
	})
}

// Refresh exchanges an expired-but-authentic token for a fresh one. The
// token is verified against the CURRENT secret: if the secret rotated
// since it was issued, only the newer token lineage may be refreshed and
// this one correctly fails as invalid.
func (s *SessionService) Refresh(raw string) (string, error) {
	claims, err := s.codec.Decode(raw, s.rotator.Current(), token.DecodeOptions{IgnoreExpiration: true})
	if err != nil {
		return "", InvalidTokenErr
	}

	// Eligibility checks only that an identity claim is present, not the
	// token's remaining lifetime.
	if claims["id"] == nil {
		return "", RefreshNotEligibleErr
	}

	return s.issue(jwt.MapClaims{
		"id":       claims["id"],
		"username": claims["username"],
	})
}

// Authenticate runs the per-request state machine: extract the bearer
// token, reject replays, verify, then consume unless the route is exempt.
// The decoded payload is returned on success; any failure short-circuits.
func (s *SessionService) Authenticate(authHeader string, consume bool) (jwt.MapClaims, error) {
	raw := BearerToken(authHeader)
	if raw == "" {
		return nil, MissingTokenErr
	}

	// The replay check precedes signature verification: a replayed token
	// is rejected cheaply and always observes the same error. The order
	// is part of the contract.
	if s.ledger.Contains(raw) {
		return nil, TokenAlreadyUsedErr
	}

	claims, err := s.codec.Decode(raw, s.rotator.Current(), token.DecodeOptions{})
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return nil, TokenExpiredErr
		}
		return nil, InvalidTokenErr
	}

	// Record reports the first insertion, so two concurrent requests that
	// both passed the pre-check above still consume exactly once.
	if consume && !s.ledger.Record(raw) {
		return nil, TokenAlreadyUsedErr
	}

	return claims, nil
}

// issue rotates the secret and signs payload under the new secret as one
// atomic unit, so no token is ever signed under an already-replaced secret.
func (s *SessionService) issue(payload jwt.MapClaims) (string, error) {
	s.issueMu.Lock()
	defer s.issueMu.Unlock()

	secret, err := s.rotator.Rotate()
	if err != nil {
		return "", err
	}
	return s.codec.Encode(payload, secret)
}

// BearerToken extracts the token from an Authorization header value.
// Returns "" when the header is absent or not a Bearer credential.
func BearerToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
