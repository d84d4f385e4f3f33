package token

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/pkg/errors"
)

// DefaultSecretLength is the number of random bytes backing a signing
// secret (512 bits of entropy before hex encoding).
const DefaultSecretLength = 64

// Rotator owns the live signing secret. Exactly one secret is live at any
// instant; Rotate is the only mutator, and every token signed under the
// previous secret becomes unverifiable the moment it runs. That is the
// single-active-session contract, not an accident.
type Rotator struct {
	mu     sync.RWMutex
	secret []byte
	length int
}

// NewRotator creates a Rotator with an initial secret already installed.
func NewRotator(length int) (*Rotator, error) {
	if length <= 0 {
		length = DefaultSecretLength
	}
	r := &Rotator{length: length}
	if _, err := r.Rotate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Current returns a snapshot of the live secret. The returned slice is
// never mutated after installation, so it stays consistent for the
// duration of one verification even if a rotation happens concurrently.
func (r *Rotator) Current() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.secret
}

// Rotate installs and returns a fresh cryptographically random secret.
func (r *Rotator) Rotate() ([]byte, error) {
	buf := make([]byte, r.length)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "failed to generate signing secret")
	}
	secret := []byte(hex.EncodeToString(buf))

	r.mu.Lock()
	r.secret = secret
	r.mu.Unlock()

	return secret, nil
}
