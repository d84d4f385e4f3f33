package config

import "time"

// SessionConfig carries the token lifecycle and caching parameters.
type SessionConfig interface {
	// GetTokenExpiry returns the lifetime of an issued session token.
	GetTokenExpiry() time.Duration

	// GetSecretLength returns the number of random bytes backing the
	// signing secret.
	GetSecretLength() int

	// GetConfigCacheTTL returns how long a loaded metadata/revision
	// snapshot is served before a reload.
	GetConfigCacheTTL() time.Duration

	// GetLedgerPruneInterval returns how often consumed-token entries
	// older than the token expiry are pruned.
	GetLedgerPruneInterval() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetTokenExpiry() time.Duration {
	return time.Hour
}

func (Session) GetSecretLength() int {
	return 64
}

func (Session) GetConfigCacheTTL() time.Duration {
	return 5 * time.Minute
}

func (Session) GetLedgerPruneInterval() time.Duration {
	return 10 * time.Minute
}
