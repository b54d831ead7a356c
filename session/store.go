package session

// Store is the single persisted slot holding the raw bearer token. Exactly
// one token exists at a time: login writes it, logout clears it, nothing
// else mutates it.
type Store interface {
	// Save overwrites the stored token.
	Save(token string) error
	// Load returns the stored token, or "" when nothing is stored. A
	// non-nil error means the backing storage is unavailable.
	Load() (string, error)
	// Clear removes the stored token. Clearing an empty slot is not an
	// error.
	Clear() error
}
