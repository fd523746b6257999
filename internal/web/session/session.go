// Package session keeps the denylist of logged out session tokens.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const keyPrefix = "denylist:"

// ErrNilStorage is returned when the denylist is created without storage.
var ErrNilStorage = errors.New("storage is nil")

// Denylist records token ids that must no longer be accepted.
// Entries expire together with the token they block.
type Denylist struct {
	storage fiber.Storage
}

// New creates a denylist on top of a fiber storage backend.
func New(storage fiber.Storage) (*Denylist, error) {
	if storage == nil {
		return nil, ErrNilStorage
	}

	return &Denylist{storage: storage}, nil
}

// Revoke blocks the token id for ttl. A non-positive ttl is a no-op since the
// token has already expired.
func (d *Denylist) Revoke(jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := d.storage.Set(keyPrefix+jti, []byte{1}, ttl); err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", jti, err)
	}

	return nil
}

// IsRevoked reports whether the token id was revoked.
func (d *Denylist) IsRevoked(jti string) (bool, error) {
	val, err := d.storage.Get(keyPrefix + jti)
	if err != nil {
		return false, fmt.Errorf("failed to read denylist: %w", err)
	}

	return len(val) > 0, nil
}

// Close releases the storage backend.
func (d *Denylist) Close() error {
	return d.storage.Close()
}
