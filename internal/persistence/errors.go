package persistence

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by backends when no collection is stored under a key.
var ErrNotFound = errors.New("persistence: collection not found")

// KeyNotFound reports a missing collection, naming its key. The result
// matches ErrNotFound with errors.Is.
func KeyNotFound(key string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, key)
}
