package store

import (
	"os"
	"path/filepath"
)

const dbFileName = "wishlist.sqlite"

// Store is a durable table of wishlist items plus an append-only audit log,
// both inside a single SQLite file under Dir. The zero-ish value Store{Dir: d}
// is ready to use; schema migration is applied on every open.
type Store struct {
	Dir string
}

// DefaultDir resolves the store directory: WISHLIST_DIR env if set, otherwise
// ~/.wishlist.
func DefaultDir() (string, error) {
	if v := os.Getenv("WISHLIST_DIR"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wishlist"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}
