package storage

import "fmt"

// NewStore builds the archive backend named by kind; empty means memory.
// sqlitePath is only read for the sqlite backend.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	}
	return nil, fmt.Errorf("unsupported store backend %q (want memory|sqlite)", kind)
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
