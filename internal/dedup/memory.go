package dedup

import (
	"time"

	"stormwatch/internal/types"
)

// Compile-time assertion that MemoryStore implements types.AlertStore.
var _ types.AlertStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory AlertStore for tests and dry runs. It
// shares the FileStore's suppression and purge logic but Save is a no-op.
type MemoryStore struct {
	FileStore
}

// NewMemoryStore creates an empty in-memory store with the given windows.
func NewMemoryStore(cooldown, retention time.Duration) *MemoryStore {
	return &MemoryStore{
		FileStore: FileStore{
			cooldown:  cooldown,
			retention: retention,
			records:   make(map[string]time.Time),
		},
	}
}

// Save is a no-op for the in-memory store.
func (s *MemoryStore) Save() error {
	return nil
}
