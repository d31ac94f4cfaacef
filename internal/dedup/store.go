// Package dedup implements the persisted alert deduplication store: a
// mapping from alert key to the time that key was last successfully sent.
//
// The store is the sole owner of its records. A key may be sent again only
// after the cooldown has elapsed; records older than the retention window
// are purged at the start of each cycle to bound file growth (keys encode
// dates and churn naturally). The backing file is a plain JSON object so a
// fresh process can always reconstruct state, and saves are atomic
// (write-to-temp then rename) so a crash mid-write never corrupts the
// previous state.
package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"stormwatch/internal/types"
)

// Compile-time assertion that FileStore implements types.AlertStore.
var _ types.AlertStore = (*FileStore)(nil)

// persistedRecord is the on-disk shape of one dedup record. The timestamp
// is kept as a string so a single unparseable entry can be discarded
// without rejecting the whole file.
type persistedRecord struct {
	LastSentAt string `json:"last_sent_at"`
}

// FileStore is a JSON-file-backed dedup store. It is not safe for
// concurrent use; the agent is single-threaded per invocation.
type FileStore struct {
	path      string
	cooldown  time.Duration
	retention time.Duration
	records   map[string]time.Time
	logger    types.Logger
}

// Open loads the dedup store from path. A missing or corrupt backing file
// yields an empty store, never an error: missing dedup history fails open
// toward sending, which is safer than silently suppressing a real alert.
func Open(path string, cooldown, retention time.Duration, logger types.Logger) *FileStore {
	s := &FileStore{
		path:      path,
		cooldown:  cooldown,
		retention: retention,
		records:   make(map[string]time.Time),
		logger:    logger,
	}
	s.load()
	return s
}

// load reads and parses the backing file into the in-memory mapping.
func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("could not read state file, starting fresh",
				"path", s.path,
				"error", err.Error(),
			)
		}
		return
	}

	var raw map[string]persistedRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("state file corrupt, starting fresh",
			"path", s.path,
			"error", err.Error(),
		)
		return
	}

	for key, rec := range raw {
		ts, err := time.Parse(time.RFC3339, rec.LastSentAt)
		if err != nil {
			s.logger.Warn("dropping record with unparseable timestamp",
				"key", key,
				"last_sent_at", rec.LastSentAt,
			)
			continue
		}
		s.records[key] = ts.UTC()
	}
}

// MaySend reports whether the key may be sent now: true iff no record
// exists, or the last send is at least the cooldown ago.
func (s *FileStore) MaySend(key string, now time.Time) bool {
	sentAt, ok := s.records[key]
	if !ok {
		return true
	}
	return now.Sub(sentAt) >= s.cooldown
}

// RecordSent upserts the record for key with last_sent_at = now. Called
// only after a successful delivery; the change reaches disk on Save.
func (s *FileStore) RecordSent(key string, now time.Time) {
	s.records[key] = now.UTC()
}

// PurgeExpired removes records whose last send is strictly older than the
// retention window. Records at exactly the boundary are retained.
func (s *FileStore) PurgeExpired(now time.Time) {
	for key, sentAt := range s.records {
		if now.Sub(sentAt) > s.retention {
			delete(s.records, key)
		}
	}
}

// Records returns a snapshot of the current records, most recent first.
func (s *FileStore) Records() []types.DedupRecord {
	out := make([]types.DedupRecord, 0, len(s.records))
	for key, sentAt := range s.records {
		out = append(out, types.DedupRecord{Key: key, LastSentAt: sentAt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastSentAt.Equal(out[j].LastSentAt) {
			return out[i].Key < out[j].Key
		}
		return out[i].LastSentAt.After(out[j].LastSentAt)
	})
	return out
}

// Save persists the mapping atomically: the JSON is written to a temp
// file in the same directory and renamed over the target, so a crash
// mid-write leaves the previous state intact. A failure here is fatal
// for the run, since losing dedup state risks duplicate future sends.
func (s *FileStore) Save() error {
	raw := make(map[string]persistedRecord, len(s.records))
	for key, sentAt := range s.records {
		raw[key] = persistedRecord{LastSentAt: sentAt.UTC().Format(time.RFC3339)}
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return types.NewAppError(types.ErrCodeStoreWriteFailed,
			"failed to encode state", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return types.NewAppError(types.ErrCodeStoreWriteFailed,
			"failed to create temp state file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return types.NewAppError(types.ErrCodeStoreWriteFailed,
			"failed to write temp state file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return types.NewAppError(types.ErrCodeStoreWriteFailed,
			"failed to close temp state file", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return types.NewAppError(types.ErrCodeStoreWriteFailed,
			"failed to replace state file", err)
	}

	return nil
}
