// Package state persists the hash baseline between sync runs.
package state

import (
	"context"
	"fmt"

	"github.com/oncallops/groupwatch/internal/change"
)

// Entry is one entity's stored baseline. The ETag rides along so the next
// run can skip re-hashing when the upstream object is byte-unchanged.
type Entry struct {
	Hashes change.HashPair `json:"hashes"`
	Etag   string          `json:"etag,omitempty"`
}

// Snapshot maps entity id to its baseline entry.
type Snapshot map[string]Entry

// Hashes projects the snapshot down to the comparison state the differ wants.
func (s Snapshot) Hashes() change.HashState {
	out := make(change.HashState, len(s))
	for id, entry := range s {
		out[id] = entry.Hashes
	}
	return out
}

// Store persists snapshots between runs. The pipeline assumes a single active
// run at a time: Save replaces the whole stored snapshot, and a concurrent
// Load must never observe a partial write. Implementations do not retry;
// retry policy belongs to the caller.
type Store interface {
	// Load returns the stored snapshot, or an empty (non-nil) snapshot when
	// nothing has been stored yet.
	Load(ctx context.Context) (Snapshot, error)
	// Save atomically replaces the stored snapshot.
	Save(ctx context.Context, snap Snapshot) error
}

// StorageError wraps any backend failure so callers can tell storage trouble
// apart from everything else.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("state store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
