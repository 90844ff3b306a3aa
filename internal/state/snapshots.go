package state

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dandelion9999/protein-floor-tracker/internal/model"
	"github.com/dandelion9999/protein-floor-tracker/internal/store"
)

// MaxSnapshots caps the ledger. Eviction removes only the oldest beyond it.
const MaxSnapshots = 12

// Ledger maintains the bounded, newest-first ring of historical full-state
// copies used for manual rollback.
type Ledger struct {
	kv  store.KV
	key string
}

func NewLedger(kv store.KV, key string) *Ledger {
	return &Ledger{kv: kv, key: key}
}

// List returns the stored snapshots, newest first. A missing or unreadable
// ledger yields an empty list; snapshots are best-effort history, not the
// source of truth.
func (l *Ledger) List() ([]model.Snapshot, error) {
	raw, ok, err := l.kv.Get(l.key)
	if err != nil {
		return nil, fmt.Errorf("%w: read snapshots: %v", ErrStorageUnavailable, err)
	}
	if !ok {
		return []model.Snapshot{}, nil
	}
	var snaps []model.Snapshot
	if err := json.Unmarshal([]byte(raw), &snaps); err != nil {
		return []model.Snapshot{}, nil
	}
	return snaps, nil
}

// Append prepends a copy of env and truncates to the newest MaxSnapshots.
func (l *Ledger) Append(env model.StateEnvelope, takenAt time.Time) error {
	snaps, err := l.List()
	if err != nil {
		return err
	}
	next := make([]model.Snapshot, 0, len(snaps)+1)
	next = append(next, model.Snapshot{TakenAt: takenAt, State: env.Clone()})
	next = append(next, snaps...)
	if len(next) > MaxSnapshots {
		next = next[:MaxSnapshots]
	}
	encoded, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode snapshots: %w", err)
	}
	if err := l.kv.Set(l.key, string(encoded)); err != nil {
		return fmt.Errorf("%w: write snapshots: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Restore returns a copy of the envelope stored at index (0 = newest). It
// does not install the result; the caller decides what to do with it and
// carries any wipe authorization the installation needs.
func (l *Ledger) Restore(index int) (model.StateEnvelope, error) {
	snaps, err := l.List()
	if err != nil {
		return model.StateEnvelope{}, err
	}
	if index < 0 || index >= len(snaps) {
		return model.StateEnvelope{}, fmt.Errorf("snapshot index %d out of range (have %d)", index, len(snaps))
	}
	return snaps[index].State.Clone(), nil
}
