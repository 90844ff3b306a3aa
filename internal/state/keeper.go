package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/dandelion9999/protein-floor-tracker/internal/model"
	"github.com/dandelion9999/protein-floor-tracker/internal/store"
)

// Store keys. The mirror carries the same payload as the primary and is read
// only when the primary is absent or malformed.
const (
	PrimaryKey   = "pftrack:state"
	MirrorKey    = "pftrack:state:mirror"
	SnapshotsKey = "pftrack:snapshots"
)

type phase int

const (
	phaseUninitialized phase = iota
	phaseHydrating
	phaseReady
)

// Keeper is the single writer for the persisted state envelope. It owns
// hydration at startup, the anti-wipe rule on every save, the primary/mirror
// dual write, and the snapshot cadence.
type Keeper struct {
	kv     store.KV
	ledger *Ledger
	now    func() time.Time

	phase phase
	env   model.StateEnvelope

	// prevEntryCount is the entry count last successfully persisted; it is
	// the baseline the anti-wipe rule compares against.
	prevEntryCount int
	// wipeAuthorized permits exactly one save that drops the entry count to
	// zero. Consumed the moment it bypasses a refusal.
	wipeAuthorized bool
	// unchangedSaves counts consecutive saves whose entry count did not
	// change, to throttle snapshot writes.
	unchangedSaves int
}

// HydrationReport describes how the initial load went.
type HydrationReport struct {
	FreshStart       bool
	LoadedFromBackup bool
	EntryCount       int
}

func NewKeeper(kv store.KV) *Keeper {
	return &Keeper{
		kv:     kv,
		ledger: NewLedger(kv, SnapshotsKey),
		now:    time.Now,
	}
}

// Hydrate performs the one-time load at startup: primary key first, mirror
// on absence or malformed payload, fresh defaults when neither is readable.
// It never fails on bad stored data; the only error is calling it twice.
func (k *Keeper) Hydrate() (HydrationReport, error) {
	if k.phase != phaseUninitialized {
		return HydrationReport{}, fmt.Errorf("hydrate called twice")
	}
	k.phase = phaseHydrating

	report := HydrationReport{}
	env, ok := k.readEnvelope(PrimaryKey)
	if !ok {
		env, ok = k.readEnvelope(MirrorKey)
		if ok {
			report.LoadedFromBackup = true
		}
	}
	if !ok {
		env = DefaultEnvelope(k.now())
		report.FreshStart = true
	}

	k.env = env
	k.prevEntryCount = len(env.Entries)
	report.EntryCount = len(env.Entries)
	k.phase = phaseReady
	return report, nil
}

func (k *Keeper) readEnvelope(key string) (model.StateEnvelope, bool) {
	raw, ok, err := k.kv.Get(key)
	if err != nil || !ok {
		return model.StateEnvelope{}, false
	}
	env, err := Decode(raw)
	if err != nil {
		return model.StateEnvelope{}, false
	}
	return env, true
}

// Envelope returns a copy of the current in-memory state.
func (k *Keeper) Envelope() model.StateEnvelope {
	return k.env.Clone()
}

// EntryCount reports the current in-memory entry count.
func (k *Keeper) EntryCount() int {
	return len(k.env.Entries)
}

// AuthorizeWipe arms the one-shot override that lets the next save drop the
// entry count to zero. Confirmation UI lives with the caller; the keeper
// only cares that the authorization was explicit.
func (k *Keeper) AuthorizeWipe() {
	k.wipeAuthorized = true
}

// WipeAuthorized reports whether the override is currently armed.
func (k *Keeper) WipeAuthorized() bool {
	return k.wipeAuthorized
}

// Mutate applies fn to a copy of the envelope and saves the result. On a
// refused wipe the in-memory state is left untouched.
func (k *Keeper) Mutate(fn func(*model.StateEnvelope)) error {
	if k.phase != phaseReady {
		return ErrNotHydrated
	}
	next := k.env.Clone()
	fn(&next)
	return k.Save(next)
}

// Save validates the transition, installs next as the in-memory state, and
// persists it to the primary and mirror keys. The anti-wipe rule refuses a
// non-zero to zero entry-count drop unless AuthorizeWipe armed the one-shot
// override. In-memory state is retained even when the disk write fails, so
// a storage error never loses user-visible data.
func (k *Keeper) Save(next model.StateEnvelope) error {
	if k.phase != phaseReady {
		return ErrNotHydrated
	}

	nextCount := len(next.Entries)
	if k.prevEntryCount > 0 && nextCount == 0 {
		if !k.wipeAuthorized {
			return ErrWipeRefused
		}
		k.wipeAuthorized = false
	}

	next.SchemaVersion = SchemaVersion
	next.SavedAt = k.now()
	k.env = next.Clone()

	encoded, err := Encode(next)
	if err != nil {
		return err
	}
	if err := k.kv.Set(PrimaryKey, encoded); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	countChanged := nextCount != k.prevEntryCount
	k.prevEntryCount = nextCount

	if err := k.kv.Set(MirrorKey, encoded); err != nil {
		return fmt.Errorf("%w: mirror write: %v", ErrStorageUnavailable, err)
	}

	if k.shouldSnapshot(countChanged) {
		if err := k.ledger.Append(next, k.now()); err != nil {
			return fmt.Errorf("%w: snapshot write: %v", ErrStorageUnavailable, err)
		}
	}
	return nil
}

// shouldSnapshot throttles ledger writes: every save that changed the entry
// count, and every second save that did not.
func (k *Keeper) shouldSnapshot(countChanged bool) bool {
	if countChanged {
		k.unchangedSaves = 0
		return true
	}
	k.unchangedSaves++
	return k.unchangedSaves%2 == 0
}

// Snapshots lists the ledger, newest first.
func (k *Keeper) Snapshots() ([]model.Snapshot, error) {
	return k.ledger.List()
}

// RestoreSnapshot installs the ledger entry at index as the current state.
// Restoring is an explicit user action, so rolling back to an empty envelope
// arms the wipe override before saving.
func (k *Keeper) RestoreSnapshot(index int) (model.StateEnvelope, error) {
	if k.phase != phaseReady {
		return model.StateEnvelope{}, ErrNotHydrated
	}
	env, err := k.ledger.Restore(index)
	if err != nil {
		return model.StateEnvelope{}, err
	}
	if len(env.Entries) == 0 && k.prevEntryCount > 0 {
		k.AuthorizeWipe()
	}
	if err := k.Save(env); err != nil {
		return model.StateEnvelope{}, err
	}
	return k.Envelope(), nil
}

// Install replaces the whole envelope, typically with an imported backup.
// The transition goes through the normal save path, so the anti-wipe rule
// still applies.
func (k *Keeper) Install(env model.StateEnvelope) error {
	if k.phase != phaseReady {
		return ErrNotHydrated
	}
	return k.Save(env)
}

// IsWipeRefusal reports whether err is the anti-wipe rule firing, which is
// an expected outcome rather than a failure.
func IsWipeRefusal(err error) bool {
	return errors.Is(err, ErrWipeRefused)
}
