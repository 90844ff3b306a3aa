package state_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/dandelion9999/protein-floor-tracker/internal/model"
	"github.com/dandelion9999/protein-floor-tracker/internal/state"
	"github.com/dandelion9999/protein-floor-tracker/internal/store"
)

func TestLedgerCapsAtTwelveNewestFirst(t *testing.T) {
	t.Parallel()

	ledger := state.NewLedger(store.NewMemory(), state.SnapshotsKey)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		env := model.StateEnvelope{
			Entries: []model.LogEntry{{ID: fmt.Sprintf("entry-%d", i), Name: fmt.Sprintf("meal %d", i), Quantity: 1}},
		}
		if err := ledger.Append(env, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("append snapshot %d: %v", i, err)
		}
	}

	snaps, err := ledger.List()
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(snaps) != state.MaxSnapshots {
		t.Fatalf("expected %d snapshots, got %d", state.MaxSnapshots, len(snaps))
	}
	if snaps[0].State.Entries[0].ID != "entry-19" {
		t.Fatalf("expected newest snapshot first, got %q", snaps[0].State.Entries[0].ID)
	}
	if snaps[len(snaps)-1].State.Entries[0].ID != "entry-8" {
		t.Fatalf("expected oldest surviving snapshot to be entry-8, got %q", snaps[len(snaps)-1].State.Entries[0].ID)
	}
	for i := 1; i < len(snaps); i++ {
		if snaps[i].TakenAt.After(snaps[i-1].TakenAt) {
			t.Fatalf("snapshots out of order at %d", i)
		}
	}
}

func TestLedgerRestoreBoundsAndCopy(t *testing.T) {
	t.Parallel()

	ledger := state.NewLedger(store.NewMemory(), state.SnapshotsKey)
	env := model.StateEnvelope{
		Entries: []model.LogEntry{{ID: "a", Name: "meal", Quantity: 1}},
	}
	if err := ledger.Append(env, time.Now()); err != nil {
		t.Fatalf("append: %v", err)
	}

	restored, err := ledger.Restore(0)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	restored.Entries[0].Name = "mutated"

	again, err := ledger.Restore(0)
	if err != nil {
		t.Fatalf("restore again: %v", err)
	}
	if again.Entries[0].Name != "meal" {
		t.Fatalf("restore must return a copy, stored snapshot was mutated")
	}

	if _, err := ledger.Restore(5); err == nil {
		t.Fatalf("expected out-of-range restore to fail")
	}
	if _, err := ledger.Restore(-1); err == nil {
		t.Fatalf("expected negative index restore to fail")
	}
}

func TestLedgerRecoversFromCorruptPayload(t *testing.T) {
	t.Parallel()

	kv := store.NewMemory()
	_ = kv.Set(state.SnapshotsKey, "{{{corrupt")
	ledger := state.NewLedger(kv, state.SnapshotsKey)

	snaps, err := ledger.List()
	if err != nil {
		t.Fatalf("list over corrupt payload: %v", err)
	}
	if len(snaps) != 0 {
		t.Fatalf("expected corrupt ledger to read as empty, got %d", len(snaps))
	}
	if err := ledger.Append(model.StateEnvelope{}, time.Now()); err != nil {
		t.Fatalf("append over corrupt payload: %v", err)
	}
}

func TestSnapshotCadence(t *testing.T) {
	t.Parallel()

	kv := store.NewMemory()
	k := hydratedKeeper(t, kv)

	// Three count-changing saves: one snapshot each.
	for i := 0; i < 3; i++ {
		mustAddEntry(t, k, fmt.Sprintf("meal %d", i), 20)
	}
	snaps, err := k.Snapshots()
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("expected 3 snapshots after 3 entry-count changes, got %d", len(snaps))
	}

	// Count-preserving saves snapshot on alternating saves only.
	if err := k.SetRoadTripMode(true); err != nil {
		t.Fatalf("first no-op-count save: %v", err)
	}
	snaps, _ = k.Snapshots()
	if len(snaps) != 3 {
		t.Fatalf("expected first unchanged-count save to skip snapshot, got %d", len(snaps))
	}
	if err := k.SetRoadTripMode(false); err != nil {
		t.Fatalf("second no-op-count save: %v", err)
	}
	snaps, _ = k.Snapshots()
	if len(snaps) != 4 {
		t.Fatalf("expected second unchanged-count save to snapshot, got %d", len(snaps))
	}
}

func TestRestoreSnapshotThroughKeeper(t *testing.T) {
	t.Parallel()

	kv := store.NewMemory()
	k := hydratedKeeper(t, kv)
	mustAddEntry(t, k, "first", 30)
	mustAddEntry(t, k, "second", 20)

	snaps, err := k.Snapshots()
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	// Index 1 is the one-entry state captured before the second add.
	if len(snaps[1].State.Entries) != 1 {
		t.Fatalf("expected snapshot 1 to hold one entry, got %d", len(snaps[1].State.Entries))
	}

	restored, err := k.RestoreSnapshot(1)
	if err != nil {
		t.Fatalf("restore snapshot: %v", err)
	}
	if len(restored.Entries) != 1 || restored.Entries[0].Name != "first" {
		t.Fatalf("unexpected restored state: %+v", restored.Entries)
	}
	persisted := storedEnvelope(t, kv, state.PrimaryKey)
	if len(persisted.Entries) != 1 {
		t.Fatalf("expected restore to persist one entry, got %d", len(persisted.Entries))
	}
}
