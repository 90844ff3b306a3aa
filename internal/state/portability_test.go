package state_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dandelion9999/protein-floor-tracker/internal/state"
	"github.com/dandelion9999/protein-floor-tracker/internal/store"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	want := wellFormedEnvelope()
	exported, err := state.Export(want)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := state.Import(exported)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("export/import mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestImportRejectsDocumentsWithoutEntries(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":       "definitely not json",
		"json array":     `[1,2,3]`,
		"no entries key": `{"schemaVersion":3,"proteinFloorGramsPerDay":90}`,
		"null entries":   `{"entries":null}`,
		"string entries": `{"entries":"nope"}`,
		"number entries": `{"entries":42}`,
	}
	for name, raw := range cases {
		raw := raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := state.Import([]byte(raw))
			if !errors.Is(err, state.ErrImportRejected) {
				t.Fatalf("expected ErrImportRejected, got %v", err)
			}
		})
	}
}

func TestImportAcceptsMinimalDocumentWithDefaults(t *testing.T) {
	t.Parallel()

	env, err := state.Import([]byte(`{"entries":[]}`))
	if err != nil {
		t.Fatalf("import minimal document: %v", err)
	}
	if env.ProteinFloorGramsPerDay != state.DefaultProteinFloorGrams {
		t.Fatalf("expected default floor on import, got %v", env.ProteinFloorGramsPerDay)
	}
	if env.SchemaVersion != state.SchemaVersion {
		t.Fatalf("expected migrated schema version, got %d", env.SchemaVersion)
	}
}

func TestImportInstallGoesThroughAntiWipeRule(t *testing.T) {
	t.Parallel()

	kv := store.NewMemory()
	k := hydratedKeeper(t, kv)
	mustAddEntry(t, k, "breakfast", 42)
	mustAddEntry(t, k, "lunch", 25)

	imported, err := state.Import([]byte(`{"entries":[]}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	// Installing an empty backup over real history is a destructive
	// transition and must be refused without the override.
	if err := k.Install(imported); !errors.Is(err, state.ErrWipeRefused) {
		t.Fatalf("expected ErrWipeRefused, got %v", err)
	}
	if k.EntryCount() != 2 {
		t.Fatalf("refused install must not touch in-memory state, got %d entries", k.EntryCount())
	}

	k.AuthorizeWipe()
	if err := k.Install(imported); err != nil {
		t.Fatalf("authorized install: %v", err)
	}
	if k.EntryCount() != 0 {
		t.Fatalf("expected installed empty envelope, got %d entries", k.EntryCount())
	}
}

func TestImportInstallReplacesStateWholesale(t *testing.T) {
	t.Parallel()

	kv := store.NewMemory()
	k := hydratedKeeper(t, kv)
	mustAddEntry(t, k, "old meal", 10)

	backup := wellFormedEnvelope()
	exported, err := state.Export(backup)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	imported, err := state.Import(exported)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := k.Install(imported); err != nil {
		t.Fatalf("install: %v", err)
	}

	persisted := storedEnvelope(t, kv, state.PrimaryKey)
	if len(persisted.Entries) != 2 || persisted.Entries[0].Name != "Chicken bowl" {
		t.Fatalf("expected imported entries to be persisted, got %+v", persisted.Entries)
	}
	if persisted.ProteinFloorGramsPerDay != 120 {
		t.Fatalf("expected imported floor 120, got %v", persisted.ProteinFloorGramsPerDay)
	}
}
