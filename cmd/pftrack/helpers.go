package pftrack

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dandelion9999/protein-floor-tracker/internal/app"
	"github.com/dandelion9999/protein-floor-tracker/internal/model"
	"github.com/dandelion9999/protein-floor-tracker/internal/state"
	"github.com/dandelion9999/protein-floor-tracker/internal/store"
)

func resolveStorePath() (string, error) {
	if storePath != "" {
		return storePath, nil
	}
	return app.DefaultStorePath()
}

// withState opens the store, hydrates the keeper, and hands it to run. Every
// command goes through here so no code path can write before hydration.
func withState(cmd *cobra.Command, run func(*state.Keeper) error) error {
	path, err := resolveStorePath()
	if err != nil {
		return err
	}
	if err := app.EnsureStoreDir(path); err != nil {
		return err
	}
	if err := app.LoadDotEnv(path); err != nil {
		return err
	}
	kv, err := store.Open(path)
	if err != nil {
		return err
	}
	defer kv.Close()

	keeper := state.NewKeeper(kv)
	report, err := keeper.Hydrate()
	if err != nil {
		return err
	}
	if report.LoadedFromBackup {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: primary state was unreadable, recovered from mirror copy")
	}
	return run(keeper)
}

// findEntryID resolves a full id or unique prefix against current entries.
func findEntryID(keeper *state.Keeper, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("entry id is required")
	}
	var match string
	for _, e := range keeper.Envelope().Entries {
		if e.ID == ref {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("entry id %q is ambiguous", ref)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no entry with id %q", ref)
	}
	return match, nil
}

func parsePositiveFloat(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q (must be a positive number)", name, value)
	}
	return v, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveAPIKey prefers the key stored in the envelope, then the process
// environment (including the .env beside the store).
func resolveAPIKey(env model.StateEnvelope) string {
	if env.ExternalAPIKey != "" {
		return env.ExternalAPIKey
	}
	return os.Getenv(app.APIKeyEnvVar)
}
