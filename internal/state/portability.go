package state

import (
	"encoding/json"
	"fmt"

	"github.com/dandelion9999/protein-floor-tracker/internal/model"
)

// Export renders the envelope as the portable backup document: one
// human-readable JSON file equal to the persisted state. Read-only, no
// persistence side effect.
func Export(env model.StateEnvelope) ([]byte, error) {
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export json: %w", err)
	}
	return append(b, '\n'), nil
}

// Import parses a backup document. The one hard requirement is a decodable
// entries array; anything else missing is default-filled like any stored
// payload. A rejected import never partially applies.
func Import(raw []byte) (model.StateEnvelope, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return model.StateEnvelope{}, fmt.Errorf("%w: not a JSON object: %v", ErrImportRejected, err)
	}
	entriesRaw, ok := probe["entries"]
	if !ok || string(entriesRaw) == "null" {
		return model.StateEnvelope{}, fmt.Errorf("%w: missing entries", ErrImportRejected)
	}
	var entries []model.LogEntry
	if err := json.Unmarshal(entriesRaw, &entries); err != nil {
		return model.StateEnvelope{}, fmt.Errorf("%w: entries is not a valid entry list: %v", ErrImportRejected, err)
	}

	env, err := Decode(string(raw))
	if err != nil {
		return model.StateEnvelope{}, fmt.Errorf("%w: %v", ErrImportRejected, err)
	}
	return env, nil
}
