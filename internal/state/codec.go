package state

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dandelion9999/protein-floor-tracker/internal/model"
)

// SchemaVersion is stamped on every persisted envelope. Readers treat an
// absent or lower version as a best-effort migration, never a rejection.
const SchemaVersion = 3

// DefaultProteinFloorGrams fills proteinFloorGramsPerDay when a stored
// envelope predates the field.
const DefaultProteinFloorGrams = 90

// DefaultQuickAddTemplates is installed on fresh envelopes and on stored
// payloads that predate quick-add templates.
func DefaultQuickAddTemplates() []model.QuickAddTemplate {
	return []model.QuickAddTemplate{
		{
			Name:             "Protein Shake",
			ServingSizeLabel: "1 scoop",
			MacrosPerServing: model.Macro{Calories: 120, Protein: 24, Carbs: 3, Fat: 1.5},
		},
		{
			Name:             "Greek Yogurt",
			ServingSizeLabel: "170 g cup",
			MacrosPerServing: model.Macro{Calories: 100, Protein: 17, Carbs: 6, Fat: 0},
		},
		{
			Name:             "Chicken Breast",
			ServingSizeLabel: "100 g",
			MacrosPerServing: model.Macro{Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
		},
	}
}

// DefaultEnvelope is the fresh-start state used when nothing readable exists
// in the store.
func DefaultEnvelope(now time.Time) model.StateEnvelope {
	return model.StateEnvelope{
		SchemaVersion:           SchemaVersion,
		SavedAt:                 now,
		ProteinFloorGramsPerDay: DefaultProteinFloorGrams,
		Entries:                 []model.LogEntry{},
		QuickAddTemplates:       DefaultQuickAddTemplates(),
	}
}

// Encode serializes the envelope for the durable store. The output is a
// deterministic, versioned JSON document that round-trips through Decode.
func Encode(env model.StateEnvelope) (string, error) {
	b, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode state envelope: %w", err)
	}
	return string(b), nil
}

// envelopeDoc mirrors StateEnvelope with pointer fields so Decode can tell
// an absent field from an explicit zero value.
type envelopeDoc struct {
	SchemaVersion           int                      `json:"schemaVersion"`
	SavedAt                 time.Time                `json:"savedAt"`
	ProteinFloorGramsPerDay *float64                 `json:"proteinFloorGramsPerDay"`
	ExternalAPIKey          string                   `json:"externalApiKey"`
	Entries                 []model.LogEntry         `json:"entries"`
	RoadTripModeEnabled     *bool                    `json:"roadTripModeEnabled"`
	QuickAddTemplates       []model.QuickAddTemplate `json:"quickAddTemplates"`
}

// Decode parses a stored payload. Structural anomalies (truncated input,
// wrong-type fields, non-object documents) return ErrMalformedState so the
// caller can fall back to the mirror rather than install partial data.
// Absent optional fields are filled with documented defaults.
func Decode(raw string) (model.StateEnvelope, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return model.StateEnvelope{}, fmt.Errorf("%w: empty document", ErrMalformedState)
	}
	var doc envelopeDoc
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return model.StateEnvelope{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return envelopeFromDoc(doc), nil
}

func envelopeFromDoc(doc envelopeDoc) model.StateEnvelope {
	env := model.StateEnvelope{
		SchemaVersion:     doc.SchemaVersion,
		SavedAt:           doc.SavedAt,
		ExternalAPIKey:    doc.ExternalAPIKey,
		Entries:           doc.Entries,
		QuickAddTemplates: doc.QuickAddTemplates,
	}
	if env.SchemaVersion < SchemaVersion {
		env.SchemaVersion = SchemaVersion
	}
	if doc.ProteinFloorGramsPerDay != nil && isUsableFloor(*doc.ProteinFloorGramsPerDay) {
		env.ProteinFloorGramsPerDay = *doc.ProteinFloorGramsPerDay
	} else {
		env.ProteinFloorGramsPerDay = DefaultProteinFloorGrams
	}
	if doc.RoadTripModeEnabled != nil {
		env.RoadTripModeEnabled = *doc.RoadTripModeEnabled
	}
	if env.Entries == nil {
		env.Entries = []model.LogEntry{}
	}
	if env.QuickAddTemplates == nil {
		env.QuickAddTemplates = DefaultQuickAddTemplates()
	}
	sanitizeEntries(env.Entries)
	return env
}

func isUsableFloor(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// sanitizeEntries repairs values older writers let through: non-positive or
// non-finite quantities become 1, unknown meal tags become snack.
func sanitizeEntries(entries []model.LogEntry) {
	for i := range entries {
		q := entries[i].Quantity
		if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
			entries[i].Quantity = 1
		}
		entries[i].MealTag = model.ParseMealTag(string(entries[i].MealTag))
	}
}
