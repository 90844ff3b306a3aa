package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Macro holds per-unit nutrition values in kcal and grams. All fields are
// non-negative finite numbers; anything else coerces to zero on decode.
type Macro struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (m *Macro) UnmarshalJSON(b []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	m.Calories = coerceMacroValue(doc["calories"])
	m.Protein = coerceMacroValue(doc["protein"])
	m.Carbs = coerceMacroValue(doc["carbs"])
	m.Fat = coerceMacroValue(doc["fat"])
	return nil
}

func coerceMacroValue(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		v = parsed
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func (m Macro) Scale(factor float64) Macro {
	return Macro{
		Calories: m.Calories * factor,
		Protein:  m.Protein * factor,
		Carbs:    m.Carbs * factor,
		Fat:      m.Fat * factor,
	}
}

func (m Macro) Add(other Macro) Macro {
	return Macro{
		Calories: m.Calories + other.Calories,
		Protein:  m.Protein + other.Protein,
		Carbs:    m.Carbs + other.Carbs,
		Fat:      m.Fat + other.Fat,
	}
}

type MealTag string

const (
	MealBreakfast MealTag = "breakfast"
	MealLunch     MealTag = "lunch"
	MealDinner    MealTag = "dinner"
	MealSnack     MealTag = "snack"
)

// ParseMealTag normalizes user input; anything unrecognized lands in snack.
func ParseMealTag(value string) MealTag {
	switch MealTag(strings.ToLower(strings.TrimSpace(value))) {
	case MealBreakfast:
		return MealBreakfast
	case MealLunch:
		return MealLunch
	case MealDinner:
		return MealDinner
	default:
		return MealSnack
	}
}

// LogEntry is one logged consumption event. Macros are per single unit;
// Quantity is the only field mutated after creation.
type LogEntry struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	Name             string    `json:"name"`
	Source           string    `json:"source"`
	ServingSizeLabel string    `json:"servingSizeLabel"`
	Quantity         float64   `json:"quantity"`
	Macros           Macro     `json:"macros"`
	MealTag          MealTag   `json:"mealTag"`
}

// Total returns the entry's macros scaled by its quantity.
func (e LogEntry) Total() Macro {
	return e.Macros.Scale(e.Quantity)
}

type QuickAddTemplate struct {
	Name             string `json:"name"`
	ServingSizeLabel string `json:"servingSizeLabel"`
	MacrosPerServing Macro  `json:"macrosPerServing"`
}

// StateEnvelope is the sole unit ever written to or read from durable
// storage. Entries are ordered newest first.
type StateEnvelope struct {
	SchemaVersion           int                `json:"schemaVersion"`
	SavedAt                 time.Time          `json:"savedAt"`
	ProteinFloorGramsPerDay float64            `json:"proteinFloorGramsPerDay"`
	ExternalAPIKey          string             `json:"externalApiKey,omitempty"`
	Entries                 []LogEntry         `json:"entries"`
	RoadTripModeEnabled     bool               `json:"roadTripModeEnabled"`
	QuickAddTemplates       []QuickAddTemplate `json:"quickAddTemplates"`
}

// Clone returns a deep copy so callers can mutate freely without aliasing
// the envelope held by the save guard or the snapshot ledger.
func (s StateEnvelope) Clone() StateEnvelope {
	out := s
	if s.Entries != nil {
		out.Entries = make([]LogEntry, len(s.Entries))
		copy(out.Entries, s.Entries)
	}
	if s.QuickAddTemplates != nil {
		out.QuickAddTemplates = make([]QuickAddTemplate, len(s.QuickAddTemplates))
		copy(out.QuickAddTemplates, s.QuickAddTemplates)
	}
	return out
}

// TotalForDay sums entry totals for the calendar day containing t, in t's
// location.
func (s StateEnvelope) TotalForDay(t time.Time) Macro {
	day := t.Format("2006-01-02")
	var total Macro
	for _, e := range s.Entries {
		if e.CreatedAt.In(t.Location()).Format("2006-01-02") == day {
			total = total.Add(e.Total())
		}
	}
	return total
}

// Snapshot is one historical full-state copy held by the snapshot ledger.
type Snapshot struct {
	TakenAt time.Time     `json:"takenAt"`
	State   StateEnvelope `json:"state"`
}
