package state

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dandelion9999/protein-floor-tracker/internal/model"
)

// Entry provenance tags.
const (
	SourceManual   = "manual"
	SourceQuickAdd = "quick-add"
	SourceLookup   = "lookup"
)

type AddEntryInput struct {
	Name             string
	Source           string
	ServingSizeLabel string
	Quantity         float64
	Macros           model.Macro
	MealTag          model.MealTag
	At               time.Time
}

// AddEntry prepends a new log entry (entries are newest first) and saves.
func (k *Keeper) AddEntry(in AddEntryInput) (model.LogEntry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.LogEntry{}, fmt.Errorf("entry name is required")
	}
	if in.Quantity <= 0 || math.IsNaN(in.Quantity) || math.IsInf(in.Quantity, 0) {
		return model.LogEntry{}, fmt.Errorf("quantity must be a positive number")
	}
	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = SourceManual
	}
	at := in.At
	if at.IsZero() {
		at = k.now()
	}
	entry := model.LogEntry{
		ID:               uuid.NewString(),
		CreatedAt:        at,
		Name:             name,
		Source:           source,
		ServingSizeLabel: strings.TrimSpace(in.ServingSizeLabel),
		Quantity:         in.Quantity,
		Macros:           in.Macros,
		MealTag:          model.ParseMealTag(string(in.MealTag)),
	}
	err := k.Mutate(func(env *model.StateEnvelope) {
		env.Entries = append([]model.LogEntry{entry}, env.Entries...)
	})
	if err != nil {
		return model.LogEntry{}, err
	}
	return entry, nil
}

// UpdateEntryQuantity is the only mutation an existing entry supports.
func (k *Keeper) UpdateEntryQuantity(id string, quantity float64) error {
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return fmt.Errorf("quantity must be a positive number")
	}
	found := false
	err := k.Mutate(func(env *model.StateEnvelope) {
		for i := range env.Entries {
			if env.Entries[i].ID == id {
				env.Entries[i].Quantity = quantity
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no entry with id %q", id)
	}
	return nil
}

// DeleteEntry removes one entry by id.
func (k *Keeper) DeleteEntry(id string) error {
	found := false
	err := k.Mutate(func(env *model.StateEnvelope) {
		kept := env.Entries[:0]
		for _, e := range env.Entries {
			if e.ID == id {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		env.Entries = kept
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no entry with id %q", id)
	}
	return nil
}

// AddQuickAddTemplate enforces the case-insensitive soft-unique name rule.
// Import and restore paths bypass this on purpose.
func (k *Keeper) AddQuickAddTemplate(tpl model.QuickAddTemplate) error {
	name := strings.TrimSpace(tpl.Name)
	if name == "" {
		return fmt.Errorf("template name is required")
	}
	for _, existing := range k.env.QuickAddTemplates {
		if strings.EqualFold(existing.Name, name) {
			return fmt.Errorf("template %q already exists", existing.Name)
		}
	}
	tpl.Name = name
	return k.Mutate(func(env *model.StateEnvelope) {
		env.QuickAddTemplates = append(env.QuickAddTemplates, tpl)
	})
}

// RemoveQuickAddTemplate deletes a template by case-insensitive name.
func (k *Keeper) RemoveQuickAddTemplate(name string) error {
	found := false
	err := k.Mutate(func(env *model.StateEnvelope) {
		kept := env.QuickAddTemplates[:0]
		for _, tpl := range env.QuickAddTemplates {
			if strings.EqualFold(tpl.Name, strings.TrimSpace(name)) {
				found = true
				continue
			}
			kept = append(kept, tpl)
		}
		env.QuickAddTemplates = kept
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no template named %q", name)
	}
	return nil
}

// ApplyQuickAdd logs an entry from a saved template.
func (k *Keeper) ApplyQuickAdd(name string, quantity float64, meal model.MealTag) (model.LogEntry, error) {
	for _, tpl := range k.env.QuickAddTemplates {
		if strings.EqualFold(tpl.Name, strings.TrimSpace(name)) {
			return k.AddEntry(AddEntryInput{
				Name:             tpl.Name,
				Source:           SourceQuickAdd,
				ServingSizeLabel: tpl.ServingSizeLabel,
				Quantity:         quantity,
				Macros:           tpl.MacrosPerServing,
				MealTag:          meal,
			})
		}
	}
	return model.LogEntry{}, fmt.Errorf("no template named %q", name)
}

// SetProteinFloor updates the daily protein floor in grams.
func (k *Keeper) SetProteinFloor(grams float64) error {
	if grams < 0 || math.IsNaN(grams) || math.IsInf(grams, 0) {
		return fmt.Errorf("protein floor must be a non-negative number")
	}
	return k.Mutate(func(env *model.StateEnvelope) {
		env.ProteinFloorGramsPerDay = grams
	})
}

// SetExternalAPIKey stores the nutrition-lookup API key.
func (k *Keeper) SetExternalAPIKey(key string) error {
	return k.Mutate(func(env *model.StateEnvelope) {
		env.ExternalAPIKey = strings.TrimSpace(key)
	})
}

// SetRoadTripMode toggles the travel-day relaxation flag.
func (k *Keeper) SetRoadTripMode(enabled bool) error {
	return k.Mutate(func(env *model.StateEnvelope) {
		env.RoadTripModeEnabled = enabled
	})
}

// Wipe clears all entries. The caller must have armed AuthorizeWipe first;
// without it the save path refuses the transition.
func (k *Keeper) Wipe() error {
	return k.Mutate(func(env *model.StateEnvelope) {
		env.Entries = []model.LogEntry{}
	})
}
