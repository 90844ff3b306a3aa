package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/dandelion9999/protein-floor-tracker/internal/model"
	"github.com/dandelion9999/protein-floor-tracker/internal/provider/openfoodfacts"
	"github.com/dandelion9999/protein-floor-tracker/internal/provider/usda"
)

// Record is the collaborator shape the persistence core consumes to build a
// LogEntry from an external catalog hit.
type Record struct {
	Name             string      `json:"name"`
	ServingSizeLabel string      `json:"servingSizeLabel"`
	MacrosPerServing model.Macro `json:"macrosPerServing"`
	Source           string      `json:"source"`
}

// Service fans a lookup out to the configured providers. Open Food Facts is
// keyless and always available; USDA joins the fallback chain when an API
// key is configured.
type Service struct {
	OFF  *openfoodfacts.Client
	USDA *usda.Client
}

func NewService(apiKey string) *Service {
	return &Service{
		OFF:  &openfoodfacts.Client{},
		USDA: &usda.Client{APIKey: strings.TrimSpace(apiKey)},
	}
}

// Barcode resolves a scanned or typed barcode. Open Food Facts first, USDA
// as fallback when keyed.
func (s *Service) Barcode(ctx context.Context, barcode string) (Record, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return Record{}, fmt.Errorf("barcode is required")
	}

	product, offErr := s.OFF.LookupBarcode(ctx, barcode)
	if offErr == nil {
		return Record{
			Name:             productName(product.Name, product.Brand),
			ServingSizeLabel: product.ServingSizeLabel,
			MacrosPerServing: product.Macros,
			Source:           "openfoodfacts",
		}, nil
	}

	if s.USDA != nil && s.USDA.APIKey != "" {
		branded, usdaErr := s.USDA.LookupBarcode(ctx, barcode)
		if usdaErr == nil {
			return Record{
				Name:             productName(branded.Name, branded.Brand),
				ServingSizeLabel: branded.ServingSizeLabel,
				MacrosPerServing: branded.Macros,
				Source:           "usda",
			}, nil
		}
		return Record{}, fmt.Errorf("barcode %q not found (openfoodfacts: %v; usda: %v)", barcode, offErr, usdaErr)
	}
	return Record{}, fmt.Errorf("barcode %q not found: %w", barcode, offErr)
}

// Search runs a free-text query against Open Food Facts.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	products, err := s.OFF.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(products))
	for _, p := range products {
		out = append(out, Record{
			Name:             productName(p.Name, p.Brand),
			ServingSizeLabel: p.ServingSizeLabel,
			MacrosPerServing: p.Macros,
			Source:           "openfoodfacts",
		})
	}
	return out, nil
}

func productName(name, brand string) string {
	if brand == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, brand)
}
