package usda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dandelion9999/protein-floor-tracker/internal/model"
)

const defaultBaseURL = "https://api.nal.usda.gov"

// Product is one branded-food record from USDA FoodData Central, macros per
// one labeled serving.
type Product struct {
	Name             string
	Brand            string
	ServingSizeLabel string
	Macros           model.Macro
}

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) LookupBarcode(ctx context.Context, barcode string) (Product, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return Product{}, fmt.Errorf("missing USDA API key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	reqBody := map[string]any{
		"query":    barcode,
		"dataType": []string{"Branded"},
		"pageSize": 20,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Product{}, fmt.Errorf("marshal USDA search payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/fdc/v1/foods/search?api_key=%s", baseURL, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Product{}, fmt.Errorf("create USDA request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return Product{}, fmt.Errorf("execute USDA request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Product{}, fmt.Errorf("read USDA response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Product{}, fmt.Errorf("USDA request failed with status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Product{}, fmt.Errorf("decode USDA response: %w", err)
	}

	food, ok := selectBarcodeMatch(parsed.Foods, barcode)
	if !ok {
		return Product{}, fmt.Errorf("no USDA branded food found for barcode %q", barcode)
	}

	out := Product{
		Name:             strings.TrimSpace(food.Description),
		Brand:            strings.TrimSpace(food.BrandOwner),
		ServingSizeLabel: servingLabel(food),
	}
	for _, n := range food.FoodNutrients {
		value := n.Value
		if value < 0 {
			value = 0
		}
		switch strings.ToLower(strings.TrimSpace(n.NutrientName)) {
		case "energy":
			out.Macros.Calories = value
		case "protein":
			out.Macros.Protein = value
		case "carbohydrate, by difference":
			out.Macros.Carbs = value
		case "total lipid (fat)":
			out.Macros.Fat = value
		}
	}
	return out, nil
}

func selectBarcodeMatch(foods []searchFood, barcode string) (searchFood, bool) {
	code := strings.TrimSpace(barcode)
	for _, f := range foods {
		if strings.TrimSpace(f.GTINUPC) == code {
			return f, true
		}
	}
	if len(foods) > 0 {
		return foods[0], true
	}
	return searchFood{}, false
}

func servingLabel(f searchFood) string {
	if f.ServingSize > 0 {
		unit := strings.TrimSpace(f.ServingSizeUnit)
		if unit == "" {
			unit = "g"
		}
		return fmt.Sprintf("%g %s", f.ServingSize, unit)
	}
	return "1 serving"
}

type searchResponse struct {
	Foods []searchFood `json:"foods"`
}

type searchFood struct {
	Description     string           `json:"description"`
	BrandOwner      string           `json:"brandOwner"`
	GTINUPC         string           `json:"gtinUpc"`
	ServingSize     float64          `json:"servingSize"`
	ServingSizeUnit string           `json:"servingSizeUnit"`
	FoodNutrients   []searchNutrient `json:"foodNutrients"`
}

type searchNutrient struct {
	NutrientName string  `json:"nutrientName"`
	Value        float64 `json:"value"`
}
