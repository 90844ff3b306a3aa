package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookupBarcodeParsesOpenFoodFactsResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": 1,
  "product": {
    "product_name": "Yogurt Cup",
    "brands": "Brand Co",
    "serving_quantity": 170,
    "serving_quantity_unit": "g",
    "nutriments": {
      "energy-kcal_serving": 120,
      "proteins_serving": 10,
      "carbohydrates_serving": 15,
      "fat_serving": 2
    }
  }
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	item, err := c.LookupBarcode(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("lookup barcode: %v", err)
	}
	if item.Name != "Yogurt Cup" || item.Macros.Calories != 120 || item.Macros.Protein != 10 {
		t.Fatalf("unexpected parsed item: %+v", item)
	}
	if item.ServingSizeLabel != "170 g" {
		t.Fatalf("unexpected serving label: %q", item.ServingSizeLabel)
	}
}

func TestLookupBarcodeFallsBackToPer100g(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": 1,
  "product": {
    "product_name": "Oat Flakes",
    "nutriments": {
      "energy-kcal_100g": 370,
      "proteins_100g": "13.5",
      "carbohydrates_100g": 60,
      "fat_100g": 7
    }
  }
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	item, err := c.LookupBarcode(context.Background(), "00000000")
	if err != nil {
		t.Fatalf("lookup barcode: %v", err)
	}
	if item.Macros.Protein != 13.5 {
		t.Fatalf("expected string nutrient coerced to 13.5, got %v", item.Macros.Protein)
	}
	if item.ServingSizeLabel != "100 g" {
		t.Fatalf("expected default serving label, got %q", item.ServingSizeLabel)
	}
}

func TestLookupBarcodeReportsMissingProduct(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": 0, "product": {}}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.LookupBarcode(context.Background(), "404404"); err == nil {
		t.Fatalf("expected error for missing product")
	}
}

func TestSearchSkipsUnnamedProducts(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "products": [
    {"product_name": "", "nutriments": {}},
    {"product_name": "Cottage Cheese", "serving_size": "113 g", "nutriments": {"energy-kcal_serving": 90, "proteins_serving": 12}}
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	items, err := c.Search(context.Background(), "cottage cheese", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Cottage Cheese" {
		t.Fatalf("unexpected search results: %+v", items)
	}
	if items[0].ServingSizeLabel != "113 g" {
		t.Fatalf("unexpected serving label: %q", items[0].ServingSizeLabel)
	}
}
