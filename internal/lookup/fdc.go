package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// FoodDataCentral looks products up via the USDA FoodData Central search API.
// It matches on GTIN/UPC, which the apps send as the barcode.
type FoodDataCentral struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewFoodDataCentral creates the FDC provider. An empty apiKey disables it at
// lookup time (the provider reports no result).
func NewFoodDataCentral(baseURL, apiKey string, client *http.Client) *FoodDataCentral {
	return &FoodDataCentral{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: client}
}

var _ Provider = (*FoodDataCentral)(nil)

func (f *FoodDataCentral) Name() string { return "fdc" }

type fdcSearchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		BrandOwner    string `json:"brandOwner"`
		FoodCategory  string `json:"foodCategory"`
		GtinUpc       string `json:"gtinUpc"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			UnitName     string  `json:"unitName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

func (f *FoodDataCentral) Lookup(ctx context.Context, barcode string) (*ProductInfo, error) {
	if f.apiKey == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("api_key", f.apiKey)
	q.Set("query", barcode)
	q.Set("pageSize", "1")
	u := fmt.Sprintf("%s/v1/foods/search?%s", f.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fdc: unexpected status %d", resp.StatusCode)
	}

	var body fdcSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("fdc: decode response: %w", err)
	}
	if len(body.Foods) == 0 {
		return nil, nil
	}

	food := body.Foods[0]
	info := &ProductInfo{
		Barcode:  barcode,
		Name:     food.Description,
		Brand:    food.BrandOwner,
		Category: food.FoodCategory,
		Source:   f.Name(),
	}
	for _, n := range food.FoodNutrients {
		if n.NutrientName == "Energy" && n.UnitName == "KCAL" {
			info.EnergyKcal = n.Value
			break
		}
	}
	return info, nil
}
