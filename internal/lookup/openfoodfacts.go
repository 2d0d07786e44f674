package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// OpenFoodFacts looks products up in the public Open Food Facts database.
type OpenFoodFacts struct {
	baseURL string
	client  *http.Client
}

// NewOpenFoodFacts creates the Open Food Facts provider. The client should
// carry an instrumented transport and a timeout.
func NewOpenFoodFacts(baseURL string, client *http.Client) *OpenFoodFacts {
	return &OpenFoodFacts{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

var _ Provider = (*OpenFoodFacts)(nil)

func (o *OpenFoodFacts) Name() string { return "openfoodfacts" }

type offResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		Categories  string `json:"categories"`
		Quantity    string `json:"quantity"`
		ImageURL    string `json:"image_url"`
		Nutriments  struct {
			EnergyKcal100g float64 `json:"energy-kcal_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

func (o *OpenFoodFacts) Lookup(ctx context.Context, barcode string) (*ProductInfo, error) {
	u := fmt.Sprintf("%s/api/v2/product/%s.json", o.baseURL, url.PathEscape(barcode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts: unexpected status %d", resp.StatusCode)
	}

	var body offResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("openfoodfacts: decode response: %w", err)
	}
	if body.Status != 1 {
		return nil, nil
	}

	// Open Food Facts stores comma-separated lists; keep the first entry.
	category := body.Product.Categories
	if i := strings.Index(category, ","); i >= 0 {
		category = strings.TrimSpace(category[:i])
	}

	return &ProductInfo{
		Barcode:      barcode,
		Name:         body.Product.ProductName,
		Brand:        body.Product.Brands,
		Category:     category,
		QuantityUnit: body.Product.Quantity,
		EnergyKcal:   body.Product.Nutriments.EnergyKcal100g,
		ImageURL:     body.Product.ImageURL,
		Source:       o.Name(),
	}, nil
}
