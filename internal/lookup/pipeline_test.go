package lookup

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name    string
	info    *ProductInfo
	err     error
	delay   time.Duration
	started atomic.Int32
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Lookup(ctx context.Context, barcode string) (*ProductInfo, error) {
	f.started.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.info, f.err
}

func TestPipeline_FirstWinsMerge(t *testing.T) {
	first := &fakeProvider{name: "first", info: &ProductInfo{Name: "Oat Milk", Source: "first"}}
	second := &fakeProvider{name: "second", info: &ProductInfo{Name: "OTHER NAME", Brand: "Oatly", EnergyKcal: 46, Source: "second"}}
	third := &fakeProvider{name: "third", info: &ProductInfo{Brand: "ignored", Category: "Drinks"}}

	p := NewPipeline(first, second, third)
	info, err := p.Lookup(context.Background(), "7394376616501")

	require.NoError(t, err)
	assert.Equal(t, "7394376616501", info.Barcode)
	assert.Equal(t, "Oat Milk", info.Name, "first provider's name must win")
	assert.Equal(t, "Oatly", info.Brand, "later provider fills fields the first left empty")
	assert.Equal(t, "Drinks", info.Category)
	assert.Equal(t, 46.0, info.EnergyKcal)
	assert.Equal(t, "first", info.Source)
}

func TestPipeline_RunsAllProvidersInParallel(t *testing.T) {
	slow := &fakeProvider{name: "slow", delay: 50 * time.Millisecond, info: &ProductInfo{Name: "from slow"}}
	fast := &fakeProvider{name: "fast", info: &ProductInfo{Brand: "from fast"}}

	p := NewPipeline(slow, fast)

	start := time.Now()
	info, err := p.Lookup(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, int32(1), slow.started.Load())
	assert.Equal(t, int32(1), fast.started.Load())
	assert.Equal(t, "from slow", info.Name)
	assert.Equal(t, "from fast", info.Brand)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestPipeline_ProviderErrorIsSwallowed(t *testing.T) {
	failing := &fakeProvider{name: "failing", err: errors.New("upstream down")}
	ok := &fakeProvider{name: "ok", info: &ProductInfo{Name: "Bread"}}

	p := NewPipeline(failing, ok)
	info, err := p.Lookup(context.Background(), "456")

	require.NoError(t, err)
	assert.Equal(t, "Bread", info.Name)
}

func TestPipeline_ProviderErrorLeavesGlobalLoggerAlone(t *testing.T) {
	prev := log.Flags()
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	defer log.SetFlags(prev)

	failing := &fakeProvider{name: "failing", err: errors.New("upstream down")}
	ok := &fakeProvider{name: "ok", info: &ProductInfo{Name: "Bread"}}

	_, err := NewPipeline(failing, ok).Lookup(context.Background(), "123")

	require.NoError(t, err)
	assert.Equal(t, log.LstdFlags|log.Lshortfile, log.Flags())
}

func TestPipeline_NoResult(t *testing.T) {
	empty := &fakeProvider{name: "empty"}
	failing := &fakeProvider{name: "failing", err: errors.New("boom")}

	p := NewPipeline(empty, failing)
	info, err := p.Lookup(context.Background(), "789")

	assert.Nil(t, info)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestPipeline_ContextCancelled(t *testing.T) {
	slow := &fakeProvider{name: "slow", delay: time.Second, info: &ProductInfo{Name: "never"}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	p := NewPipeline(slow)
	_, err := p.Lookup(ctx, "1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPipeline_Providers(t *testing.T) {
	p := NewPipeline(&fakeProvider{name: "a"}, &fakeProvider{name: "b"})
	assert.Equal(t, []string{"a", "b"}, p.Providers())
}

func TestOpenFoodFacts_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/7394376616501.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Oat Drink",
				"brands": "Oatly",
				"categories": "Beverages, Plant milks",
				"quantity": "1 l",
				"image_url": "https://img.example/1.jpg",
				"nutriments": {"energy-kcal_100g": 46}
			}
		}`))
	}))
	defer srv.Close()

	prov := NewOpenFoodFacts(srv.URL, srv.Client())
	info, err := prov.Lookup(context.Background(), "7394376616501")

	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Oat Drink", info.Name)
	assert.Equal(t, "Oatly", info.Brand)
	assert.Equal(t, "Beverages", info.Category, "only the first category is kept")
	assert.Equal(t, "1 l", info.QuantityUnit)
	assert.Equal(t, 46.0, info.EnergyKcal)
	assert.Equal(t, "openfoodfacts", info.Source)
}

func TestOpenFoodFacts_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0}`))
	}))
	defer srv.Close()

	prov := NewOpenFoodFacts(srv.URL, srv.Client())
	info, err := prov.Lookup(context.Background(), "0000")

	assert.NoError(t, err)
	assert.Nil(t, info)
}

func TestFoodDataCentral_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/foods/search", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "016000275270", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"foods": [{
				"description": "Cheerios",
				"brandOwner": "General Mills",
				"foodCategory": "Cereal",
				"gtinUpc": "016000275270",
				"foodNutrients": [
					{"nutrientName": "Protein", "unitName": "G", "value": 12},
					{"nutrientName": "Energy", "unitName": "KCAL", "value": 367}
				]
			}]
		}`))
	}))
	defer srv.Close()

	prov := NewFoodDataCentral(srv.URL, "test-key", srv.Client())
	info, err := prov.Lookup(context.Background(), "016000275270")

	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Cheerios", info.Name)
	assert.Equal(t, "General Mills", info.Brand)
	assert.Equal(t, 367.0, info.EnergyKcal)
}

func TestFoodDataCentral_NoAPIKey(t *testing.T) {
	prov := NewFoodDataCentral("http://unused", "", http.DefaultClient)
	info, err := prov.Lookup(context.Background(), "1")

	assert.NoError(t, err)
	assert.Nil(t, info)
}
