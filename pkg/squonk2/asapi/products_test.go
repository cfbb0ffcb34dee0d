package asapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	var gotBody map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/product/unit/unit-1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"product-00000000-0000-0000-0000-000000000001"}`))
	})
	client := newClient(t, mux)

	result := client.CreateProduct(context.Background(), "token-1", ProductSpec{
		Name:      "Example storage",
		UnitID:    "unit-1",
		Type:      "DATA_MANAGER_STORAGE_SUBSCRIPTION",
		Allowance: 10,
		Limit:     10,
	})

	require.True(t, result.Success, result.Error())
	assert.Equal(t, "Example storage", gotBody["name"])
	assert.Equal(t, "DATA_MANAGER_STORAGE_SUBSCRIPTION", gotBody["type"])
	assert.Equal(t, float64(10), gotBody["allowance"])
	assert.Equal(t, float64(10), gotBody["limit"])
	// Flavour was not given so it must not be sent.
	assert.NotContains(t, gotBody, "flavour")
}

func TestCreateProductMissingFields(t *testing.T) {
	client := newClient(t, http.NewServeMux())

	result := client.CreateProduct(context.Background(), "token-1", ProductSpec{Name: "x"})
	assert.False(t, result.Success)
}

func TestGetProducts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/product", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[]}`))
	})
	mux.HandleFunc("/product/product-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"product-1"}`))
	})
	mux.HandleFunc("/product/unit/unit-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[]}`))
	})
	mux.HandleFunc("/product/organisation/org-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[]}`))
	})
	client := newClient(t, mux)

	ctx := context.Background()
	assert.True(t, client.GetAvailableProducts(ctx, "token-1").Success)
	assert.True(t, client.GetProduct(ctx, "token-1", "product-1").Success)
	assert.True(t, client.GetProductsForUnit(ctx, "token-1", "unit-1").Success)
	assert.True(t, client.GetProductsForOrganisation(ctx, "token-1", "org-1").Success)
	assert.False(t, client.GetProduct(ctx, "token-1", "").Success)
}

func TestGetProductCharges(t *testing.T) {
	var gotQuery map[string][]string
	mux := http.NewServeMux()
	mux.HandleFunc("/product/product-1/charges", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"charges":[]}`))
	})
	client := newClient(t, mux)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	result := client.GetProductCharges(context.Background(), "token-1", "product-1", from, until)

	require.True(t, result.Success)
	assert.Equal(t, []string{"2024-03-01"}, gotQuery["from"])
	assert.Equal(t, []string{"2024-04-01"}, gotQuery["until"])
}

func TestGetProductChargesCurrentPeriod(t *testing.T) {
	var gotRawQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/product/product-1/charges", func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		w.Write([]byte(`{"charges":[]}`))
	})
	client := newClient(t, mux)

	result := client.GetProductCharges(context.Background(), "token-1", "product-1",
		time.Time{}, time.Time{})

	require.True(t, result.Success)
	assert.Empty(t, gotRawQuery)
}

func TestDeleteProduct(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/product/product-1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	client := newClient(t, mux)

	result := client.DeleteProduct(context.Background(), "token-1", "product-1")
	assert.True(t, result.Success)
}

func TestGetAvailableAssetsScopes(t *testing.T) {
	var gotQuery map[string][]string
	mux := http.NewServeMux()
	mux.HandleFunc("/asset", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"assets":[]}`))
	})
	client := newClient(t, mux)
	ctx := context.Background()

	cases := []struct {
		name    string
		scopeID string
		param   string
	}{
		{
			name:    "product scope",
			scopeID: "product-00000000-0000-0000-0000-000000000001",
			param:   "product_id",
		},
		{
			name:    "unit scope",
			scopeID: "unit-00000000-0000-0000-0000-000000000001",
			param:   "unit_id",
		},
		{
			name:    "org scope",
			scopeID: "org-00000000-0000-0000-0000-000000000001",
			param:   "org_id",
		},
		{
			name:    "username scope",
			scopeID: "some.user",
			param:   "user_id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := client.GetAvailableAssets(ctx, "token-1", tc.scopeID)
			require.True(t, result.Success)
			assert.Equal(t, []string{tc.scopeID}, gotQuery[tc.param])
		})
	}

	// No scope: no query parameters at all.
	result := client.GetAvailableAssets(ctx, "token-1", "")
	require.True(t, result.Success)
	assert.Empty(t, gotQuery)
}

func TestGetMerchants(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/merchant", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"merchants":[]}`))
	})
	client := newClient(t, mux)

	assert.True(t, client.GetMerchants(context.Background(), "token-1").Success)
}
