package asapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUnit(t *testing.T) {
	var gotBody map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/organisation/org-1/unit", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"unit-00000000-0000-0000-0000-000000000001"}`))
	})
	client := newClient(t, mux)

	result := client.CreateUnit(context.Background(), "token-1", "Example", "org-1", 8)

	require.True(t, result.Success, result.Error())
	assert.Equal(t, "unit-00000000-0000-0000-0000-000000000001", result.Message["id"])
	assert.Equal(t, "Example", gotBody["name"])
	assert.Equal(t, float64(8), gotBody["billing_day"])
}

func TestCreateUnitBillingDayRange(t *testing.T) {
	client := newClient(t, http.NewServeMux())

	for _, day := range []int{0, 29, -1} {
		result := client.CreateUnit(context.Background(), "token-1", "Example", "org-1", day)
		assert.False(t, result.Success)
		assert.Contains(t, result.Error(), "billing day")
	}
}

func TestCreateOrganisation(t *testing.T) {
	var gotBody map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/organisation", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"org-00000000-0000-0000-0000-000000000001"}`))
	})
	client := newClient(t, mux)

	result := client.CreateOrganisation(context.Background(), "token-1", "Example Org", "owner-user")

	require.True(t, result.Success)
	assert.Equal(t, "Example Org", gotBody["name"])
	assert.Equal(t, "owner-user", gotBody["owner"])
}

func TestGetOrganisationsAndUnits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/organisation", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"organisations":[{"id":"org-1"}]}`))
	})
	mux.HandleFunc("/organisation/org-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"org-1","name":"Example"}`))
	})
	mux.HandleFunc("/organisation/org-1/unit", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"units":[]}`))
	})
	mux.HandleFunc("/unit", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"units":[{"id":"unit-1"}]}`))
	})
	mux.HandleFunc("/unit/unit-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"unit-1"}`))
	})
	client := newClient(t, mux)

	ctx := context.Background()
	assert.True(t, client.GetOrganisations(ctx, "token-1").Success)
	assert.True(t, client.GetOrganisation(ctx, "token-1", "org-1").Success)
	assert.True(t, client.GetUnits(ctx, "token-1", "org-1").Success)
	assert.True(t, client.GetAvailableUnits(ctx, "token-1").Success)
	assert.True(t, client.GetUnit(ctx, "token-1", "unit-1").Success)

	// Missing identifiers are misuse, reported without a network call.
	assert.False(t, client.GetOrganisation(ctx, "token-1", "").Success)
	assert.False(t, client.GetUnit(ctx, "token-1", "").Success)
}

func TestDeleteUnit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/unit/unit-1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	client := newClient(t, mux)

	result := client.DeleteUnit(context.Background(), "token-1", "unit-1")
	assert.True(t, result.Success)
}
