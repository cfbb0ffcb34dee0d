package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("SQUONK2_DMAPI_URL", "https://example.com/data-manager-api")
	t.Setenv("SQUONK2_DMAPI_VERIFY_SSL_CERT", "no")
	t.Setenv("SQUONK2_ASAPI_URL", "https://example.com/account-server-api")
	t.Setenv("SQUONK2_KEYCLOAK_URL", "https://example.com/auth")
	t.Setenv("SQUONK2_KEYCLOAK_REALM", "squonk2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/data-manager-api", cfg.DataManagerURL)
	assert.False(t, cfg.DataManagerVerifySSLCert)
	assert.Equal(t, "https://example.com/account-server-api", cfg.AccountServerURL)
	// Unset verify flags default to true
	assert.True(t, cfg.AccountServerVerifySSLCert)
	assert.Equal(t, "squonk2", cfg.KeycloakRealm)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.ErrorContains(t, cfg.ValidateDataManager(), "SQUONK2_DMAPI_URL")
	assert.ErrorContains(t, cfg.ValidateAccountServer(), "SQUONK2_ASAPI_URL")
	assert.ErrorContains(t, cfg.ValidateKeycloak(), "SQUONK2_KEYCLOAK_URL")

	cfg.DataManagerURL = "https://example.com/data-manager-api"
	assert.NoError(t, cfg.ValidateDataManager())

	cfg.KeycloakURL = "https://example.com/auth"
	assert.ErrorContains(t, cfg.ValidateKeycloak(), "SQUONK2_KEYCLOAK_REALM")
	cfg.KeycloakRealm = "squonk2"
	cfg.KeycloakDMClientID = "data-manager-api"
	cfg.KeycloakUser = "user"
	cfg.KeycloakUserPassword = "secret"
	assert.NoError(t, cfg.ValidateKeycloak())
}

func TestGetBool(t *testing.T) {
	cases := []struct {
		value string
		def   bool
		want  bool
	}{
		{value: "", def: true, want: true},
		{value: "", def: false, want: false},
		{value: "yes", def: false, want: true},
		{value: "Yes", def: false, want: true},
		{value: "true", def: false, want: true},
		{value: "1", def: false, want: true},
		{value: "no", def: true, want: false},
		{value: "false", def: true, want: false},
		{value: "anything", def: true, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL_VALUE", tc.value)
			assert.Equal(t, tc.want, getBool("TEST_BOOL_VALUE", tc.def))
		})
	}
}
