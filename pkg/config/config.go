package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries the environment-driven settings for the Squonk2 services.
// Explicit per-client configuration always takes precedence over values
// loaded here.
type Config struct {
	DataManagerURL             string
	DataManagerVerifySSLCert   bool
	AccountServerURL           string
	AccountServerVerifySSLCert bool

	KeycloakURL          string
	KeycloakRealm        string
	KeycloakDMClientID   string
	KeycloakASClientID   string
	KeycloakUser         string
	KeycloakUserPassword string
}

// Load reads the configuration from the environment. A .env file is
// honoured when present.
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		DataManagerURL:             os.Getenv("SQUONK2_DMAPI_URL"),
		DataManagerVerifySSLCert:   getBool("SQUONK2_DMAPI_VERIFY_SSL_CERT", true),
		AccountServerURL:           os.Getenv("SQUONK2_ASAPI_URL"),
		AccountServerVerifySSLCert: getBool("SQUONK2_ASAPI_VERIFY_SSL_CERT", true),
		KeycloakURL:                os.Getenv("SQUONK2_KEYCLOAK_URL"),
		KeycloakRealm:              os.Getenv("SQUONK2_KEYCLOAK_REALM"),
		KeycloakDMClientID:         os.Getenv("SQUONK2_KEYCLOAK_DM_CLIENT_ID"),
		KeycloakASClientID:         os.Getenv("SQUONK2_KEYCLOAK_AS_CLIENT_ID"),
		KeycloakUser:               os.Getenv("SQUONK2_KEYCLOAK_USER"),
		KeycloakUserPassword:       os.Getenv("SQUONK2_KEYCLOAK_USER_PASSWORD"),
	}

	return cfg, nil
}

// ValidateDataManager checks the variables a Data Manager client needs.
func (c *Config) ValidateDataManager() error {
	if c.DataManagerURL == "" {
		return fmt.Errorf("SQUONK2_DMAPI_URL is required")
	}
	return nil
}

// ValidateAccountServer checks the variables an Account Server client needs.
func (c *Config) ValidateAccountServer() error {
	if c.AccountServerURL == "" {
		return fmt.Errorf("SQUONK2_ASAPI_URL is required")
	}
	return nil
}

// ValidateKeycloak checks the variables the authentication helper needs.
func (c *Config) ValidateKeycloak() error {
	if c.KeycloakURL == "" {
		return fmt.Errorf("SQUONK2_KEYCLOAK_URL is required")
	}
	if c.KeycloakRealm == "" {
		return fmt.Errorf("SQUONK2_KEYCLOAK_REALM is required")
	}
	if c.KeycloakDMClientID == "" {
		return fmt.Errorf("SQUONK2_KEYCLOAK_DM_CLIENT_ID is required")
	}
	if c.KeycloakUser == "" {
		return fmt.Errorf("SQUONK2_KEYCLOAK_USER is required")
	}
	if c.KeycloakUserPassword == "" {
		return fmt.Errorf("SQUONK2_KEYCLOAK_USER_PASSWORD is required")
	}
	return nil
}

// getBool interprets yes/no and true/false values, defaulting when unset.
func getBool(key string, def bool) bool {
	value := strings.ToLower(os.Getenv(key))
	switch value {
	case "":
		return def
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
