// Package environment loads named Squonk2 environments from the user's
// environments file, by default ~/.squonk2/environments. The file collects
// the Keycloak coordinates and service hostnames for each deployment a
// user works with, so example tools and scripts can refer to environments
// by name instead of carrying a dozen variables each.
//
// The file is YAML:
//
//	---
//	default: dls-test
//	environments:
//	  dls-test:
//	    keycloak-hostname: keycloak.example.com
//	    keycloak-realm: squonk2
//	    keycloak-dm-client-id: data-manager-api
//	    keycloak-as-client-id: account-server-api
//	    admin-user: admin
//	    admin-password: secret
//	    dm-hostname: data-manager.example.com
//	    as-hostname: account-server.example.com
package environment

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileEnvName overrides the default environments file location.
const FileEnvName = "SQUONK2_ENVIRONMENTS_FILE"

const defaultFile = ".squonk2/environments"

// Environment is one named deployment from the environments file.
type Environment struct {
	Name string

	KeycloakHostname   string `yaml:"keycloak-hostname"`
	KeycloakRealm      string `yaml:"keycloak-realm"`
	KeycloakDMClientID string `yaml:"keycloak-dm-client-id"`
	KeycloakASClientID string `yaml:"keycloak-as-client-id"`
	AdminUser          string `yaml:"admin-user"`
	AdminPassword      string `yaml:"admin-password"`
	DMHostname         string `yaml:"dm-hostname"`
	ASHostname         string `yaml:"as-hostname"`
}

// KeycloakURL returns the Keycloak server base URL.
func (e *Environment) KeycloakURL() string {
	return fmt.Sprintf("https://%s/auth", e.KeycloakHostname)
}

// DataManagerAPIURL returns the Data Manager API root.
func (e *Environment) DataManagerAPIURL() string {
	return fmt.Sprintf("https://%s/data-manager-api", e.DMHostname)
}

// AccountServerAPIURL returns the Account Server API root.
func (e *Environment) AccountServerAPIURL() string {
	return fmt.Sprintf("https://%s/account-server-api", e.ASHostname)
}

type environmentsFile struct {
	Default      string                  `yaml:"default"`
	Environments map[string]*Environment `yaml:"environments"`
}

// Load returns the named environment from the environments file. An empty
// name selects the file's default environment.
func Load(name string) (*Environment, error) {
	path := os.Getenv(FileEnvName)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot locate home directory: %w", err)
		}
		path = filepath.Join(home, defaultFile)
	}
	return LoadFile(path, name)
}

// LoadFile returns the named environment from the given file.
func LoadFile(path, name string) (*Environment, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read environments file %s: %w", path, err)
	}

	var file environmentsFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("cannot parse environments file %s: %w", path, err)
	}
	if len(file.Environments) == 0 {
		return nil, fmt.Errorf("no environments in %s", path)
	}

	if name == "" {
		name = file.Default
	}
	if name == "" {
		return nil, fmt.Errorf("no environment named and no default in %s", path)
	}

	env, ok := file.Environments[name]
	if !ok {
		return nil, fmt.Errorf("no environment %q in %s", name, path)
	}
	env.Name = name

	if env.KeycloakHostname == "" {
		return nil, fmt.Errorf("environment %q has no keycloak-hostname", name)
	}
	if env.KeycloakRealm == "" {
		return nil, fmt.Errorf("environment %q has no keycloak-realm", name)
	}

	return env, nil
}
