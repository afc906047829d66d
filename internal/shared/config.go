package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Auth     AuthConfig     `toml:"auth"`
	Database DatabaseConfig `toml:"database"`
	Session  SessionConfig  `toml:"session"`
}

// APIConfig contains settings for the Music Collection Manager API.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

// AuthConfig selects the identity strategy and configures the OAuth flow.
//
// Strategy is "oauth" (authoritative) or "impersonation" (legacy, selects a
// user id sent as the X-User-ID header with no local validation).
type AuthConfig struct {
	Strategy     string         `toml:"strategy"`
	RedirectURI  string         `toml:"redirect_uri"`
	CallbackAddr string         `toml:"callback_addr"`
	Keycloak     KeycloakConfig `toml:"keycloak"`
}

// KeycloakConfig holds optional direct-provider endpoints. When AuthURL and
// TokenURL are both set the session controller exchanges the authorization
// code directly against the provider instead of through the API backend.
type KeycloakConfig struct {
	AuthURL      string `toml:"auth_url"`
	TokenURL     string `toml:"token_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// DatabaseConfig contains settings for the local catalog cache.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// SessionConfig controls where session artifacts live between invocations.
//
// An empty TokenFile keeps the session in memory for the lifetime of one run,
// matching the tab-scoped storage of the original client.
type SessionConfig struct {
	TokenFile string `toml:"token_file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
