// Package config loads process-wide configuration once at startup.
package config

import (
	"errors"

	"github.com/spf13/viper"

	"github.com/lycilph/firenotes/internal/authgw"
	"github.com/lycilph/firenotes/internal/firestore"
)

// Config carries the client's fixed external coordinates. The api key is
// appended as a query parameter to every identity and document-store call.
type Config struct {
	APIKey         string
	ProjectID      string
	IdentityURL    string
	TokenURL       string
	FirestoreURL   string
	CredentialsDir string
}

// Validation errors.
var (
	ErrAPIKeyEmpty    = errors.New("api_key must not be empty")
	ErrProjectIDEmpty = errors.New("project_id must not be empty")
)

// Configuration keys, settable in config.yaml or as FIRENOTES_* env vars.
const (
	keyAPIKey         = "api_key"
	keyProjectID      = "project_id"
	keyIdentityURL    = "identity_url"
	keyTokenURL       = "token_url"
	keyFirestoreURL   = "firestore_url"
	keyCredentialsDir = "credentials_dir"
)

// Load reads config.yaml from dir (when present) and FIRENOTES_*
// environment variables, env taking precedence.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FIRENOTES")
	v.AutomaticEnv()

	v.SetDefault(keyIdentityURL, authgw.DefaultIdentityURL)
	v.SetDefault(keyTokenURL, authgw.DefaultTokenURL)
	v.SetDefault(keyFirestoreURL, firestore.DefaultBaseURL)

	if dir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, err
			}
		}
	}

	return Config{
		APIKey:         v.GetString(keyAPIKey),
		ProjectID:      v.GetString(keyProjectID),
		IdentityURL:    v.GetString(keyIdentityURL),
		TokenURL:       v.GetString(keyTokenURL),
		FirestoreURL:   v.GetString(keyFirestoreURL),
		CredentialsDir: v.GetString(keyCredentialsDir),
	}, nil
}

// Validate checks that the required coordinates are present.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrAPIKeyEmpty
	}
	if c.ProjectID == "" {
		return ErrProjectIDEmpty
	}
	return nil
}
