package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

const (
	// TokenEnvVar holds the GitHub token.
	TokenEnvVar = "GITHUB_TOKEN"
	// APIURLEnvVar overrides the GitHub REST API base URL.
	APIURLEnvVar = "GITHUB_API_URL"
)

// ErrMissingToken is returned when no GitHub token is configured.
var ErrMissingToken = errors.New("please set " + TokenEnvVar + " environment variable")

// Config is the top-level issuecloser configuration.
type Config struct {
	GitHub GitHubConfig `json:"github"`
	Close  CloseConfig  `json:"close"`
}

// GitHubConfig holds API connection settings.
type GitHubConfig struct {
	Token string `json:"token,omitempty"`
	// APIURL is empty for github.com, otherwise a GitHub Enterprise base URL.
	APIURL string `json:"api_url"`
}

// CloseConfig controls close requests.
type CloseConfig struct {
	// StateReason is sent as state_reason: "", "completed" or "not_planned".
	StateReason string `json:"state_reason"`
}

// Validate checks that StateReason is one GitHub accepts when closing.
func (c CloseConfig) Validate() error {
	switch c.StateReason {
	case "", "completed", "not_planned":
		return nil
	default:
		return fmt.Errorf("invalid close state reason %q (want completed or not_planned)", c.StateReason)
	}
}

// RequireToken returns the configured token, or ErrMissingToken.
func (c *Config) RequireToken() (string, error) {
	if c.GitHub.Token == "" {
		return "", ErrMissingToken
	}
	return c.GitHub.Token, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}

// KeyKind resolves a dotted key such as "github.token" against the json tags
// of Config and returns the kind of the field it names.
func KeyKind(key string) (reflect.Kind, bool) {
	t := reflect.TypeOf(Config{})
	for _, part := range strings.Split(key, ".") {
		if t.Kind() != reflect.Struct {
			return reflect.Invalid, false
		}
		field, ok := fieldByJSONName(t, part)
		if !ok {
			return reflect.Invalid, false
		}
		t = field.Type
	}
	return t.Kind(), true
}

func fieldByJSONName(t reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name {
			return f, true
		}
	}
	return reflect.StructField{}, false
}
