package config

import (
	"errors"
	"strings"
)

// GeminiAPIKeyEnv is the variable the Gemini tooling reads by convention
const GeminiAPIKeyEnv = "GEMINI_API_KEY"

// ErrNoCredentials is returned when no provider in a chain yields a key
var ErrNoCredentials = errors.New("no Gemini API key: pass --api-key or set " + GeminiAPIKeyEnv)

// CredentialProvider supplies the API key used to build remote clients
type CredentialProvider interface {
	APIKey() (string, error)
}

// StaticCredentials returns a fixed key, typically from a flag
type StaticCredentials string

// APIKey implements CredentialProvider
func (s StaticCredentials) APIKey() (string, error) {
	key := strings.TrimSpace(string(s))
	if key == "" {
		return "", ErrNoCredentials
	}
	return key, nil
}

// EnvCredentials reads the key from an environment variable
type EnvCredentials struct {
	Key    string
	Lookup func(string) (string, bool) // nil means os.LookupEnv
}

// APIKey implements CredentialProvider
func (e EnvCredentials) APIKey() (string, error) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = lookupEnv
	}
	if value, ok := lookup(e.Key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}
	return "", ErrNoCredentials
}

// ChainCredentials tries each provider in order and returns the first key found
type ChainCredentials []CredentialProvider

// APIKey implements CredentialProvider
func (c ChainCredentials) APIKey() (string, error) {
	for _, p := range c {
		if p == nil {
			continue
		}
		key, err := p.APIKey()
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, ErrNoCredentials) {
			return "", err
		}
	}
	return "", ErrNoCredentials
}

// Credentials returns the lookup chain used by the CLI: the explicit value
// first, then PASTEREVIEW_GEMINI_API_KEY (via c.Gemini.APIKey), then
// GEMINI_API_KEY.
func (c *Config) Credentials(explicit string) CredentialProvider {
	return ChainCredentials{
		StaticCredentials(explicit),
		StaticCredentials(c.Gemini.APIKey),
		EnvCredentials{Key: GeminiAPIKeyEnv},
	}
}
