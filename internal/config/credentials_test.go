package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProvider struct{ err error }

func (f failingProvider) APIKey() (string, error) { return "", f.err }

func TestStaticCredentials(t *testing.T) {
	key, err := StaticCredentials(" abc ").APIKey()
	require.NoError(t, err)
	assert.Equal(t, "abc", key)

	_, err = StaticCredentials("   ").APIKey()
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestEnvCredentials(t *testing.T) {
	env := map[string]string{"GEMINI_API_KEY": "from-env"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	key, err := EnvCredentials{Key: "GEMINI_API_KEY", Lookup: lookup}.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)

	_, err = EnvCredentials{Key: "MISSING", Lookup: lookup}.APIKey()
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestChainCredentials(t *testing.T) {
	t.Run("first non-empty wins", func(t *testing.T) {
		chain := ChainCredentials{StaticCredentials(""), StaticCredentials("second"), StaticCredentials("third")}
		key, err := chain.APIKey()
		require.NoError(t, err)
		assert.Equal(t, "second", key)
	})

	t.Run("empty chain", func(t *testing.T) {
		_, err := ChainCredentials{nil, StaticCredentials("")}.APIKey()
		assert.ErrorIs(t, err, ErrNoCredentials)
	})

	t.Run("hard failure stops the chain", func(t *testing.T) {
		boom := errors.New("keyring locked")
		_, err := ChainCredentials{failingProvider{boom}, StaticCredentials("unused")}.APIKey()
		assert.ErrorIs(t, err, boom)
	})
}

func TestConfigCredentialsOrder(t *testing.T) {
	t.Setenv(GeminiAPIKeyEnv, "env-key")

	cfg := New()
	key, err := cfg.Credentials("").APIKey()
	require.NoError(t, err)
	assert.Equal(t, "env-key", key, "falls back to GEMINI_API_KEY")

	cfg.Gemini.APIKey = "config-key"
	key, err = cfg.Credentials("").APIKey()
	require.NoError(t, err)
	assert.Equal(t, "config-key", key)

	key, err = cfg.Credentials("flag-key").APIKey()
	require.NoError(t, err)
	assert.Equal(t, "flag-key", key, "explicit value wins")
}
