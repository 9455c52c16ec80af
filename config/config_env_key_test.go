package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"events": map[string]any{
			"topicId": "",
		},
		"auth": map[string]any{
			"secretKey":      "",
			"accessTokenTTL": "30m",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "EVENTS_TOPICID", want: "events.topicId"},
		{envKey: "AUTH_SECRETKEY", want: "auth.secretKey"},
		{envKey: "AUTH_ACCESSTOKENTTL", want: "auth.accessTokenTTL"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func newSQLiteConfig(secret string) *Config {
	cfg := &Config{
		Database: &DatabaseConfig{Driver: DatabaseDriverSQLite, SQLiteDSN: "file::memory:"},
		Auth:     &AuthConfig{SecretKey: secret},
	}
	cfg.ApplyDefaults()

	return cfg
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, DatabaseDriverPostgres, cfg.Database.Driver)
	assert.Equal(t, DefaultAccessTokenTTL, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, DefaultMaxTokenTTL, cfg.Auth.MaxTokenTTL)
	assert.Equal(t, 8, cfg.PasswordStrength.MinLength)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("missing secret refuses to start", func(t *testing.T) {
		err := newSQLiteConfig("").Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "auth.secretKey")
	})

	t.Run("short secret refuses to start", func(t *testing.T) {
		require.Error(t, newSQLiteConfig("too-short").Validate())
	})

	t.Run("ttl above maximum", func(t *testing.T) {
		cfg := newSQLiteConfig("0123456789abcdef0123456789abcdef")
		cfg.Auth.AccessTokenTTL = 3 * time.Hour
		require.Error(t, cfg.Validate())
	})

	t.Run("postgres driver needs postgres section", func(t *testing.T) {
		cfg := newSQLiteConfig("0123456789abcdef0123456789abcdef")
		cfg.Database.Driver = DatabaseDriverPostgres
		require.Error(t, cfg.Validate())
	})

	t.Run("valid sqlite config", func(t *testing.T) {
		require.NoError(t, newSQLiteConfig("0123456789abcdef0123456789abcdef").Validate())
	})
}
