package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFunc(vals map[string]string) func(string) string {
	return func(k string) string {
		return vals[k]
	}
}

func TestFromEnv_defaults(t *testing.T) {
	cfg, err := fromEnv(envFunc(map[string]string{
		"POSTGRES_CONN_STR": "postgres://localhost/picks",
		"SESSION_SECRET":    "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.JoinAttempts)
	assert.Equal(t, "", cfg.RedisURL)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.True(t, cfg.SecureCookies())
}

func TestFromEnv_overrides(t *testing.T) {
	cfg, err := fromEnv(envFunc(map[string]string{
		"POSTGRES_CONN_STR":      "postgres://localhost/picks",
		"SESSION_SECRET":         "secret",
		"PORT":                   "8080",
		"LOG_LEVEL":              "debug",
		"SESSION_TTL":            "1h",
		"REDIS_URL":              "redis://localhost:6379/0",
		"JOIN_ATTEMPTS_PER_HOUR": "3",
		"ENVIRONMENT":            "Development",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 3, cfg.JoinAttempts)
	assert.False(t, cfg.SecureCookies())
}

func TestFromEnv_errors(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{
			"POSTGRES_CONN_STR": "postgres://localhost/picks",
			"SESSION_SECRET":    "secret",
		}
	}

	tests := map[string]struct {
		key   string
		value string
		want  string
	}{
		"missing conn string": {key: "POSTGRES_CONN_STR", value: "", want: "POSTGRES_CONN_STR"},
		"missing secret":      {key: "SESSION_SECRET", value: "", want: "SESSION_SECRET"},
		"bad port":            {key: "PORT", value: "abc", want: "PORT"},
		"negative port":       {key: "PORT", value: "-1", want: "PORT"},
		"bad ttl":             {key: "SESSION_TTL", value: "forever", want: "SESSION_TTL"},
		"zero attempts":       {key: "JOIN_ATTEMPTS_PER_HOUR", value: "0", want: "JOIN_ATTEMPTS_PER_HOUR"},
		"bad environment":     {key: "ENVIRONMENT", value: "staging", want: "ENVIRONMENT"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			env := base()
			env[tc.key] = tc.value
			_, err := fromEnv(envFunc(env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
