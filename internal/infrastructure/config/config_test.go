package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "storefront", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 30*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "simulated", cfg.Payment.Provider)
	assert.Equal(t, 8, cfg.AddressAPI.SuggestLimit)
	assert.Contains(t, cfg.AddressAPI.BaseURL, "pdok.nl")
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins, "CORS origins must not default to a wildcard")
	assert.Less(t, cfg.HTTP.SuggestRateRequests, cfg.HTTP.RateLimitRequests)
}

func TestValidate_ProductionRequiresSessionSecret(t *testing.T) {
	cfg := &Config{}
	cfg.App.Env = "production"
	applyDefaults(cfg)

	require.Empty(t, cfg.Session.Secret, "no dev fallback secret in production")

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session.secret")

	cfg.Session.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Session.Secure = true
	assert.NoError(t, cfg.validate())
}

func TestValidate_RejectsUnknownPaymentProvider(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Payment.Provider = "mollie"

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment.provider")
}

func TestValidate_RejectsWildcardCORSInProduction(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.App.Env = "production"
	cfg.Session.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Session.Secure = true
	cfg.HTTP.CORSAllowOrigins = []string{"*"}

	assert.Error(t, cfg.validate())
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
