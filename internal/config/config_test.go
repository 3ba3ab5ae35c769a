package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/bitebudget/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "BiteBudget", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "stub", cfg.Pricing.Mode)
	assert.Equal(t, "postgres://postgres:@localhost:5432/bitebudget?sslmode=disable", cfg.ConnectionString())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DB_NAME", "budget_test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.ConnectionString(), "/budget_test?")
}

func TestValidate(t *testing.T) {
	type testCase struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}

	tests := []testCase{
		{
			name:   "Valid",
			mutate: func(c *config.Config) {},
		},
		{
			name:    "MissingSecret",
			mutate:  func(c *config.Config) { c.Auth.JWTSecret = "" },
			wantErr: "JWT_SECRET is required",
		},
		{
			name:    "BadPort",
			mutate:  func(c *config.Config) { c.App.Port = 70000 },
			wantErr: "invalid port 70000",
		},
		{
			name:    "BadAMQPScheme",
			mutate:  func(c *config.Config) { c.AMQP.URL = "http://localhost:5672" },
			wantErr: "invalid AMQP_URL scheme",
		},
		{
			name:    "BadPricingMode",
			mutate:  func(c *config.Config) { c.Pricing.Mode = "oracle" },
			wantErr: "invalid PRICING_MODE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "secret")

			cfg, err := config.Load()
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
