package payu

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugochinchilla79/payu_sdk/models"
)

var configEnvKeys = []string{
	"PAYU_API_LOGIN", "PAYU_API_KEY", "PAYU_MERCHANT_ID", "PAYU_ACCOUNT_ID",
	"PAYU_ENV", "PAYU_LANGUAGE", "PAYU_BASE_URL", "PAYU_TIMEOUT",
	"PAYU_SIGNATURE_ALGORITHM", "PAYU_P12_PATH", "PAYU_P12_PASSWORD",
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing login", mutate: func(c *Config) { c.APILogin = "" }, wantErr: "APILogin"},
		{name: "missing key", mutate: func(c *Config) { c.APIKey = "" }, wantErr: "APIKey"},
		{name: "missing merchant", mutate: func(c *Config) { c.MerchantID = "" }, wantErr: "MerchantID"},
		{name: "unknown env", mutate: func(c *Config) { c.Env = "staging" }, wantErr: "environment"},
		{name: "unknown algorithm", mutate: func(c *Config) { c.SignatureAlgorithm = "CRC32" }, wantErr: "signature algorithm"},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: "Timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_URLs(t *testing.T) {
	cfg := testConfig()
	assert.True(t, cfg.IsTest())
	assert.Equal(t, "https://sandbox.api.payulatam.com/payments-api/4.0/service.cgi", cfg.PaymentsURL())
	assert.Equal(t, "https://sandbox.api.payulatam.com/reports-api/4.0/service.cgi", cfg.ReportsURL())
	assert.Equal(t, "https://sandbox.api.payulatam.com/payments-api/rest/v4.9/", cfg.RecurringURL())

	cfg.Env = EnvProduction
	assert.False(t, cfg.IsTest())
	assert.Equal(t, "https://api.payulatam.com/payments-api/4.0/service.cgi", cfg.PaymentsURL())

	cfg.BaseURL = "http://localhost:8080/"
	assert.Equal(t, "http://localhost:8080/reports-api/4.0/service.cgi", cfg.ReportsURL())
}

func TestConfig_Defaults(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, models.LanguageES, cfg.language())
	assert.Equal(t, DefaultTimeout, cfg.timeout())

	cfg.Language = models.LanguageEN
	cfg.Timeout = 5 * time.Second
	assert.Equal(t, models.LanguageEN, cfg.language())
	assert.Equal(t, 5*time.Second, cfg.timeout())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PAYU_API_LOGIN", "login")
	t.Setenv("PAYU_API_KEY", "key")
	t.Setenv("PAYU_MERCHANT_ID", "508029")
	t.Setenv("PAYU_ACCOUNT_ID", "512321")
	t.Setenv("PAYU_ENV", "production")
	t.Setenv("PAYU_LANGUAGE", "EN")
	t.Setenv("PAYU_TIMEOUT", "15s")
	t.Setenv("PAYU_SIGNATURE_ALGORITHM", "sha256")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "login", cfg.APILogin)
	assert.Equal(t, "512321", cfg.AccountID)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, models.LanguageEN, cfg.Language)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, SignatureSHA256, cfg.SignatureAlgorithm)
}

func TestLoadConfigFromEnv_BadTimeout(t *testing.T) {
	t.Setenv("PAYU_TIMEOUT", "soon")
	_, err := LoadConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAYU_TIMEOUT")
}

func TestLoadConfigFromDotEnv(t *testing.T) {
	for _, k := range configEnvKeys {
		if _, ok := os.LookupEnv(k); ok {
			t.Skipf("%s is set in the environment", k)
		}
	}
	t.Cleanup(func() {
		for _, k := range configEnvKeys {
			os.Unsetenv(k)
		}
	})

	file := filepath.Join(t.TempDir(), ".env")
	content := "PAYU_API_LOGIN=dotenv-login\nPAYU_API_KEY=dotenv-key\nPAYU_MERCHANT_ID=1\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	cfg, err := LoadConfigFromDotEnv(file)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-login", cfg.APILogin)
	assert.Equal(t, "dotenv-key", cfg.APIKey)
	assert.Equal(t, EnvSandbox, cfg.Env)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromDotEnv_MissingFile(t *testing.T) {
	t.Setenv("PAYU_API_LOGIN", "from-env")
	cfg, err := LoadConfigFromDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APILogin)
}
