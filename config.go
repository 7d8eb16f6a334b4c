package payu

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hugochinchilla79/payu_sdk/models"
)

// Environment represents the PayU environment (sandbox or production).
type Environment string

const (
	EnvSandbox    Environment = "sandbox"
	EnvProduction Environment = "production"
)

const (
	sandboxHost    = "https://sandbox.api.payulatam.com"
	productionHost = "https://api.payulatam.com"

	paymentsPath  = "/payments-api/4.0/service.cgi"
	reportsPath   = "/reports-api/4.0/service.cgi"
	recurringPath = "/payments-api/rest/v4.9/"

	// DefaultTimeout covers the processor's worst-case response time.
	DefaultTimeout = 60 * time.Second
)

// Config holds the credentials and settings needed to interact with
// the PayU Latam API.
type Config struct {
	// APILogin and APIKey are the merchant API credentials.
	APILogin string
	APIKey   string

	// MerchantID is used in order signatures.
	MerchantID string

	// AccountID is the PayU account of the processing country.
	AccountID string

	// Env selects sandbox or production endpoints. Sandbox requests are
	// also flagged with "test": true.
	Env Environment

	// Language of PayU messages. Defaults to Spanish.
	Language models.Language

	// BaseURL optionally overrides the scheme and host of every endpoint.
	// When empty, the host is derived from Env.
	BaseURL string

	// Timeout bounds a single HTTP exchange. Defaults to DefaultTimeout.
	Timeout time.Duration

	// SignatureAlgorithm is MD5 (default), SHA1 or SHA256.
	SignatureAlgorithm SignatureAlgorithm

	// P12Path and P12Password optionally load a client certificate used
	// for mutual TLS with an egress proxy in front of PayU.
	P12Path     string
	P12Password string
}

// Validate checks that the required configuration fields are present.
func (c Config) Validate() error {
	if c.APILogin == "" {
		return fmt.Errorf("payu: APILogin is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("payu: APIKey is required")
	}
	if c.MerchantID == "" {
		return fmt.Errorf("payu: MerchantID is required")
	}
	if c.Env != "" && c.Env != EnvSandbox && c.Env != EnvProduction {
		return fmt.Errorf("payu: unknown environment %q", c.Env)
	}
	if c.SignatureAlgorithm != "" && !c.SignatureAlgorithm.IsValid() {
		return fmt.Errorf("payu: unknown signature algorithm %q", c.SignatureAlgorithm)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("payu: Timeout must not be negative")
	}
	return nil
}

// IsTest reports whether requests target the sandbox.
func (c Config) IsTest() bool {
	return c.Env != EnvProduction
}

// host returns the endpoint host for the configured environment.
func (c Config) host() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	if c.Env == EnvProduction {
		return productionHost
	}
	return sandboxHost
}

// PaymentsURL returns the payments and tokenization endpoint.
func (c Config) PaymentsURL() string { return c.host() + paymentsPath }

// ReportsURL returns the order query endpoint.
func (c Config) ReportsURL() string { return c.host() + reportsPath }

// RecurringURL returns the base of the recurring payments REST API.
func (c Config) RecurringURL() string { return c.host() + recurringPath }

func (c Config) language() models.Language {
	if c.Language == "" {
		return models.LanguageES
	}
	return c.Language
}

func (c Config) timeout() time.Duration {
	if c.Timeout == 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// LoadConfigFromEnv creates a Config from environment variables:
//
//	PAYU_API_LOGIN            – API login (required)
//	PAYU_API_KEY              – API key (required)
//	PAYU_MERCHANT_ID          – merchant identifier (required)
//	PAYU_ACCOUNT_ID           – account identifier
//	PAYU_ENV                  – "sandbox" (default) or "production"
//	PAYU_LANGUAGE             – "es" (default), "en" or "pt"
//	PAYU_BASE_URL             – optional endpoint host override
//	PAYU_TIMEOUT              – HTTP timeout as a Go duration, e.g. "30s"
//	PAYU_SIGNATURE_ALGORITHM  – "MD5" (default), "SHA1" or "SHA256"
//	PAYU_P12_PATH             – optional client certificate
//	PAYU_P12_PASSWORD         – client certificate password
func LoadConfigFromEnv() (Config, error) {
	return configFromEnv()
}

// LoadConfigFromDotEnv loads environment variables from a .env file and then
// reads the Config from them. If the file does not exist it silently falls
// back to the current process environment.
func LoadConfigFromDotEnv(filenames ...string) (Config, error) {
	// godotenv.Load does NOT override existing env vars.
	_ = godotenv.Load(filenames...)
	return configFromEnv()
}

func configFromEnv() (Config, error) {
	env := EnvSandbox
	if os.Getenv("PAYU_ENV") == string(EnvProduction) {
		env = EnvProduction
	}

	cfg := Config{
		APILogin:           os.Getenv("PAYU_API_LOGIN"),
		APIKey:             os.Getenv("PAYU_API_KEY"),
		MerchantID:         os.Getenv("PAYU_MERCHANT_ID"),
		AccountID:          os.Getenv("PAYU_ACCOUNT_ID"),
		Env:                env,
		Language:           models.Language(strings.ToLower(os.Getenv("PAYU_LANGUAGE"))),
		BaseURL:            os.Getenv("PAYU_BASE_URL"),
		SignatureAlgorithm: SignatureAlgorithm(strings.ToUpper(os.Getenv("PAYU_SIGNATURE_ALGORITHM"))),
		P12Path:            os.Getenv("PAYU_P12_PATH"),
		P12Password:        os.Getenv("PAYU_P12_PASSWORD"),
	}

	if raw := os.Getenv("PAYU_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("payu: invalid PAYU_TIMEOUT %q: %w", raw, err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}
