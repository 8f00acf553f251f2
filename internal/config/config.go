package config

import (
	"strings"
	"time"

	"github.com/navigatingnc/bid-management-system/internal/env"
)

type Config struct {
	Port        string
	ENV         string
	API         APIConfig
	RateLimiter RateLimiterConfig
	Session     SessionConfig
	Company     CompanyConfig
	Proposal    ProposalConfig
}

// APIConfig points the gateway at the bid-management REST backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// SessionConfig signs the remembered mail-account cookie.
type SessionConfig struct {
	JWT_SECRET string
}

// CompanyConfig is the letterhead printed on proposal previews and generated
// proposal PDFs.
type CompanyConfig struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

type ProposalConfig struct {
	// Path to a .ttf/.otf font file used when rendering proposal PDFs.
	// Empty means PDF generation is unavailable and the console reports it.
	FontPath string
	// Directory where generated proposal PDFs are written before download.
	// Empty means a per-process temp directory.
	OutputDir string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func GetConfig() Config {
	apiTimeout, err := time.ParseDuration(env.GetString("API_TIMEOUT", "30s"))
	if err != nil {
		apiTimeout = 30 * time.Second
	}

	rateLimiteTimeFrame, err := time.ParseDuration(env.GetString("RATE_LIMIT_TIME_FRAME", "1m"))
	if err != nil {
		rateLimiteTimeFrame = 60 * time.Second
	}

	return Config{
		Port: env.GetString("PORT", "3000"),
		ENV:  env.GetString("ENV", "development"),
		API: APIConfig{
			BaseURL: env.GetString("API_BASE_URL", "http://localhost:5000/api"),
			Timeout: apiTimeout,
		},
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            rateLimiteTimeFrame,
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		Session: SessionConfig{
			JWT_SECRET: env.GetString("SESSION_JWT_SECRET", ""),
		},
		Company: CompanyConfig{
			Name:    env.GetString("COMPANY_NAME", "Material Supply Contractor"),
			Address: env.GetString("COMPANY_ADDRESS", "123 Construction Way, Building City, ST 12345"),
			Phone:   env.GetString("COMPANY_PHONE", "(555) 123-4567"),
			Email:   env.GetString("COMPANY_EMAIL", "info@materialsupply.com"),
		},
		Proposal: ProposalConfig{
			FontPath:  env.GetString("PROPOSAL_FONT_PATH", ""),
			OutputDir: env.GetString("PROPOSAL_OUTPUT_DIR", ""),
		},
	}
}
