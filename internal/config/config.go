// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Club registry — maps official club names to their 3-letter short codes.
// The short code is what the score box reports for each side, and what
// match ids are suffixed with.
// --------------------------------------------------------------------------

var ClubRegistry = map[string]string{
	"Arsenal":        "ARS",
	"Aston Villa":    "AVL",
	"Barnsley":       "BAR",
	"Birmingham":     "BIR",
	"Blackburn":      "BLB",
	"Blackpool":      "BLP",
	"Bolton":         "BOL",
	"Bournemouth":    "BOU",
	"Bradford":       "BRA",
	"Brentford":      "BRE",
	"Brighton":       "BHA",
	"Burnley":        "BUR",
	"Cardiff":        "CAR",
	"Charlton":       "CHA",
	"Chelsea":        "CHE",
	"Coventry":       "COV",
	"Crystal Palace": "CRY",
	"Derby":          "DER",
	"Everton":        "EVE",
	"Fulham":         "FUL",
	"Huddersfield":   "HUD",
	"Hull":           "HUL",
	"Ipswich":        "IPS",
	"Leeds":          "LEE",
	"Leicester":      "LEI",
	"Liverpool":      "LIV",
	"Man City":       "MCI",
	"Man Utd":        "MUN",
	"Middlesbrough":  "MID",
	"Newcastle":      "NEW",
	"Norwich":        "NOR",
	"Nott'm Forest":  "NFO",
	"Oldham":         "OLD",
	"Portsmouth":     "POR",
	"QPR":            "QPR",
	"Reading":        "RDG",
	"Sheffield Utd":  "SHU",
	"Sheffield Wed":  "SHW",
	"Southampton":    "SOU",
	"Stoke":          "STK",
	"Sunderland":     "SUN",
	"Swansea":        "SWA",
	"Swindon":        "SWI",
	"Spurs":          "TOT",
	"Watford":        "WAT",
	"West Brom":      "WBA",
	"West Ham":       "WHU",
	"Wigan":          "WIG",
	"Wimbledon":      "WIM",
	"Wolves":         "WOL",
}

// ClubCode resolves a club name to its 3-letter short code.
func ClubCode(club string) (string, error) {
	if code, ok := ClubRegistry[club]; ok {
		return code, nil
	}
	return "", fmt.Errorf("unknown club %q", club)
}

// ClubNames returns all registered club names in sorted order.
func ClubNames() []string {
	names := make([]string, 0, len(ClubRegistry))
	for name := range ClubRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --------------------------------------------------------------------------
// Table names — single source of truth, matches schema.sql
// --------------------------------------------------------------------------

const (
	CatalogTable     = "dataset_catalog"
	DatasetRowsTable = "season_dataset_rows"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (API)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool

	// Scrape source
	ResultsURL string

	// Browser session
	Headless            bool
	NavPerMinute        int           // polite navigation budget against the source site
	WaitTimeout         time.Duration // bound on individual element-visibility waits
	SettleDelay         time.Duration // fixed delay before re-querying lazy-loaded content
	MaxDiscoveryRetries int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", envOr("MATCHDAY_DATABASE_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or MATCHDAY_DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),

		ResultsURL: envOr("RESULTS_URL", "https://www.premierleague.com/results"),

		Headless:            envBool("BROWSER_HEADLESS", true),
		NavPerMinute:        envInt("NAV_PER_MINUTE", 20),
		WaitTimeout:         time.Duration(envInt("WAIT_TIMEOUT_SECONDS", 10)) * time.Second,
		SettleDelay:         time.Duration(envInt("SETTLE_DELAY_SECONDS", 2)) * time.Second,
		MaxDiscoveryRetries: envInt("MAX_DISCOVERY_RETRIES", 5),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
