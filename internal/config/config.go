// internal/config/config.go
package config

import (
	"os"
	"strconv"
)

// Config holds all application-level configuration
type Config struct {
	Port int

	// Files
	LeadsCSVPath     string
	FeedbackPath     string
	BrandAliasesPath string
	SuggestionsPath  string

	// Queue; an empty AMQPURL keeps feedback events in process
	AMQPURL       string
	FeedbackQueue string

	// Report
	TopBrands       int
	TopLocations    int
	MinCampaignsMax int
}

// Load reads configuration from environment variables or falls back to defaults.
// Callers run godotenv.Load first so a local .env is honoured.
func Load() *Config {
	return &Config{
		Port:             getEnvInt("PORT", 8080),
		LeadsCSVPath:     getEnv("LEADS_CSV_PATH", "ooh_leads_live.csv"),
		FeedbackPath:     getEnv("FEEDBACK_PATH", "ai_feedback.json"),
		BrandAliasesPath: getEnv("BRAND_ALIASES_PATH", "brand_aliases.yaml"),
		SuggestionsPath:  getEnv("ALIAS_SUGGESTIONS_PATH", "brand_aliases.suggested.yaml"),
		AMQPURL:          getEnv("AMQP_URL", ""),
		FeedbackQueue:    getEnv("FEEDBACK_QUEUE", "lead_feedback"),
		TopBrands:        getEnvInt("TOP_BRANDS", 10),
		TopLocations:     getEnvInt("TOP_LOCATIONS", 15),
		MinCampaignsMax:  getEnvInt("MIN_CAMPAIGNS_MAX", 10),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
