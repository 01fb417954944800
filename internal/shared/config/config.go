package config

import (
	"log"
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	DatabaseURL     string
	CORSAllowOrigin []string

	// Public base URL used to build the processing/results links returned to
	// the form vendor's webhook caller.
	BaseURL string

	// Shared secret expected on the inbound webhook as ?secret=.
	WebhookSecret string

	// GenerationProvider selects exactly one strategy per deployment:
	// "openai" (direct), "research" (research-then-generate) or "crewai".
	GenerationProvider string

	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string

	// Working directory of the separately-deployed crew process.
	CrewDir string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}
	if env == "production" && os.Getenv("WEBHOOK_SECRET") == "" {
		log.Printf("WEBHOOK_SECRET is required in production")
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                env,
		DatabaseURL:        dbURL,
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		BaseURL:            strings.TrimSuffix(getEnv("BASE_URL", "http://localhost:3000"), "/"),
		WebhookSecret:      getEnv("WEBHOOK_SECRET", "super_secret_123"),
		GenerationProvider: normalizeProvider(getEnv("GENERATION_PROVIDER", "openai")),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnv("LLM_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
		CrewDir:            getEnv("CREWAI_DIR", "../surfing-ai-agents"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "research", "gemini":
		return "research"
	case "crewai", "crew":
		return "crewai"
	default:
		return "openai"
	}
}
