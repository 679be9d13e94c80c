package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI    = "openai"
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"

	StoreJSON     = "json"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"

	SearchDuckDuckGo = "duckduckgo"
	SearchSerpAPI    = "serpapi"
)

type Config struct {
	APIKey      string
	ServerAddr  string
	LogDir      string
	CORSOrigins []string

	LLMProvider     string
	LLMModel        string
	LLMTemperature  float64
	OpenAIAPIKey    string
	GroqAPIKey      string
	AnthropicAPIKey string
	OllamaURL       string

	SearchProvider string
	SerpAPIKey     string

	ExtractorMode     string
	ScraperServiceKey string
	ScraperServiceURL string

	StoreBackend string
	DBPath       string
	SQLitePath   string
	DBUser       string
	DBPassword   string
	DBHost       string
	DBPort       string
	DBName       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		APIKey:      getEnv("APP_API_KEY", ""),
		ServerAddr:  getEnv("SERVER_ADDR", ":8000"),
		LogDir:      getEnv("LOG_DIR", "./logs"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
		LLMModel:        getEnv("LLM_MODEL", ""),
		LLMTemperature:  getEnvFloat("LLM_TEMPERATURE", 0),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OllamaURL:       getEnv("OLLAMA_URL", "http://localhost:11434/api"),

		SearchProvider: strings.ToLower(getEnv("SEARCH_PROVIDER", SearchDuckDuckGo)),
		SerpAPIKey:     getEnv("SERPAPI_API_KEY", ""),

		ExtractorMode:     strings.ToLower(getEnv("EXTRACTOR_MODE", "auto")),
		ScraperServiceKey: getEnv("SCRAPER_SERVICE_API_KEY", ""),
		ScraperServiceURL: getEnv("SCRAPER_SERVICE_URL", "https://api.crew4ai.com/v1"),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", StoreJSON)),
		DBPath:       getEnv("DB_PATH", "data/db.json"),
		SQLitePath:   getEnv("SQLITE_PATH", "data/webintel.db"),
		DBUser:       getEnv("DB_USER", ""),
		DBPassword:   getEnv("DB_PASSWORD", ""),
		DBHost:       getEnv("DB_HOST", ""),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBName:       getEnv("DB_NAME", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "webintel-pages"),
		MinIOUseSSL:    getEnvBool("MINIO_USE_SSL", false),
	}
}

// Validate reports every missing required setting at once so startup fails
// before the first request instead of on it.
func (c Config) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "APP_API_KEY")
	}
	if err := c.ValidateLLM(); err != nil {
		missing = append(missing, err.Error())
	}

	switch c.StoreBackend {
	case StoreJSON, StoreSQLite, StoreRedis:
	case StorePostgres:
		if c.DBHost == "" || c.DBName == "" {
			missing = append(missing, "DB_HOST/DB_NAME")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.SearchProvider {
	case SearchDuckDuckGo:
	case SearchSerpAPI:
		if c.SerpAPIKey == "" {
			missing = append(missing, "SERPAPI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown SEARCH_PROVIDER %q", c.SearchProvider)
	}

	switch c.ExtractorMode {
	case "auto", "static", "rendered":
	case "hosted":
		if c.ScraperServiceKey == "" {
			missing = append(missing, "SCRAPER_SERVICE_API_KEY")
		}
	default:
		return fmt.Errorf("unknown EXTRACTOR_MODE %q", c.ExtractorMode)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateLLM checks only the model provider settings. The CLI uses it for
// commands that never serve HTTP and so do not need APP_API_KEY.
func (c Config) ValidateLLM() error {
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY")
		}
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY")
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("LLM_PROVIDER (unknown %q)", c.LLMProvider)
	}
	return nil
}

// MinIOEnabled is true when an archive endpoint was configured.
func (c Config) MinIOEnabled() bool {
	return c.MinIOEndpoint != ""
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
