package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_API_KEY", "secret")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("LLM_TEMPERATURE", "0.1")

	cfg := LoadConfig()
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, StoreJSON, cfg.StoreBackend)
	assert.Equal(t, "data/db.json", cfg.DBPath)
	assert.Equal(t, ":8000", cfg.ServerAddr)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
	assert.InDelta(t, 0.1, cfg.LLMTemperature, 1e-9)
	assert.False(t, cfg.MinIOEnabled())
	require.NoError(t, cfg.Validate())
}

func TestValidateReportsMissingKeys(t *testing.T) {
	cfg := Config{
		LLMProvider:    ProviderAnthropic,
		StoreBackend:   StorePostgres,
		SearchProvider: SearchSerpAPI,
		ExtractorMode:  "hosted",
	}
	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{"APP_API_KEY", "ANTHROPIC_API_KEY", "DB_HOST/DB_NAME", "SERPAPI_API_KEY", "SCRAPER_SERVICE_API_KEY"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestValidateUnknownBackend(t *testing.T) {
	cfg := Config{APIKey: "k", LLMProvider: ProviderOllama, StoreBackend: "mongo", SearchProvider: SearchDuckDuckGo, ExtractorMode: "auto"}
	assert.ErrorContains(t, cfg.Validate(), "STORE_BACKEND")
}
