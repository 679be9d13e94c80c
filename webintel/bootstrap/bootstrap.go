// Package bootstrap builds the analyze pipeline from configuration. The HTTP
// server and the CLI share it.
package bootstrap

import (
	"context"
	"errors"

	"webintel/webintel/config"
	"webintel/webintel/controllers"
	"webintel/webintel/services/analyzer"
	"webintel/webintel/services/llm"
	"webintel/webintel/services/scraper"
	"webintel/webintel/services/search"
	"webintel/webintel/sources/storage"
	"webintel/webintel/sources/store"
	"webintel/webintel/utils/logging"

	"go.uber.org/zap"
)

type App struct {
	Analyze *controllers.AnalyzeController
	Health  *controllers.HealthController

	store      store.Store
	extractors *scraper.Registry
}

// Close releases the store and any running browser driver.
func (a *App) Close() error {
	return errors.Join(a.extractors.Close(), a.store.Close())
}

func New(ctx context.Context, cfg config.Config, logger *logging.Loggers) (*App, error) {
	client, err := llm.NewClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	st, err := store.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var archive controllers.PageArchive
	if cfg.MinIOEnabled() {
		pages, err := storage.NewPageArchive(ctx, cfg)
		if err != nil {
			st.Close()
			return nil, err
		}
		archive = pages
		logger.App.Info("page archive enabled", zap.String("bucket", cfg.MinIOBucket))
	}

	extractors := newRegistry(cfg, logger)
	searchService := newSearch(cfg, logger)
	logger.App.Info("pipeline ready",
		zap.String("llm", client.Provider()),
		zap.String("store", cfg.StoreBackend),
		zap.String("extractor_mode", cfg.ExtractorMode),
		zap.Strings("search", searchService.Providers()),
	)
	return &App{
		Analyze: controllers.NewAnalyzeController(
			extractors,
			analyzer.New(client, cfg.LLMModel, cfg.LLMTemperature, logger),
			st,
			searchService,
			archive,
			logger,
		),
		Health:     controllers.NewHealthController(),
		store:      st,
		extractors: extractors,
	}, nil
}

func newRegistry(cfg config.Config, logger *logging.Loggers) *scraper.Registry {
	extractors := []scraper.Extractor{
		scraper.NewStaticExtractor(nil, logger),
		scraper.NewRenderedExtractor(logger),
	}
	if cfg.ScraperServiceKey != "" {
		extractors = append(extractors, scraper.NewHostedExtractor(cfg.ScraperServiceKey, logger,
			scraper.WithBaseURL(cfg.ScraperServiceURL)))
	}
	return scraper.NewRegistry(cfg.ExtractorMode, logger, extractors...)
}

// newSearch puts the configured provider first. SerpAPI is the secondary
// only when a key is present.
func newSearch(cfg config.Config, logger *logging.Loggers) *search.Service {
	ddg := search.NewDuckDuckGo(nil, logger)
	if cfg.SearchProvider == config.SearchSerpAPI {
		return search.NewService(search.NewSerpAPI(cfg.SerpAPIKey, nil, logger), ddg, logger)
	}
	var secondary search.Searcher
	if cfg.SerpAPIKey != "" {
		secondary = search.NewSerpAPI(cfg.SerpAPIKey, nil, logger)
	}
	return search.NewService(ddg, secondary, logger)
}
