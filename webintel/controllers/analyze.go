package controllers

import (
	"context"
	"strings"

	"webintel/webintel/metrics"
	"webintel/webintel/services/analyzer"
	"webintel/webintel/services/scraper"
	"webintel/webintel/services/search"
	"webintel/webintel/sources/store"
	"webintel/webintel/types"
	"webintel/webintel/utils/errs"
	"webintel/webintel/utils/logging"
	"webintel/webintel/utils/textutils"
	utypes "webintel/webintel/utils/types"

	"go.uber.org/zap"
)

// PageArchive stores raw extracted pages. Optional.
type PageArchive interface {
	UploadPage(ctx context.Context, url string, content *utypes.ExtractedContent) (string, error)
	GetPage(ctx context.Context, url string) (*utypes.ArchivedPage, error)
}

var (
	industryKeywords = []string{"industry", "sector", "business type"}
	sizeKeywords     = []string{"size", "employees", "how big", "how many people"}
	locationKeywords = []string{"location", "headquarters", "where", "based"}
)

type AnalyzeController struct {
	extractors *scraper.Registry
	analyzer   *analyzer.Analyzer
	store      store.Store
	search     *search.Service
	archive    PageArchive
	logger     *logging.Loggers
}

// NewAnalyzeController accepts a nil archive.
func NewAnalyzeController(
	extractors *scraper.Registry,
	an *analyzer.Analyzer,
	st store.Store,
	searchService *search.Service,
	archive PageArchive,
	logger *logging.Loggers,
) *AnalyzeController {
	return &AnalyzeController{
		extractors: extractors,
		analyzer:   an,
		store:      st,
		search:     searchService,
		archive:    archive,
		logger:     logger,
	}
}

// Analyze returns the cached record for url or builds a new one. Degraded
// records are returned without an error and are not cached.
func (c *AnalyzeController) Analyze(ctx context.Context, url string) (*types.BusinessDetails, error) {
	defer c.logger.LogDuration(ctx, "AnalyzeController.Analyze")()

	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errs.InvalidRequest("url is required")
	}

	cached, err := c.store.GetCompany(ctx, url)
	if err != nil {
		c.logger.Error.Error("cache read failed", zap.String("url", url), zap.Error(err), logging.TraceField(ctx))
	}
	if cached != nil {
		metrics.CacheHits.WithLabelValues("company").Inc()
		metrics.Analyses.WithLabelValues(metrics.OutcomeCached).Inc()
		c.logger.App.Info("company cache hit", zap.String("url", url), logging.TraceField(ctx))
		return cached, nil
	}

	content, err := c.content(ctx, url)
	if err != nil {
		metrics.Analyses.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	details, err := c.analyzer.Analyze(ctx, content, url)
	if err != nil {
		metrics.Analyses.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	if details.IsDegraded() {
		metrics.Analyses.WithLabelValues(metrics.OutcomeDegraded).Inc()
		c.logger.App.Warn("analysis degraded, not caching", zap.String("url", url), logging.TraceField(ctx))
		return details, nil
	}

	if err := c.store.SaveCompany(ctx, url, details); err != nil {
		metrics.Analyses.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}
	metrics.Analyses.WithLabelValues(metrics.OutcomeOK).Inc()
	return details, nil
}

// content reads the page from the archive when possible, otherwise extracts it.
func (c *AnalyzeController) content(ctx context.Context, url string) (*utypes.ExtractedContent, error) {
	if c.archive != nil {
		page, err := c.archive.GetPage(ctx, url)
		if err == nil && page != nil {
			metrics.CacheHits.WithLabelValues("page").Inc()
			c.logger.App.Info("page archive hit", zap.String("url", url), logging.TraceField(ctx))
			return &page.ExtractedContent, nil
		}
		c.logger.App.Debug("page archive miss", zap.String("url", url), zap.Error(err))
	}

	extractor := c.extractors.ForURL(url)
	content, err := extractor.Extract(ctx, url)
	metrics.Extractions.WithLabelValues(string(extractor.Kind()), metrics.Outcome(err)).Inc()
	if err != nil {
		c.logger.Error.Error("extraction failed", zap.String("url", url), zap.String("extractor", string(extractor.Kind())), zap.Error(err), logging.TraceField(ctx))
		return nil, err
	}

	if c.archive != nil {
		if key, err := c.archive.UploadPage(ctx, url, content); err != nil {
			c.logger.Error.Error("page archive upload failed", zap.String("url", url), zap.Error(err))
		} else {
			c.logger.App.Info("page archived", zap.String("key", key))
		}
	}
	return content, nil
}

// Answer resolves a question about the company behind url from the answer
// cache, the cached company record or a web search, in that order. Answers
// derived from a degraded analysis are returned but not cached.
func (c *AnalyzeController) Answer(ctx context.Context, question, url string) (*types.QuestionAnswer, error) {
	defer c.logger.LogDuration(ctx, "AnalyzeController.Answer")()

	url = strings.TrimSpace(url)
	if url == "" || strings.TrimSpace(question) == "" {
		return nil, errs.InvalidRequest("url and question are required")
	}

	cached, err := c.store.GetAnswer(ctx, url, question)
	if err != nil {
		c.logger.Error.Error("answer cache read failed", zap.String("url", url), zap.Error(err), logging.TraceField(ctx))
	}
	if cached != nil {
		metrics.CacheHits.WithLabelValues("answer").Inc()
		return cached, nil
	}

	details, err := c.Analyze(ctx, url)
	if err != nil {
		return nil, err
	}

	answer := AnswerFromDetails(question, details)
	if answer == nil {
		answer, err = c.answerFromSearch(ctx, question, details)
		if err != nil {
			return nil, err
		}
	}

	metrics.Answers.WithLabelValues(answer.Source).Inc()

	if details.IsDegraded() {
		c.logger.App.Warn("answer from degraded analysis, not caching", zap.String("url", url), logging.TraceField(ctx))
		return answer, nil
	}
	if err := c.store.SaveAnswer(ctx, url, question, *answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (c *AnalyzeController) answerFromSearch(ctx context.Context, question string, details *types.BusinessDetails) (*types.QuestionAnswer, error) {
	results, err := c.search.Search(ctx, question, details.CompanyName)
	if err != nil {
		return nil, errs.Wrap(errs.ErrNotFound, err, "no information found for this question")
	}
	if results == nil || len(results.Results) == 0 {
		return nil, errs.Wrap(errs.ErrNotFound, errs.ErrSearchUnavailable, "no information found for this question")
	}
	return c.analyzer.AnswerFromSearch(ctx, question, details, results)
}

// DirectQuestion sends question straight to the model. A nil temperature
// uses the analyzer default.
func (c *AnalyzeController) DirectQuestion(ctx context.Context, question string, temperature *float64) (*utypes.DirectAnswer, error) {
	defer c.logger.LogDuration(ctx, "AnalyzeController.DirectQuestion")()

	if strings.TrimSpace(question) == "" {
		return nil, errs.InvalidRequest("question is required")
	}
	answer, err := c.analyzer.DirectQuestion(ctx, question, temperature)
	if err != nil {
		return nil, err
	}
	metrics.Answers.WithLabelValues(types.SourceLLM).Inc()
	return answer, nil
}

// AnswerFromDetails matches question against the industry, size and location
// keyword sets in that order. It returns nil when nothing matches.
func AnswerFromDetails(question string, details *types.BusinessDetails) *types.QuestionAnswer {
	q := strings.ToLower(question)
	switch {
	case textutils.ContainsAny(q, industryKeywords):
		return &types.QuestionAnswer{
			Answer:     details.Industry.Industry,
			Confidence: details.Industry.ConfidenceScore,
			Source:     types.SourceIndustry,
		}
	case textutils.ContainsAny(q, sizeKeywords):
		return &types.QuestionAnswer{
			Answer:     details.CompanySize.SizeCategory,
			Confidence: details.CompanySize.ConfidenceScore,
			Source:     types.SourceCompanySize,
		}
	case textutils.ContainsAny(q, locationKeywords):
		return &types.QuestionAnswer{
			Answer:     details.Location.HeadquartersOrNotFound(),
			Confidence: details.Location.ConfidenceScore,
			Source:     types.SourceLocation,
		}
	}
	return nil
}
