package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"webintel/webintel/utils/errs"
	httputils "webintel/webintel/utils/http"
	"webintel/webintel/utils/logging"
	"webintel/webintel/utils/types"

	"go.uber.org/zap"
)

const (
	defaultHostedURL      = "https://api.crew4ai.com/v1"
	defaultPollInterval   = 2 * time.Second
	defaultPollAttempts   = 30
	hostedRequestTimeout  = 30 * time.Second
	hostedStatusCompleted = "completed"
	hostedStatusFailed    = "failed"
)

type hostedScrapeRequest struct {
	URL             string `json:"url"`
	ExtractionType  string `json:"extraction_type"`
	IncludeMetadata bool   `json:"include_metadata"`
	IncludeImages   bool   `json:"include_images"`
	IncludeLinks    bool   `json:"include_links"`
}

type hostedScrapeResponse struct {
	JobID string `json:"job_id"`
}

type hostedJob struct {
	Status string        `json:"status"`
	Error  string        `json:"error"`
	Data   hostedJobData `json:"data"`
}

type hostedJobData struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	TextContent string   `json:"text_content"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// HostedOption configures a HostedExtractor.
type HostedOption func(*HostedExtractor)

// WithBaseURL overrides the default scraping service URL.
func WithBaseURL(url string) HostedOption {
	return func(h *HostedExtractor) {
		if url != "" {
			h.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) HostedOption {
	return func(h *HostedExtractor) {
		h.http = hc
	}
}

// WithPolling overrides the interval and number of job status checks.
func WithPolling(interval time.Duration, attempts int) HostedOption {
	return func(h *HostedExtractor) {
		h.pollInterval = interval
		h.maxAttempts = attempts
	}
}

// HostedExtractor delegates scraping to an external job-based service.
type HostedExtractor struct {
	apiKey       string
	baseURL      string
	http         *http.Client
	pollInterval time.Duration
	maxAttempts  int
	logger       *logging.Loggers
}

func NewHostedExtractor(apiKey string, logger *logging.Loggers, opts ...HostedOption) *HostedExtractor {
	h := &HostedExtractor{
		apiKey:       apiKey,
		baseURL:      defaultHostedURL,
		http:         &http.Client{Timeout: hostedRequestTimeout},
		pollInterval: defaultPollInterval,
		maxAttempts:  defaultPollAttempts,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HostedExtractor) Kind() ExtractorKind { return KindHosted }

func (h *HostedExtractor) Extract(ctx context.Context, url string) (*types.ExtractedContent, error) {
	defer h.logger.LogDuration(ctx, "HostedExtractor.Extract")()

	var started hostedScrapeResponse
	err := httputils.PostJSON(ctx, h.http, h.baseURL+"/scrape", httputils.Bearer(h.apiKey), hostedScrapeRequest{
		URL:             url,
		ExtractionType:  "full_page",
		IncludeMetadata: true,
	}, &started)
	if err != nil {
		return nil, errs.Extraction(err, "start scrape job for "+url)
	}
	if started.JobID == "" {
		return nil, errs.Extraction(nil, "scrape service returned no job id for "+url)
	}

	job, err := h.poll(ctx, started.JobID)
	if err != nil {
		return nil, err
	}

	content := job.Data.TextContent
	if content == "" {
		content = job.Data.Content
	}
	return finalize(&types.ExtractedContent{
		Title:           job.Data.Title,
		MetaDescription: job.Data.Description,
		MetaKeywords:    strings.Join(job.Data.Keywords, ", "),
		Content:         content,
	}), nil
}

func (h *HostedExtractor) poll(ctx context.Context, jobID string) (*hostedJob, error) {
	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		var job hostedJob
		if err := httputils.GetJSON(ctx, h.http, h.baseURL+"/jobs/"+jobID, httputils.Bearer(h.apiKey), &job); err != nil {
			return nil, errs.Extraction(err, "check scrape job "+jobID)
		}

		switch job.Status {
		case hostedStatusCompleted:
			return &job, nil
		case hostedStatusFailed:
			return nil, errs.Extraction(fmt.Errorf("%s", job.Error), "scrape job "+jobID+" failed")
		}
		h.logger.App.Debug("scrape job pending", zap.String("job_id", jobID), zap.Int("attempt", attempt), zap.String("status", job.Status))

		select {
		case <-ctx.Done():
			return nil, errs.Extraction(ctx.Err(), "scrape job "+jobID)
		case <-time.After(h.pollInterval):
		}
	}
	return nil, errs.Extraction(fmt.Errorf("no result after %d attempts", h.maxAttempts), "scrape job "+jobID+" timed out")
}
