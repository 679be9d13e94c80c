package scraper

import (
	"context"
	"io"
	"strings"

	"webintel/webintel/utils/logging"
	"webintel/webintel/utils/types"

	"go.uber.org/zap"
)

// UserAgent is sent by every extractor that talks to the target site directly.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Extractor interface {
	Extract(ctx context.Context, url string) (*types.ExtractedContent, error)
	Kind() ExtractorKind
}

// Registry resolves the extractor for a URL according to the configured mode.
type Registry struct {
	mode       string
	extractors map[ExtractorKind]Extractor
	logger     *logging.Loggers
}

// NewRegistry accepts "auto", "static", "rendered" or "hosted" as mode.
func NewRegistry(mode string, logger *logging.Loggers, extractors ...Extractor) *Registry {
	r := &Registry{
		mode:       mode,
		extractors: make(map[ExtractorKind]Extractor, len(extractors)),
		logger:     logger,
	}
	for _, e := range extractors {
		if e != nil {
			r.extractors[e.Kind()] = e
		}
	}
	return r
}

// ForURL returns the extractor to use for url. Unavailable kinds fall back
// to the static extractor.
func (r *Registry) ForURL(url string) Extractor {
	kind := ExtractorKind(r.mode)
	if r.mode == "" || r.mode == "auto" {
		kind = SelectExtractor(url)
	}
	r.logger.App.Info("extractor selected", zap.String("url", url), zap.String("extractor", string(kind)))

	if e, ok := r.extractors[kind]; ok {
		return e
	}
	r.logger.App.Warn("extractor unavailable, using static", zap.String("wanted", string(kind)))
	return r.extractors[KindStatic]
}

func (r *Registry) Close() error {
	var first error
	for _, e := range r.extractors {
		if c, ok := e.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// CleanText trims every line, splits lines on double spaces into phrases and
// joins the non-empty phrases with newlines.
func CleanText(text string) string {
	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, phrase := range strings.Split(line, "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				chunks = append(chunks, phrase)
			}
		}
	}
	return strings.Join(chunks, "\n")
}

func finalize(c *types.ExtractedContent) *types.ExtractedContent {
	c.Title = strings.TrimSpace(c.Title)
	c.MetaDescription = strings.TrimSpace(c.MetaDescription)
	c.MetaKeywords = strings.TrimSpace(c.MetaKeywords)
	c.Content = Truncate(c.Content, types.MaxContentChars)
	return c
}
