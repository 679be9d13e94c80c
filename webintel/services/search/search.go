package search

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"webintel/webintel/metrics"
	"webintel/webintel/types"
	"webintel/webintel/utils/errs"
	"webintel/webintel/utils/logging"
	"webintel/webintel/utils/textutils"
	utypes "webintel/webintel/utils/types"

	"go.uber.org/zap"
)

// Searcher is a web search provider. A nil response means no results.
type Searcher interface {
	Search(ctx context.Context, query string) (*utypes.SearchResponse, error)
	Name() string
}

var (
	reSpaces       = regexp.MustCompile(`\s+`)
	reOf           = regexp.MustCompile(`(?i)\sof\s`)
	productKeyword = []string{"product", "service", "offer", "provide"}
)

// NormalizeQuery collapses whitespace and trailing question marks. For
// product or service questions the company name is prepended so the search
// stays about the right company.
func NormalizeQuery(query, companyName string) string {
	query = strings.TrimSpace(reSpaces.ReplaceAllString(query, " "))
	query = strings.TrimSpace(strings.TrimRight(query, "?"))

	lower := strings.ToLower(query)
	if !textutils.ContainsAny(lower, productKeyword) {
		return query
	}

	name := strings.TrimSpace(companyName)
	if name != "" && !strings.EqualFold(name, types.NotFound) {
		if strings.Contains(lower, strings.ToLower(name)) {
			return query
		}
		return name + " " + query
	}
	if locs := reOf.FindAllStringIndex(query, -1); len(locs) > 0 {
		if tail := strings.TrimSpace(query[locs[len(locs)-1][1]:]); tail != "" {
			return tail + " " + query
		}
	}
	return query
}


// Service queries the primary provider and, on error or no results, the
// secondary one.
type Service struct {
	primary   Searcher
	secondary Searcher
	logger    *logging.Loggers
}

// NewService accepts a nil secondary.
func NewService(primary, secondary Searcher, logger *logging.Loggers) *Service {
	return &Service{primary: primary, secondary: secondary, logger: logger}
}

// Providers lists provider names in query order.
func (s *Service) Providers() []string {
	names := []string{s.primary.Name()}
	if s.secondary != nil {
		names = append(names, s.secondary.Name())
	}
	return names
}

// Search returns nil, nil when every provider came back empty. An error is
// returned only when no provider produced a usable response.
func (s *Service) Search(ctx context.Context, query, companyName string) (*utypes.SearchResponse, error) {
	defer s.logger.LogDuration(ctx, "SearchService.Search")()

	q := NormalizeQuery(query, companyName)
	s.logger.App.Info("web search", zap.String("query", q), zap.String("provider", s.primary.Name()), logging.TraceField(ctx))

	res, err := s.run(ctx, s.primary, q)
	if err == nil && res != nil {
		return res, nil
	}
	if s.secondary == nil {
		return res, err
	}

	s.logger.App.Info("falling back to secondary search", zap.String("provider", s.secondary.Name()), zap.Bool("primary_failed", err != nil))
	res2, err2 := s.run(ctx, s.secondary, q)
	if err2 == nil {
		return res2, nil
	}
	if err == nil {
		// primary answered empty, secondary failed
		return nil, nil
	}
	return nil, errs.Wrap(errs.ErrSearchUnavailable, errors.Join(err, err2), "all search providers failed")
}

func (s *Service) run(ctx context.Context, p Searcher, q string) (*utypes.SearchResponse, error) {
	res, err := p.Search(ctx, q)
	switch {
	case err != nil:
		metrics.SearchRequests.WithLabelValues(p.Name(), metrics.OutcomeError).Inc()
		s.logger.Error.Error("search failed", zap.String("provider", p.Name()), zap.Error(err), logging.TraceField(ctx))
		return nil, err
	case res == nil || len(res.Results) == 0:
		metrics.SearchRequests.WithLabelValues(p.Name(), metrics.OutcomeEmpty).Inc()
		return nil, nil
	}
	metrics.SearchRequests.WithLabelValues(p.Name(), metrics.OutcomeOK).Inc()
	return res, nil
}
