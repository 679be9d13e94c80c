package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"webintel/webintel/utils/logging"
	utypes "webintel/webintel/utils/types"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	duckDuckGoURL     = "https://html.duckduckgo.com/html/"
	duckDuckGoTimeout = 15 * time.Second
	duckDuckGoAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	safeSearchModerate = "-1"
	safeSearchOff      = "-2"
)

var reHTTP = regexp.MustCompile(`^https?://`)

type ddgAttempt struct {
	maxResults int
	safeSearch string
	timeWindow string
}

func (a ddgAttempt) String() string {
	return fmt.Sprintf("max=%d kp=%s df=%s", a.maxResults, a.safeSearch, a.timeWindow)
}

// Broader attempts come later; the first non-empty result wins.
var ddgAttempts = []ddgAttempt{
	{maxResults: 5, safeSearch: safeSearchModerate},
	{maxResults: 10, safeSearch: safeSearchOff},
	{maxResults: 5, safeSearch: safeSearchModerate, timeWindow: "y"},
}

// DuckDuckGo scrapes the keyless HTML search endpoint.
type DuckDuckGo struct {
	baseURL string
	client  *http.Client
	logger  *logging.Loggers
}

func NewDuckDuckGo(client *http.Client, logger *logging.Loggers) *DuckDuckGo {
	if client == nil {
		client = &http.Client{Timeout: duckDuckGoTimeout}
	}
	return &DuckDuckGo{baseURL: duckDuckGoURL, client: client, logger: logger}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search escalates through ddgAttempts and, when the query contains a "?",
// finally retries with the query cut there. It errors only if every attempt failed to fetch.
func (d *DuckDuckGo) Search(ctx context.Context, query string) (*utypes.SearchResponse, error) {
	defer d.logger.LogDuration(ctx, "DuckDuckGo.Search")()

	type step struct {
		q string
		a ddgAttempt
	}
	steps := make([]step, 0, len(ddgAttempts)+1)
	for _, a := range ddgAttempts {
		steps = append(steps, step{query, a})
	}
	if general := strings.TrimSpace(strings.SplitN(query, "?", 2)[0]); general != "" && general != query {
		steps = append(steps, step{general, ddgAttempts[0]})
	}

	failures := 0
	var lastErr error
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results, err := d.query(ctx, st.q, st.a)
		if err != nil {
			failures++
			lastErr = err
			d.logger.App.Warn("search attempt failed", zap.String("params", st.a.String()), zap.Error(err))
			continue
		}
		if len(results) > 0 {
			return &utypes.SearchResponse{Results: results}, nil
		}
	}

	if failures == len(steps) {
		return nil, lastErr
	}
	d.logger.App.Warn("no results found in DuckDuckGo search", zap.String("query", query))
	return nil, nil
}

func (d *DuckDuckGo) query(ctx context.Context, q string, a ddgAttempt) ([]utypes.SearchResult, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("kp", a.safeSearch)
	if a.timeWindow != "" {
		params.Set("df", a.timeWindow)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", duckDuckGoAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseResults(doc, a.maxResults), nil
}

func parseResults(doc *goquery.Document, maxResults int) []utypes.SearchResult {
	var results []utypes.SearchResult
	doc.Find(".result__body").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if len(results) >= maxResults {
			return false
		}
		titleSel := s.Find(".result__title a").First()
		href, exists := titleSel.Attr("href")
		if !exists {
			return true
		}

		link := href
		if parsed, err := url.Parse(href); err == nil {
			if target := parsed.Query().Get("uddg"); target != "" {
				link = target
			}
		}
		if !reHTTP.MatchString(link) {
			return true
		}

		results = append(results, utypes.SearchResult{
			Title:   strings.TrimSpace(titleSel.Text()),
			Snippet: strings.TrimSpace(s.Find(".result__snippet").Text()),
			Link:    link,
		})
		return true
	})
	return results
}
