package search

import (
	"context"
	"net/http"
	"net/url"
	"time"

	httputils "webintel/webintel/utils/http"
	"webintel/webintel/utils/logging"
	utypes "webintel/webintel/utils/types"

	"github.com/rotisserie/eris"
)

const serpAPIURL = "https://serpapi.com/search.json"

type serpAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
	Error string `json:"error"`
}

// SerpAPI queries Google through serpapi.com.
type SerpAPI struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *logging.Loggers
}

func NewSerpAPI(apiKey string, client *http.Client, logger *logging.Loggers) *SerpAPI {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &SerpAPI{apiKey: apiKey, baseURL: serpAPIURL, client: client, logger: logger}
}

func (s *SerpAPI) Name() string { return "serpapi" }

func (s *SerpAPI) Search(ctx context.Context, query string) (*utypes.SearchResponse, error) {
	defer s.logger.LogDuration(ctx, "SerpAPI.Search")()

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", s.apiKey)
	params.Set("num", "5")

	var resp serpAPIResponse
	if err := httputils.GetJSON(ctx, s.client, s.baseURL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, eris.Wrap(err, "serpapi: search")
	}
	// an empty result set arrives as 200 with only the error field set
	if len(resp.OrganicResults) == 0 {
		return nil, nil
	}

	out := &utypes.SearchResponse{Results: make([]utypes.SearchResult, 0, len(resp.OrganicResults))}
	for _, r := range resp.OrganicResults {
		out.Results = append(out.Results, utypes.SearchResult{Title: r.Title, Snippet: r.Snippet, Link: r.Link})
	}
	return out, nil
}
