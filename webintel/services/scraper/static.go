package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"webintel/webintel/utils/errs"
	"webintel/webintel/utils/logging"
	"webintel/webintel/utils/types"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

const staticTimeout = 10 * time.Second

// StaticExtractor fetches the raw HTML and parses it without running scripts.
type StaticExtractor struct {
	client *http.Client
	logger *logging.Loggers
}

// NewStaticExtractor uses a 10 second client when client is nil.
func NewStaticExtractor(client *http.Client, logger *logging.Loggers) *StaticExtractor {
	if client == nil {
		client = &http.Client{Timeout: staticTimeout}
	}
	return &StaticExtractor{client: client, logger: logger}
}

func (s *StaticExtractor) Kind() ExtractorKind { return KindStatic }

func (s *StaticExtractor) Extract(ctx context.Context, url string) (*types.ExtractedContent, error) {
	defer s.logger.LogDuration(ctx, "StaticExtractor.Extract")()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Extraction(err, "build request for "+url)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errs.Extraction(err, "fetch "+url)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.Extraction(fmt.Errorf("bad status: %d", resp.StatusCode), "fetch "+url)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, errs.Extraction(err, "decode "+url)
	}
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errs.Extraction(err, "parse "+url)
	}
	return parseDocument(doc), nil
}

func parseDocument(doc *goquery.Document) *types.ExtractedContent {
	doc.Find("script, style").Remove()

	out := &types.ExtractedContent{
		Title: doc.Find("title").First().Text(),
	}
	out.MetaDescription, _ = doc.Find(`meta[name="description"]`).First().Attr("content")
	out.MetaKeywords, _ = doc.Find(`meta[name="keywords"]`).First().Attr("content")

	body := doc.Find("body")
	text := body.Text()
	if body.Length() == 0 {
		text = doc.Text()
	}
	out.Content = CleanText(text)
	return finalize(out)
}
