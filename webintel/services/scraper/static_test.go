package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"webintel/webintel/utils/errs"
	"webintel/webintel/utils/logging"
	"webintel/webintel/utils/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acmePage = `<html>
<head>
	<title> Acme </title>
	<meta name="description" content="Widgets for everyone">
	<meta name="keywords" content="widgets, tools">
	<style>body { color: red; }</style>
</head>
<body>
	<h1>Acme</h1>
	<p>We sell widgets</p>
	<script>console.log("tracking")</script>
</body>
</html>`

func TestStaticExtractor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(acmePage))
	}))
	defer srv.Close()

	ext := NewStaticExtractor(srv.Client(), logging.NewNop())
	got, err := ext.Extract(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Acme", got.Title)
	assert.Equal(t, "Widgets for everyone", got.MetaDescription)
	assert.Equal(t, "widgets, tools", got.MetaKeywords)
	assert.Equal(t, "Acme\nWe sell widgets", got.Content)
	assert.NotContains(t, got.Content, "tracking")
}

func TestStaticExtractorTruncates(t *testing.T) {
	body := "<html><body><p>" + strings.Repeat("word ", 5000) + "</p></body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	got, err := NewStaticExtractor(srv.Client(), logging.NewNop()).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.LessOrEqual(t, utf8.RuneCountInString(got.Content), types.MaxContentChars)
}

func TestStaticExtractorBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewStaticExtractor(srv.Client(), logging.NewNop()).Extract(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrExtraction))
}

func TestStaticExtractorDecodesCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("<html><head><title>Caf\xe9 Acme</title></head><body><p>Caf\xe9</p></body></html>"))
	}))
	defer srv.Close()

	got, err := NewStaticExtractor(srv.Client(), logging.NewNop()).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Café Acme", got.Title)
	assert.Equal(t, "Café", got.Content)
}
