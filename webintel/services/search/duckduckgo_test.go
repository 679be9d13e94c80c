package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"webintel/webintel/utils/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultHTML(n int) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < n; i++ {
		target := url.QueryEscape(fmt.Sprintf("https://site%d.test/page", i))
		fmt.Fprintf(&sb, `<div class="result__body">
			<h2 class="result__title"><a href="//duckduckgo.com/l/?uddg=%s&rut=x"> Result %d </a></h2>
			<a class="result__snippet">Snippet %d</a>
		</div>`, target, i, i)
	}
	sb.WriteString(`<div class="result__body"><h2 class="result__title"><a href="/relative">ad</a></h2></div>`)
	sb.WriteString("</body></html>")
	return sb.String()
}

type ddgRecorder struct {
	mu      sync.Mutex
	queries []url.Values
}

func (r *ddgRecorder) record(q url.Values) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
	return len(r.queries)
}

func newDDG(srv *httptest.Server) *DuckDuckGo {
	d := NewDuckDuckGo(srv.Client(), logging.NewNop())
	d.baseURL = srv.URL + "/html/"
	return d
}

func TestDuckDuckGoFirstAttempt(t *testing.T) {
	rec := &ddgRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r.URL.Query())
		w.Write([]byte(resultHTML(8)))
	}))
	defer srv.Close()

	res, err := newDDG(srv).Search(context.Background(), "acme widgets")
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Results, 5)
	assert.Equal(t, "Result 0", res.Results[0].Title)
	assert.Equal(t, "Snippet 0", res.Results[0].Snippet)
	assert.Equal(t, "https://site0.test/page", res.Results[0].Link)

	require.Len(t, rec.queries, 1)
	assert.Equal(t, "acme widgets", rec.queries[0].Get("q"))
	assert.Equal(t, safeSearchModerate, rec.queries[0].Get("kp"))
}

func TestDuckDuckGoEscalates(t *testing.T) {
	rec := &ddgRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := rec.record(r.URL.Query())
		if n < 3 {
			w.Write([]byte("<html><body>no results</body></html>"))
			return
		}
		w.Write([]byte(resultHTML(2)))
	}))
	defer srv.Close()

	res, err := newDDG(srv).Search(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, res.Results, 2)

	require.Len(t, rec.queries, 3)
	assert.Equal(t, safeSearchOff, rec.queries[1].Get("kp"))
	assert.Equal(t, "y", rec.queries[2].Get("df"))
}

func TestDuckDuckGoGeneralFallback(t *testing.T) {
	rec := &ddgRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r.URL.Query())
		if strings.Contains(r.URL.Query().Get("q"), "?") {
			w.Write([]byte("<html></html>"))
			return
		}
		w.Write([]byte(resultHTML(1)))
	}))
	defer srv.Close()

	res, err := newDDG(srv).Search(context.Background(), "who? acme")
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, rec.queries, 4)
	assert.Equal(t, "who", rec.queries[3].Get("q"))
}

func TestDuckDuckGoEmptyAndErrors(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer empty.Close()
	res, err := newDDG(empty).Search(context.Background(), "acme")
	require.NoError(t, err)
	assert.Nil(t, res)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer failing.Close()
	_, err = newDDG(failing).Search(context.Background(), "acme")
	assert.Error(t, err)
}

func TestDuckDuckGoNoRepeatWithoutQuestionMark(t *testing.T) {
	rec := &ddgRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r.URL.Query())
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	res, err := newDDG(srv).Search(context.Background(), "acme widgets")
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Len(t, rec.queries, len(ddgAttempts))
}
