package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"webintel/webintel/utils/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerpAPISearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google", q.Get("engine"))
		assert.Equal(t, "5", q.Get("num"))
		assert.Equal(t, "key", q.Get("api_key"))
		assert.Equal(t, "acme hq", q.Get("q"))

		json.NewEncoder(w).Encode(map[string]any{
			"organic_results": []map[string]string{
				{"title": "Acme", "snippet": "Based in Springfield", "link": "https://acme.test"},
			},
		})
	}))
	defer srv.Close()

	s := NewSerpAPI("key", srv.Client(), logging.NewNop())
	s.baseURL = srv.URL
	res, err := s.Search(context.Background(), "acme hq")
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "Based in Springfield", res.Results[0].Snippet)
}

func TestSerpAPINoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Google hasn't returned any results for this query."}`))
	}))
	defer srv.Close()

	s := NewSerpAPI("key", srv.Client(), logging.NewNop())
	s.baseURL = srv.URL
	res, err := s.Search(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSerpAPIUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewSerpAPI("bad", srv.Client(), logging.NewNop())
	s.baseURL = srv.URL
	_, err := s.Search(context.Background(), "acme")
	assert.Error(t, err)
}
