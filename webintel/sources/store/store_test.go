package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"webintel/webintel/config"
	"webintel/webintel/sources/psql"
	"webintel/webintel/types"
	"webintel/webintel/utils/logging"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDetails(name string) *types.BusinessDetails {
	hq := "Berlin, Germany"
	d := types.DefaultBusinessDetails("https://acme.test")
	d.CompanyName = name
	d.Industry = types.Industry{Industry: "Software", ConfidenceScore: 0.9, SubIndustries: []string{"SaaS"}}
	d.Location.Headquarters = &hq
	d.Location.ConfidenceScore = 0.7
	return d
}

// exerciseStore runs the shared contract every backend must satisfy.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	url := "https://acme.test"

	got, err := s.GetCompany(ctx, url)
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err := s.Exists(ctx, url)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveCompany(ctx, url, sampleDetails("Acme")))
	got, err = s.GetCompany(ctx, url)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "Berlin, Germany", *got.Location.Headquarters)
	assert.Nil(t, got.FoundedYear)

	require.NoError(t, s.SaveCompany(ctx, url, sampleDetails("Acme GmbH")))
	got, err = s.GetCompany(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", got.CompanyName)

	ok, err = s.Exists(ctx, url)
	require.NoError(t, err)
	assert.True(t, ok)

	q := "Who is the CEO?"
	ans, err := s.GetAnswer(ctx, url, q)
	require.NoError(t, err)
	assert.Nil(t, ans)

	require.NoError(t, s.SaveAnswer(ctx, url, q, types.QuestionAnswer{Answer: "Jane", Confidence: 0.5, Source: types.SourceWebSearch}))
	require.NoError(t, s.SaveAnswer(ctx, url, q, types.QuestionAnswer{Answer: "Jane Doe", Confidence: 0.8, Source: types.SourceWebSearch}))
	ans, err = s.GetAnswer(ctx, url, q)
	require.NoError(t, err)
	require.NotNil(t, ans)
	assert.Equal(t, types.QuestionAnswer{Answer: "Jane Doe", Confidence: 0.8, Source: types.SourceWebSearch}, *ans)

	ans, err = s.GetAnswer(ctx, "https://other.test", q)
	require.NoError(t, err)
	assert.Nil(t, ans)
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "db.json")
	s, err := NewJSONStore(path, logging.NewNop())
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)

	// survives reopen
	reopened, err := NewJSONStore(path, logging.NewNop())
	require.NoError(t, err)
	got, err := reopened.GetCompany(context.Background(), "https://acme.test")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme GmbH", got.CompanyName)
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := NewJSONStore(path, logging.NewNop())
	require.NoError(t, err)

	got, err := s.GetCompany(context.Background(), "https://acme.test")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.SaveCompany(context.Background(), "https://acme.test", sampleDetails("Acme")))
	ok, err := s.Exists(context.Background(), "https://acme.test")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLStoreSQLite(t *testing.T) {
	cfg := config.Config{
		StoreBackend: config.StoreSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "webintel.db"),
	}
	db, err := psql.NewDatabase(context.Background(), cfg)
	require.NoError(t, err)

	s := NewSQLStore(db)
	defer s.Close()
	exerciseStore(t, s)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
	assert.True(t, mr.Exists(companiesKey))
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(context.Background(), config.Config{StoreBackend: "cassandra"}, logging.NewNop())
	assert.Error(t, err)
}

func TestNewJSONBackend(t *testing.T) {
	s, err := New(context.Background(), config.Config{
		StoreBackend: config.StoreJSON,
		DBPath:       filepath.Join(t.TempDir(), "db.json"),
	}, logging.NewNop())
	require.NoError(t, err)
	_, ok := s.(*JSONStore)
	assert.True(t, ok)
}
