package main

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"webintel/webintel/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeAllKeepsOrderAndLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	fn := func(ctx context.Context, url string) (*types.BusinessDetails, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		if url == "https://bad.test" {
			return nil, errors.New("boom")
		}
		return types.DefaultBusinessDetails(url), nil
	}

	urls := []string{"https://a.test", "https://bad.test", "https://c.test", "https://d.test"}
	results := analyzeAll(context.Background(), urls, 2, fn)

	require.Len(t, results, 4)
	for i, res := range results {
		assert.Equal(t, urls[i], res.URL)
	}
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "https://d.test", results[3].Details.WebsiteURL)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestPrintResult(t *testing.T) {
	v := types.QuestionAnswer{Answer: "Software", Confidence: 0.9, Source: types.SourceIndustry}

	var js bytes.Buffer
	require.NoError(t, printResult(&js, formatJSON, v))
	assert.JSONEq(t, `{"answer":"Software","confidence":0.9,"source":"industry_data"}`, js.String())

	var ym bytes.Buffer
	require.NoError(t, printResult(&ym, formatYAML, v))
	assert.Contains(t, ym.String(), "answer: Software\n")
	assert.Contains(t, ym.String(), "source: industry_data\n")
}
