package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad status: %d", e.Code)
	}
	return fmt.Sprintf("bad status: %d: %s", e.Code, e.Body)
}

// Bearer returns an Authorization header map for token.
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func PostJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body, resp any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return do(ctx, client, http.MethodPost, url, headers, bytes.NewReader(jsonBody), resp)
}

func GetJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, resp any) error {
	return do(ctx, client, http.MethodGet, url, headers, nil, resp)
}

func do(ctx context.Context, client *http.Client, method, url string, headers map[string]string, body io.Reader, resp any) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	r, err := client.Do(req)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode < 200 || r.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(r.Body, 512))
		return &StatusError{Code: r.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if resp != nil {
		return json.NewDecoder(r.Body).Decode(resp)
	}
	return nil
}
