package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/venky2135/pg-management-system/internal/apierror"
)

// HeaderRequestID carries a per-request correlation id to the API.
const HeaderRequestID = "X-Request-ID"

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// transport performs one JSON round trip per call against the API origin.
type transport struct {
	baseURL string
	http    Doer
	log     zerolog.Logger
}

func newTransport(baseURL string, httpClient Doer, log zerolog.Logger) *transport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log,
	}
}

// do sends in as the JSON body (when non-nil) and decodes a 2xx body into out
// (when non-nil). Failures are returned as *apierror.Error.
func (t *transport) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	target := t.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := t.http.Do(req)
	if err != nil {
		t.log.Warn().Err(err).
			Str("method", method).
			Str("path", path).
			Str("request_id", reqID).
			Msg("Request failed")
		return apierror.Network(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierror.Network(err)
	}

	t.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", reqID).
		Dur("duration", time.Since(start)).
		Msg("Request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.log.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("request_id", reqID).
			Msg("Request rejected")
		return apierror.FromResponse(resp.StatusCode, statusText(resp), raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.log.Error().Err(err).
			Str("path", path).
			Str("request_id", reqID).
			Msg("Decode response failed")
		return apierror.Decode(resp.StatusCode, err)
	}
	return nil
}

// statusText strips the numeric prefix from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}
