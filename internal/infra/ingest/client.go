// Package ingest provides HTTP clients for the internal parser endpoints
// consulted during proof URL ingestion.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"sliders/config"
	"sliders/internal/ingest"

	"github.com/pkg/errors"
)

const defaultRequestTimeout = 10 * time.Second

type parseRequest struct {
	URL string `json:"url"`
}

// httpParserClient implements ingest.ParserClient against one parser endpoint.
type httpParserClient struct {
	name     string
	endpoint string
	client   *http.Client
}

// NewParserClients builds one client per configured parser endpoint,
// preserving configuration order. Order matters: the router treats earlier
// endpoints as newer parser versions.
func NewParserClients(cfg *config.Config) []ingest.ParserClient {
	if cfg == nil || cfg.Ingest == nil {
		return nil
	}

	timeout := defaultRequestTimeout
	if cfg.Ingest.RequestTimeout > 0 {
		timeout = cfg.Ingest.RequestTimeout
	}

	clients := make([]ingest.ParserClient, 0, len(cfg.Ingest.Endpoints))
	for _, endpoint := range cfg.Ingest.Endpoints {
		clients = append(clients, &httpParserClient{
			name:     endpoint.Name,
			endpoint: endpoint.URL,
			client:   &http.Client{Timeout: timeout},
		})
	}

	return clients
}

// Name identifies the endpoint in logs.
func (c *httpParserClient) Name() string {
	return c.name
}

// Parse posts the proof URL to the endpoint and returns the raw parse
// payload. Shape coercion happens in the router, not here.
func (c *httpParserClient) Parse(ctx context.Context, proofURL string) (json.RawMessage, error) {
	payload, err := json.Marshal(parseRequest{URL: proofURL})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode parse request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build parse request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "parser %s request failed", c.name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("parser %s returned HTTP %d", c.name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read parser %s response", c.name)
	}

	return json.RawMessage(body), nil
}
