package proof

import (
	"context"
	"io"
	"net/http"
	"time"

	"sliders/config"
	"sliders/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultFetchTimeout = 10 * time.Second

	// maxProofBodySize caps how much of a proof page is read. Nonces are
	// short; anything past 1 MiB cannot change the outcome.
	maxProofBodySize = 1 << 20
)

// httpFetcher implements service.PageFetcher with a bounded http.Client.
type httpFetcher struct {
	client *http.Client
}

// NewPageFetcher is the constructor for httpFetcher.
func NewPageFetcher(cfg *config.Config) service.PageFetcher {
	timeout := defaultFetchTimeout
	if cfg != nil && cfg.Verification != nil && cfg.Verification.FetchTimeout > 0 {
		timeout = cfg.Verification.FetchTimeout
	}

	return &httpFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch performs a GET against the URL and returns status and body text.
func (f *httpFetcher) Fetch(ctx context.Context, url string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", errors.Wrap(err, "failed to build proof request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, "", errors.Wrap(err, "proof fetch failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProofBodySize))
	if err != nil {
		return resp.StatusCode, "", errors.Wrap(err, "failed to read proof body")
	}

	return resp.StatusCode, string(body), nil
}
