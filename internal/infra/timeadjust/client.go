// Package timeadjust provides the HTTP client for the authoritative
// hand-to-FAT conversion endpoint.
package timeadjust

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"sliders/config"
	"sliders/internal/domain/entity"
	"sliders/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultRequestTimeout = 5 * time.Second

// ErrNotConfigured is returned when no adjust endpoint is set. Callers fall
// back to the local conversion table.
var ErrNotConfigured = errors.New("time adjust endpoint not configured")

type adjustRequest struct {
	EventCode string  `json:"event_code"`
	Seconds   float64 `json:"seconds"`
	Timing    string  `json:"timing"`
}

type adjustResponse struct {
	AdjustedSeconds float64 `json:"adjusted_seconds"`
}

// httpTimeAdjuster implements service.RemoteTimeAdjuster over a JSON RPC.
type httpTimeAdjuster struct {
	endpoint string
	client   *http.Client
}

// NewRemoteTimeAdjuster is the constructor for httpTimeAdjuster.
func NewRemoteTimeAdjuster(cfg *config.Config) service.RemoteTimeAdjuster {
	endpoint := ""
	timeout := defaultRequestTimeout
	if cfg != nil && cfg.TimeAdjust != nil {
		endpoint = cfg.TimeAdjust.Endpoint
		if cfg.TimeAdjust.RequestTimeout > 0 {
			timeout = cfg.TimeAdjust.RequestTimeout
		}
	}

	return &httpTimeAdjuster{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// AdjustTime posts the mark to the conversion endpoint and returns
// FAT-equivalent seconds.
func (a *httpTimeAdjuster) AdjustTime(ctx context.Context, eventCode string, seconds float64, timing entity.TimingMethod) (float64, error) {
	if a.endpoint == "" {
		return 0, ErrNotConfigured
	}

	payload, err := json.Marshal(adjustRequest{
		EventCode: eventCode,
		Seconds:   seconds,
		Timing:    string(timing),
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to encode adjust request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, errors.Wrap(err, "failed to build adjust request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "adjust request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.Errorf("adjust endpoint returned HTTP %d", resp.StatusCode)
	}

	var decoded adjustResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, errors.Wrap(err, "failed to decode adjust response")
	}

	return decoded.AdjustedSeconds, nil
}
