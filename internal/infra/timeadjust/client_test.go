package timeadjust

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sliders/config"
	"sliders/internal/domain/entity"
	"sliders/internal/marks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteTimeAdjuster_AgreesWithLocalTable(t *testing.T) {
	// The test server applies the same conversion as internal/marks, which
	// is the contract: local and remote conversion must agree.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req adjustRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		adjusted := marks.AdjustHandTime(req.EventCode, req.Seconds, entity.TimingMethod(req.Timing))
		require.NoError(t, json.NewEncoder(w).Encode(adjustResponse{AdjustedSeconds: adjusted}))
	}))
	defer server.Close()

	cfg := &config.Config{
		TimeAdjust: &config.TimeAdjustConfig{
			Endpoint:       server.URL,
			RequestTimeout: 2 * time.Second,
		},
	}
	adjuster := NewRemoteTimeAdjuster(cfg)

	tests := []struct {
		name      string
		eventCode string
		seconds   float64
		timing    entity.TimingMethod
		want      float64
	}{
		{"hand sprint gets +0.24", "100m", 11.20, entity.TimingHand, 11.44},
		{"hand hurdles get +0.14", "110mH", 14.70, entity.TimingHand, 14.84},
		{"FAT passes through", "100m", 11.20, entity.TimingFAT, 11.20},
		{"unknown timing passes through", "200m", 22.50, entity.TimingUnknown, 22.50},
		{"distance hand time passes through", "1600m", 285.40, entity.TimingHand, 285.40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := adjuster.AdjustTime(context.Background(), tt.eventCode, tt.seconds, tt.timing)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRemoteTimeAdjuster_NotConfigured(t *testing.T) {
	adjuster := NewRemoteTimeAdjuster(&config.Config{})

	_, err := adjuster.AdjustTime(context.Background(), "100m", 11.2, entity.TimingHand)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRemoteTimeAdjuster_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adjuster := NewRemoteTimeAdjuster(&config.Config{
		TimeAdjust: &config.TimeAdjustConfig{Endpoint: server.URL},
	})

	_, err := adjuster.AdjustTime(context.Background(), "100m", 11.2, entity.TimingHand)
	assert.Error(t, err)
}
