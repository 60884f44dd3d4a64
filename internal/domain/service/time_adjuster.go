package service

import (
	"context"

	"sliders/internal/domain/entity"
)

// RemoteTimeAdjuster is the authoritative backend function for hand-to-FAT
// conversion. It is optional: when the call errors or the service is not
// configured, callers fall back to the local conversion table in
// internal/marks, which must agree with the remote one.
type RemoteTimeAdjuster interface {
	// AdjustTime returns FAT-equivalent seconds for the mark.
	AdjustTime(ctx context.Context, eventCode string, seconds float64, timing entity.TimingMethod) (float64, error)
}
