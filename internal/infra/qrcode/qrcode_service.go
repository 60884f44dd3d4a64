// Package qrcode renders claim links as QR code images for printed camp
// flyers and emailed claim instructions.
package qrcode

import (
	"fmt"

	"sliders/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type claimQRService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewClaimQRService creates a new claim QR service instance
func NewClaimQRService(size int, errorCorrectionLevel string) service.ClaimQRService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &claimQRService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateClaimQR returns a PNG encoding of the claim URL.
func (s *claimQRService) GenerateClaimQR(claimURL string) ([]byte, error) {
	qrCode, err := qrcode.New(claimURL, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
