package service

// ClaimQRService renders a one-click claim link as a QR code image, used on
// printed camp flyers and emailed claim instructions.
type ClaimQRService interface {
	// GenerateClaimQR returns a PNG encoding of the claim URL.
	GenerateClaimQR(claimURL string) ([]byte, error)
}
