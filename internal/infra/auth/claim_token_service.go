package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"sliders/config"
	"sliders/internal/domain/entity"
	domainerrors "sliders/internal/domain/errors"
	"sliders/internal/domain/service"
)

// claimTokenClaims binds the full claim payload under one signature so
// fields from two different valid tokens cannot be mixed and matched.
type claimTokenClaims struct {
	RowID             uuid.UUID `json:"rid"`
	Provider          string    `json:"prv"`
	ExternalID        string    `json:"eid"`
	ExternalNumericID *int64    `json:"nid,omitempty"`
	Nonce             string    `json:"nce"`
	jwt.RegisteredClaims
}

// claimTokenService implements service.ClaimTokenService with HS256 JWTs.
type claimTokenService struct {
	secret string
}

// NewClaimTokenService is the constructor for claimTokenService.
func NewClaimTokenService(cfg *config.Config) (service.ClaimTokenService, error) {
	if cfg.SecretKey.Claim == "" {
		return nil, errors.New("claim token secret must be provided")
	}

	return &claimTokenService{secret: cfg.SecretKey.Claim}, nil
}

// Mint signs the payload into a compact token valid for ttl.
func (s *claimTokenService) Mint(payload *service.ClaimTokenPayload, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &claimTokenClaims{
		RowID:             payload.RowID,
		Provider:          string(payload.Provider),
		ExternalID:        payload.ExternalID,
		ExternalNumericID: payload.ExternalNumericID,
		Nonce:             payload.Nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// Verify checks signature and expiry and returns the embedded payload.
// An expired-but-well-signed token surfaces as ErrClaimTokenExpired so the
// caller can prompt for a fresh link; every other failure is
// ErrClaimTokenInvalid.
func (s *claimTokenService) Verify(tokenString string) (*service.ClaimTokenPayload, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claimTokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrClaimTokenExpired.WrapMessage("claim link has expired")
		}

		return nil, domainerrors.ErrClaimTokenInvalid.WrapMessage("claim link is not valid")
	}

	claims, ok := token.Claims.(*claimTokenClaims)
	if !ok || !token.Valid {
		return nil, domainerrors.ErrClaimTokenInvalid.WrapMessage("claim link is not valid")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domainerrors.ErrClaimTokenInvalid.WrapMessage("claim link is not valid")
	}

	return &service.ClaimTokenPayload{
		RowID:             claims.RowID,
		UserID:            userID,
		Provider:          entity.IdentityProvider(claims.Provider),
		ExternalID:        claims.ExternalID,
		ExternalNumericID: claims.ExternalNumericID,
		Nonce:             claims.Nonce,
	}, nil
}
