package proof

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"sliders/internal/domain/service"
)

// verifier implements service.ChallengeVerifier on top of a DNS resolver
// and an HTTP page fetcher.
type verifier struct {
	resolver service.DNSResolver
	fetcher  service.PageFetcher
}

// NewChallengeVerifier is the constructor for verifier.
func NewChallengeVerifier(resolver service.DNSResolver, fetcher service.PageFetcher) service.ChallengeVerifier {
	return &verifier{resolver: resolver, fetcher: fetcher}
}

// CheckProfileNonce reports whether the nonce appears anywhere in the body
// of the profile page. Substring containment is deliberate: providers wrap
// bio text in arbitrary markup.
func (v *verifier) CheckProfileNonce(ctx context.Context, profileURL, nonce string) (service.ProofCheck, error) {
	status, body, err := v.fetcher.Fetch(ctx, profileURL)
	if err != nil {
		return service.ProofCheck{}, err
	}
	if status != http.StatusOK {
		return service.ProofCheck{
			Detail: fmt.Sprintf("profile page returned HTTP %d", status),
		}, nil
	}

	if !strings.Contains(body, nonce) {
		return service.ProofCheck{
			Detail: "verification code not found on profile page",
		}, nil
	}

	return service.ProofCheck{Found: true}, nil
}

// CheckDNSTXT reports whether any TXT record on the domain exactly equals
// ProofPrefix + nonce. Unrelated TXT records (SPF and the like) are
// expected and ignored; a prefixed record with the wrong nonce is surfaced
// in the detail so the user can fix the record.
func (v *verifier) CheckDNSTXT(ctx context.Context, domain, nonce string) (service.ProofCheck, error) {
	records, err := v.resolver.LookupTXT(ctx, domain)
	if err != nil {
		return service.ProofCheck{}, err
	}

	expected := service.ProofPrefix + nonce
	var wrongNonce bool
	for _, record := range records {
		if record == expected {
			return service.ProofCheck{Found: true}, nil
		}
		if strings.HasPrefix(record, service.ProofPrefix) {
			wrongNonce = true
		}
	}

	if wrongNonce {
		return service.ProofCheck{
			Detail: "verification TXT record found but the code does not match",
		}, nil
	}

	return service.ProofCheck{
		Detail: fmt.Sprintf("no TXT record matching %s<code> on %s", service.ProofPrefix, domain),
	}, nil
}

// CheckWellKnown reports whether the well-known file on the domain serves
// exactly the nonce. The body is trimmed of surrounding whitespace; any
// other content fails the check.
func (v *verifier) CheckWellKnown(ctx context.Context, domain, nonce string) (service.ProofCheck, error) {
	url := "https://" + domain + service.WellKnownPath
	status, body, err := v.fetcher.Fetch(ctx, url)
	if err != nil {
		return service.ProofCheck{}, err
	}
	if status != http.StatusOK {
		return service.ProofCheck{
			Detail: fmt.Sprintf("%s returned HTTP %d", service.WellKnownPath, status),
		}, nil
	}

	if strings.TrimSpace(body) != nonce {
		return service.ProofCheck{
			Detail: "well-known file exists but its content does not match the verification code",
		}, nil
	}

	return service.ProofCheck{Found: true}, nil
}
