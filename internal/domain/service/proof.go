package service

import "context"

// ProofPrefix is the literal key prepended to the nonce in DNS TXT proofs:
// "certified-sliders-verify=<nonce>".
const ProofPrefix = "certified-sliders-verify="

// WellKnownPath is where the HTTP challenge expects the raw nonce to be
// served from on the proven domain.
const WellKnownPath = "/.well-known/certified-sliders-verify.txt"

// ProofCheck is the outcome of one proof fetch. Found reports whether the
// expected nonce proof was observed; Detail carries what was actually seen,
// phrased so it can be surfaced to the user for a corrected retry.
type ProofCheck struct {
	Found  bool
	Detail string
}

// DNSResolver looks up TXT records for a domain.
type DNSResolver interface {
	LookupTXT(ctx context.Context, domain string) ([]string, error)
}

// PageFetcher performs a bounded HTTP GET and returns status and body text.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (status int, body string, err error)
}

// ChallengeVerifier unifies the three nonce proof checks behind one
// interface. All three share the same verification state machine and differ
// only in how the proof is fetched and matched:
//
//   - profile page: nonce appears anywhere in the page body
//   - DNS TXT: one record exactly equals ProofPrefix + nonce
//   - well-known file: trimmed body exactly equals the nonce
//
// A returned error means the fetch itself failed (transient); Found=false
// with a nil error means the fetch worked but the proof was absent.
type ChallengeVerifier interface {
	CheckProfileNonce(ctx context.Context, profileURL, nonce string) (ProofCheck, error)
	CheckDNSTXT(ctx context.Context, domain, nonce string) (ProofCheck, error)
	CheckWellKnown(ctx context.Context, domain, nonce string) (ProofCheck, error)
}
