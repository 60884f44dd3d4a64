// Package proof implements the nonce proof checks behind identity and
// domain verification: profile page scans, DNS TXT lookups and well-known
// file fetches.
package proof

import (
	"context"
	"net"

	"sliders/internal/domain/service"
)

// netResolver implements service.DNSResolver with the system resolver.
type netResolver struct {
	resolver *net.Resolver
}

// NewDNSResolver is the constructor for netResolver.
func NewDNSResolver() service.DNSResolver {
	return &netResolver{resolver: net.DefaultResolver}
}

// LookupTXT returns all TXT records published for the domain.
func (r *netResolver) LookupTXT(ctx context.Context, domain string) ([]string, error) {
	return r.resolver.LookupTXT(ctx, domain)
}
