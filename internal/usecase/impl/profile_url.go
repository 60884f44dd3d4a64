package impl

import (
	"net/url"
	"strconv"
	"strings"

	"sliders/internal/domain/entity"
	domainerrors "sliders/internal/domain/errors"
)

// canonicalProfile is the normalized form of a claimed profile URL.
type canonicalProfile struct {
	Provider   entity.IdentityProvider
	ExternalID string
	NumericID  *int64
	URL        string
}

// canonicalizeProfileURL parses a submitted profile URL into provider,
// external ID and a canonical URL. Two submissions of the same profile in
// different formats (http vs https, query strings, trailing slashes) must
// canonicalize identically, since the (provider, external_id) pair is the
// uniqueness key for claims.
func canonicalizeProfileURL(raw string) (*canonicalProfile, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return nil, domainerrors.ErrProfileURLInvalid.WrapMessage("profile URL is not a valid absolute URL")
	}

	host := strings.ToLower(parsed.Hostname())
	path := strings.Trim(parsed.EscapedPath(), "/")
	segments := strings.Split(path, "/")

	switch {
	case host == "athletic.net" || strings.HasSuffix(host, ".athletic.net"):
		return canonicalizeAthleticNet(segments)
	case host == "milesplit.com" || strings.HasSuffix(host, ".milesplit.com"):
		return canonicalizeMileSplit(host, segments)
	}

	return nil, domainerrors.ErrProfileURLInvalid.WrapMessage("URL is not an athletic.net or milesplit.com profile")
}

// canonicalizeAthleticNet handles athlete URLs of the form
// /athlete/<numeric-id>[/track-and-field[/...]].
func canonicalizeAthleticNet(segments []string) (*canonicalProfile, error) {
	if len(segments) < 2 || segments[0] != "athlete" {
		return nil, domainerrors.ErrProfileURLInvalid.WrapMessage("athletic.net URL does not point at an athlete profile")
	}

	numericID, err := strconv.ParseInt(segments[1], 10, 64)
	if err != nil || numericID <= 0 {
		return nil, domainerrors.ErrProfileURLInvalid.WrapMessage("athletic.net athlete ID must be numeric")
	}

	externalID := segments[1]

	return &canonicalProfile{
		Provider:   entity.ProviderAthleticNet,
		ExternalID: externalID,
		NumericID:  &numericID,
		URL:        "https://www.athletic.net/athlete/" + externalID + "/track-and-field",
	}, nil
}

// canonicalizeMileSplit handles athlete URLs of the form
// /athletes/<slug>, where the slug may carry a leading numeric ID
// ("12345-jane-doe") or be a bare name slug.
func canonicalizeMileSplit(host string, segments []string) (*canonicalProfile, error) {
	if len(segments) < 2 || segments[0] != "athletes" || segments[1] == "" {
		return nil, domainerrors.ErrProfileURLInvalid.WrapMessage("milesplit.com URL does not point at an athlete profile")
	}

	slug := strings.ToLower(segments[1])

	var numericID *int64
	if idx := strings.IndexByte(slug, '-'); idx > 0 {
		if parsed, err := strconv.ParseInt(slug[:idx], 10, 64); err == nil && parsed > 0 {
			numericID = &parsed
		}
	} else if parsed, err := strconv.ParseInt(slug, 10, 64); err == nil && parsed > 0 {
		numericID = &parsed
	}

	return &canonicalProfile{
		Provider:   entity.ProviderMileSplit,
		ExternalID: slug,
		NumericID:  numericID,
		URL:        "https://" + host + "/athletes/" + slug,
	}, nil
}
