// Package ingest classifies third-party results URLs, delegates to
// source-specific parser endpoints and normalizes their heterogeneous
// payloads into one canonical shape.
package ingest

import (
	"net/url"
	"strings"

	"sliders/internal/domain/entity"
)

// ClassifySource maps a proof URL onto a known results site by hostname.
// Unrecognized or unparseable URLs classify as SourceOther; that is not an
// error, it just routes the submission to manual entry.
func ClassifySource(rawURL string) entity.ResultSource {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return entity.SourceOther
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == "athletic.net" || strings.HasSuffix(host, ".athletic.net"):
		return entity.SourceAthleticNet
	case host == "milesplit.com" || strings.HasSuffix(host, ".milesplit.com"):
		return entity.SourceMileSplit
	}

	return entity.SourceOther
}
