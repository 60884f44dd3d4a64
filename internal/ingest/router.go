package ingest

import (
	"context"
	"encoding/json"
	"log/slog"

	"sliders/internal/domain/entity"
)

// ParserClient is one internal verification endpoint able to parse a proof
// URL into a raw payload. Implementations live in the infra layer.
type ParserClient interface {
	// Name identifies the endpoint in logs.
	Name() string

	// Parse fetches and parses the proof URL. The payload shape is
	// endpoint-specific; the router coerces it into the canonical record.
	Parse(ctx context.Context, proofURL string) (json.RawMessage, error)
}

// Outcome is the router's answer for one proof URL. OK is true whenever the
// routing itself worked; a nil Parsed with OK=true means no parser could
// handle the URL and the caller should fall back to manual entry.
type Outcome struct {
	OK     bool
	Source entity.ResultSource
	Parsed *Parsed
}

// Router classifies proof URLs and delegates to parser endpoints in order.
type Router struct {
	clients []ParserClient
	logger  *slog.Logger
}

// NewRouter builds a Router over the configured parser endpoints. Endpoint
// order is the try order.
func NewRouter(clients []ParserClient, logger *slog.Logger) *Router {
	return &Router{clients: clients, logger: logger}
}

// Ingest classifies the URL and tries each parser endpoint until one
// returns a payload that coerces into a valid record. A failing endpoint
// never prevents trying the next one; first success wins.
func (r *Router) Ingest(ctx context.Context, proofURL string) Outcome {
	source := ClassifySource(proofURL)
	if source == entity.SourceOther {
		r.logger.Debug("Unrecognized proof host, routing to manual entry", slog.String("url", proofURL))

		return Outcome{OK: true, Source: source}
	}

	for _, client := range r.clients {
		raw, err := client.Parse(ctx, proofURL)
		if err != nil {
			r.logger.Warn("Parser endpoint failed, trying next",
				slog.String("endpoint", client.Name()),
				slog.String("url", proofURL),
				slog.Any("error", err),
			)

			continue
		}

		parsed, ok := Coerce(raw)
		if !ok {
			r.logger.Warn("Parser payload below validity bar, trying next",
				slog.String("endpoint", client.Name()),
				slog.String("url", proofURL),
			)

			continue
		}

		return Outcome{OK: true, Source: source, Parsed: parsed}
	}

	return Outcome{OK: true, Source: source}
}
