// Package geo provides best-effort IP-to-country resolution. The production
// resolver calls an external JSON lookup service (ip-api.com compatible);
// every failure mode degrades to the literal country "Unknown" so that
// visit tracking can never break a request.
package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Unknown is the fallback country returned on any lookup failure: timeout,
// network error, non-200 response (429 throttling included), malformed
// body, or a missing country field.
const Unknown = "Unknown"

// DefaultTimeout bounds each outbound lookup. The call sits on the request
// path of every tracked visit, so the bound is deliberately tight.
const DefaultTimeout = 2 * time.Second

// CountryResolver maps a client IP address to a country name. Resolve never
// fails: implementations return Unknown rather than an error.
//
// Production code uses *Client; tests use Static for deterministic results
// without network access.
type CountryResolver interface {
	Resolve(ctx context.Context, ip string) string
}

// countryCaser canonicalizes provider output ("united kingdom" ->
// "United Kingdom") so the country breakdown groups consistently.
var countryCaser = cases.Title(language.English, cases.NoLower)

// Client resolves countries against an ip-api.com style endpoint. One GET
// per lookup, no retries, no caching.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a Client for baseURL (e.g. "http://ip-api.com/json").
// A timeout <= 0 falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Resolve looks up ip and returns its country name, or Unknown on any
// failure. Failures are logged at debug level only; they are expected
// (throttling, private addresses) and must stay silent.
func (c *Client) Resolve(ctx context.Context, ip string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(ip), nil)
	if err != nil {
		return Unknown
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("ip", ip).Msg("geo lookup failed")
		return Unknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("ip", ip).Msg("geo lookup non-200")
		return Unknown
	}

	var body struct {
		Country string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Debug().Err(err).Str("ip", ip).Msg("geo lookup malformed body")
		return Unknown
	}

	country := strings.TrimSpace(body.Country)
	if country == "" {
		return Unknown
	}
	return countryCaser.String(country)
}

// Static is a CountryResolver returning a fixed value; the zero value
// resolves everything to Unknown. Used in tests and as a no-op resolver.
type Static struct {
	Country string
}

// Resolve returns the configured country, or Unknown when unset.
func (s Static) Resolve(context.Context, string) string {
	if s.Country == "" {
		return Unknown
	}
	return s.Country
}
