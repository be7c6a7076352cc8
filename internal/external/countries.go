// Package external implements the outbound client for the country API.
//
// The client issues exactly one GET per call, treats any non-2xx response as
// a failure and extracts the {nombre, capital, bandera} summary from the first
// element of the returned array. Every failure is tagged with
// domain.KindExternalAPI and a Reason describing how the call failed.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tbourn/go-fault-demo/internal/config"
	"github.com/tbourn/go-fault-demo/internal/domain"
)

// Upstream paths used by the country routes.
const (
	PathExisting  = "/name/spain"
	PathMissing   = "/name/paisinexistente"
	PathMalformed = "/alpha?codes="
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	class := "Server Error"
	if e.StatusCode < 500 {
		class = "Client Error"
	}
	text := strings.TrimSpace(strings.TrimPrefix(e.Status, fmt.Sprint(e.StatusCode)))
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%d %s: %s for url: %s", e.StatusCode, class, text, e.URL)
}

// Client talks to the country API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for cfg. Outbound requests are traced through
// otelhttp. A zero cfg.Timeout leaves the client without a deadline.
func NewClient(cfg config.ExternalConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// countryDTO is the subset of the upstream record we read.
type countryDTO struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Capital []string `json:"capital"`
	Flags   struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
}

// FetchCountry GETs path (relative to the base URL, query included) and
// returns the summary of the first record.
func (c *Client) FetchCountry(ctx context.Context, path string) (*domain.Country, error) {
	url := c.baseURL + path
	op := "GET " + url

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.E(domain.KindExternalAPI, domain.ReasonBadRequest, op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.E(domain.KindExternalAPI, domain.ReasonUnreachable, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		serr := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: url}
		return nil, domain.E(domain.KindExternalAPI, statusReason(resp.StatusCode), op, serr)
	}

	var records []countryDTO
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, domain.E(domain.KindExternalAPI, domain.ReasonBadPayload, op, err)
	}
	if len(records) == 0 {
		return nil, domain.E(domain.KindExternalAPI, domain.ReasonBadPayload, op,
			fmt.Errorf("empty response from %s", url))
	}
	return toCountry(records[0]), nil
}

func toCountry(r countryDTO) *domain.Country {
	out := &domain.Country{
		Nombre:  r.Name.Common,
		Capital: domain.CapitalUnavailable,
		Bandera: r.Flags.PNG,
	}
	if len(r.Capital) > 0 && r.Capital[0] != "" {
		out.Capital = r.Capital[0]
	}
	if out.Bandera == "" {
		out.Bandera = r.Flags.SVG
	}
	return out
}

func statusReason(code int) domain.Reason {
	switch code {
	case http.StatusNotFound:
		return domain.ReasonNotFound
	case http.StatusBadRequest:
		return domain.ReasonBadRequest
	default:
		return domain.ReasonUpstream
	}
}
