package geography

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPSource reads the dataset from a remote geography API:
//
//	GET {base}/countries
//	GET {base}/countries/{cc}/states
//	GET {base}/countries/{cc}/states/{sc}/cities
//
// Each endpoint returns a JSON array of {code, name}; cities may omit code.
// A 404 means "not modeled" and yields an empty list.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPSource creates a source with an instrumented client.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return NewHTTPSourceWithClient(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

// NewHTTPSourceWithClient allows passing a preconfigured *http.Client.
func NewHTTPSourceWithClient(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPSource{baseURL: strings.TrimRight(baseURL, "/"), httpClient: client}
}

func (s *HTTPSource) ListCountries(ctx context.Context) ([]Option, error) {
	return s.get(ctx, "/countries")
}

func (s *HTTPSource) ListStates(ctx context.Context, countryCode string) ([]Option, error) {
	return s.get(ctx, "/countries/"+url.PathEscape(countryCode)+"/states")
}

func (s *HTTPSource) ListCities(ctx context.Context, countryCode, stateCode string) ([]Option, error) {
	opts, err := s.get(ctx, "/countries/"+url.PathEscape(countryCode)+"/states/"+url.PathEscape(stateCode)+"/cities")
	if err != nil {
		return nil, err
	}
	for i := range opts {
		if opts[i].Code == "" {
			opts[i].Code = opts[i].Name
		}
	}
	return opts, nil
}

func (s *HTTPSource) get(ctx context.Context, path string) ([]Option, error) {
	target := s.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, NewSourceError(ErrorInternal, "http", "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewSourceError(ErrorTimeout, "http", "request timed out", err)
		}
		return nil, NewSourceError(ErrorOutage, "http", "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return []Option{}, nil
	case resp.StatusCode >= 500:
		return nil, NewSourceError(ErrorOutage, "http", fmt.Sprintf("status %d from %s", resp.StatusCode, path), nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewSourceError(ErrorBadData, "http", fmt.Sprintf("status %d from %s: %s", resp.StatusCode, path, body), nil)
	}

	var opts []Option
	if err := json.NewDecoder(resp.Body).Decode(&opts); err != nil {
		return nil, NewSourceError(ErrorBadData, "http", "decode "+path, err)
	}
	if opts == nil {
		opts = []Option{}
	}
	return opts, nil
}
