package service

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/samber/oops"
)

// Fetcher retrieves raw feed bodies through a read-through CORS proxy
// that takes the target URL as a query parameter. Timeout semantics are
// the transport's defaults; no request-level timeout is imposed.
type Fetcher struct {
	client    *http.Client
	proxyBase string
}

// NewFetcher creates a new proxied feed fetcher
func NewFetcher(client *http.Client, proxyBase string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, proxyBase: proxyBase}
}

// Fetch returns the raw body of target, routed through the proxy.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	proxied := f.proxyBase + "?url=" + url.QueryEscape(target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, proxied, nil)
	if err != nil {
		return "", oops.With("url", target).Wrap(err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", oops.With("url", target, "context", "feed request failed").Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", oops.With("url", target, "status", resp.StatusCode).Errorf("unexpected feed status")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", oops.With("url", target, "context", "reading feed body").Wrap(err)
	}

	return string(body), nil
}
