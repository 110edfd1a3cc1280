package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/samber/oops"

	"feeddeck/internal/modules/translation/domain"
)

// LibreTranslator adapts a LibreTranslate-style HTTP endpoint to the
// Capability interface. An empty endpoint means the capability is
// absent.
type LibreTranslator struct {
	client   *http.Client
	endpoint string
	src, dst string
}

// NewLibreTranslator creates a new HTTP-backed translation capability
func NewLibreTranslator(client *http.Client, endpoint, src, dst string) *LibreTranslator {
	if client == nil {
		client = http.DefaultClient
	}
	return &LibreTranslator{client: client, endpoint: endpoint, src: src, dst: dst}
}

var _ domain.Capability = (*LibreTranslator)(nil)

// CanTranslate probes the endpoint's language list for the pair. Any
// failure reports unsupported rather than erroring.
func (t *LibreTranslator) CanTranslate(ctx context.Context, src, dst string) bool {
	if t.endpoint == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint+"/languages", nil)
	if err != nil {
		return false
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var languages []struct {
		Code    string   `json:"code"`
		Targets []string `json:"targets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&languages); err != nil {
		return false
	}

	for _, lang := range languages {
		if lang.Code != src {
			continue
		}
		for _, target := range lang.Targets {
			if target == dst {
				return true
			}
		}
	}
	return false
}

// Translate converts one text via POST /translate.
func (t *LibreTranslator) Translate(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": t.src,
		"target": t.dst,
		"format": "text",
	})
	if err != nil {
		return "", oops.With("context", "encoding translate request").Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", oops.Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", oops.With("context", "translate request failed").Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", oops.With("status", resp.StatusCode, "body", string(body)).Errorf("unexpected translate status")
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", oops.With("context", "decoding translate response").Wrap(err)
	}

	return result.TranslatedText, nil
}
