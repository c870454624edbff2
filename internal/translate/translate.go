// Package translate is the client for the remote translation service.
//
// The service takes one batched request and answers with the translated
// strings in the same order and count. Callers treat any failure as "keep
// the original text"; this client only reports the error.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultTarget is used when no target locale is configured.
const DefaultTarget = "en"

// Client issues batched translation requests against one endpoint.
type Client struct {
	endpoint string
	target   string
	client   *http.Client
}

// New builds a client for the given endpoint. An empty target falls back to
// DefaultTarget.
func New(endpoint, target string, timeout time.Duration) *Client {
	if target == "" {
		target = DefaultTarget
	}
	return &Client{
		endpoint: endpoint,
		target:   target,
		client:   &http.Client{Timeout: timeout},
	}
}

type translateRequest struct {
	Q            []string `json:"q"`
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	Alternatives int      `json:"alternatives"`
}

type translateResponse struct {
	TranslatedText []string `json:"translatedText"`
}

// Translate sends one batch with auto source-language detection. The
// response must carry exactly one translation per input; anything else is
// an error.
func (c *Client) Translate(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(translateRequest{
		Q:            texts,
		Source:       "auto",
		Target:       c.target,
		Alternatives: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("encode translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("translate service returned status %d", resp.StatusCode)
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode translate response: %w", err)
	}
	if len(out.TranslatedText) != len(texts) {
		return nil, fmt.Errorf("translate service returned %d texts for %d inputs",
			len(out.TranslatedText), len(texts))
	}
	return out.TranslatedText, nil
}
