// Package probe checks whether the local model service is reachable.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultURL is the local service's version endpoint.
	DefaultURL = "http://localhost:11434/api/version"
	// DefaultTimeout bounds every check.
	DefaultTimeout = 5 * time.Second
)

// Checker probes a version endpoint.
type Checker struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

// Check probes url with DefaultTimeout.
func Check(ctx context.Context, url string) (string, error) {
	return Checker{URL: url}.Check(ctx)
}

// Check returns an informational success string, or an error whose message
// is the informational failure string. The result never feeds back into
// placement or interaction state.
func (c Checker) Check(ctx context.Context) (string, error) {
	url := c.URL
	if url == "" {
		url = DefaultURL
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := c.Client
	if client == nil {
		client = &http.Client{}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("service returned status: %s", resp.Status)
	}

	msg := "connection successful"
	if v := version(resp.Body); v != "" {
		msg += " (version " + v + ")"
	}
	return msg, nil
}

func version(r io.Reader) string {
	var body struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 1<<16)).Decode(&body); err != nil {
		return ""
	}
	return body.Version
}
