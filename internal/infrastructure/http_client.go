package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxJSONBody caps how much of an upstream JSON response is read
const maxJSONBody = 4 << 20

// StatusError reports an upstream response with an error status code
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// userAgentTransport fills in a browser user agent on requests that do not set one
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" && t.userAgent != "" {
		r := req.Clone(req.Context())
		r.Header.Set("User-Agent", t.userAgent)
		req = r
	}
	return t.base.RoundTrip(req)
}

// NewHTTPClient builds the client used for upstream calls. Deadlines are applied
// per call through the request context; responseHeaderTimeout bounds only the
// wait for response headers and may be zero.
func NewHTTPClient(userAgent string, responseHeaderTimeout time.Duration) *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.TLSHandshakeTimeout = 10 * time.Second
	base.ResponseHeaderTimeout = responseHeaderTimeout

	return &http.Client{
		Transport: &userAgentTransport{base: base, userAgent: userAgent},
	}
}

// doJSON executes req under timeout and decodes a JSON body into out
func doJSON(ctx context.Context, client *http.Client, req *http.Request, timeout time.Duration, out interface{}) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONBody))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("malformed upstream response: %w", err)
	}
	return nil
}
