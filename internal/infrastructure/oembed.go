package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/yourusername/vidrelay/internal/domain"
)

// OEmbedResponse is the subset of an oEmbed document the providers read.
// Error is set by the lookup service instead of an HTTP error status.
type OEmbedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ProviderName string `json:"provider_name"`
	ThumbnailURL string `json:"thumbnail_url"`
	Error        string `json:"error"`
}

// OEmbedClient queries an oEmbed lookup service keyed by video URL
type OEmbedClient struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// NewOEmbedClient creates a new oEmbed client
func NewOEmbedClient(endpoint string, client *http.Client, timeout time.Duration) *OEmbedClient {
	return &OEmbedClient{
		endpoint: endpoint,
		client:   client,
		timeout:  timeout,
	}
}

// Lookup fetches the oEmbed document for videoURL
func (c *OEmbedClient) Lookup(ctx context.Context, videoURL string) (*OEmbedResponse, error) {
	endpoint, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid oEmbed endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("url", videoURL)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	var resp OEmbedResponse
	if err := doJSON(ctx, c.client, req, c.timeout, &resp); err != nil {
		return nil, err
	}

	if resp.Error != "" {
		return nil, domain.NewError(domain.ClassifyMessage(resp.Error), resp.Error)
	}
	return &resp, nil
}
