package infrastructure

import (
	"context"
	"io"
	"net/http"

	"github.com/yourusername/vidrelay/internal/domain"
)

// MediaStream is an open upstream media response
type MediaStream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// Close releases the upstream connection
func (s *MediaStream) Close() error {
	return s.Body.Close()
}

// MediaStreamer opens direct media links for piping to the client
type MediaStreamer struct {
	client  *http.Client
	referer string
}

// NewMediaStreamer creates a new streamer. The client is expected to bound the
// wait for response headers; the body itself may take as long as the transfer needs.
func NewMediaStreamer(client *http.Client, referer string) *MediaStreamer {
	return &MediaStreamer{
		client:  client,
		referer: referer,
	}
}

// Open starts a GET for mediaURL. The stream stops when ctx is cancelled.
func (s *MediaStreamer) Open(ctx context.Context, platform domain.Platform, mediaURL string) (*MediaStream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, WrapError(platform, err)
	}
	if s.referer != "" {
		req.Header.Set("Referer", s.referer)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, WrapError(platform, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		resp.Body.Close()
		return nil, WrapError(platform, &StatusError{StatusCode: resp.StatusCode})
	}

	return &MediaStream{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}, nil
}
