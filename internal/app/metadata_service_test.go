package app

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/vidrelay/internal/domain"
	"github.com/yourusername/vidrelay/internal/infrastructure"
)

// mockProvider implements domain.MetadataProvider for testing
type mockProvider struct {
	platform domain.Platform
	metadata *domain.VideoMetadata
	err      error
	gotURL   string
	calls    int
}

func (m *mockProvider) Platform() domain.Platform { return m.platform }

func (m *mockProvider) Fetch(ctx context.Context, url string) (*domain.VideoMetadata, error) {
	m.calls++
	m.gotURL = url
	return m.metadata, m.err
}

// mockStreamer implements MediaOpener for testing
type mockStreamer struct {
	body   string
	err    error
	gotURL string
}

func (m *mockStreamer) Open(ctx context.Context, platform domain.Platform, mediaURL string) (*infrastructure.MediaStream, error) {
	m.gotURL = mediaURL
	if m.err != nil {
		return nil, m.err
	}
	return &infrastructure.MediaStream{Body: io.NopCloser(strings.NewReader(m.body)), ContentLength: int64(len(m.body))}, nil
}

func newTestMetadataService(providers ...*mockProvider) *MetadataService {
	list := make([]domain.MetadataProvider, 0, len(providers))
	for _, p := range providers {
		list = append(list, p)
	}
	return NewMetadataService(list, nil)
}

func TestResolve_Validation(t *testing.T) {
	svc := newTestMetadataService()

	tests := []struct {
		name    string
		url     string
		message string
	}{
		{"missing", "", "URL parameter is required."},
		{"blank", "   ", "URL parameter is required."},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "Invalid URL format."},
		{"ftp", "ftp://youtube.com/x", "Invalid URL format."},
		{"unsupported", "https://vimeo.com/123", "Unsupported platform. Supported platforms: YouTube, TikTok, Facebook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Resolve(tt.url)
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestResolve_NormalizesYouTube(t *testing.T) {
	svc := newTestMetadataService()

	target, err := svc.Resolve("https://youtube.com/shorts/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformYouTube, target.Platform)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", target.URL)

	target, err = svc.Resolve("https://vm.tiktok.com/xyz/")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformTikTok, target.Platform)
	assert.Equal(t, "https://vm.tiktok.com/xyz/", target.URL)
}

func TestGetMetadata_DispatchesToProvider(t *testing.T) {
	yt := &mockProvider{platform: domain.PlatformYouTube, metadata: &domain.VideoMetadata{ID: "dQw4w9WgXcQ"}}
	tt := &mockProvider{platform: domain.PlatformTikTok}
	svc := newTestMetadataService(yt, tt)

	target, metadata, err := svc.GetMetadata(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformYouTube, target.Platform)
	assert.Equal(t, "dQw4w9WgXcQ", metadata.ID)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", yt.gotURL)
	assert.Equal(t, 0, tt.calls)
}

func TestGetMetadata_ProviderError(t *testing.T) {
	fb := &mockProvider{platform: domain.PlatformFacebook, err: domain.NewNotFoundError("Facebook error: Video unavailable")}
	svc := newTestMetadataService(fb)

	_, _, err := svc.GetMetadata(context.Background(), "https://www.facebook.com/watch/1")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestFetch_MissingProvider(t *testing.T) {
	svc := newTestMetadataService()

	_, err := svc.Fetch(context.Background(), &Target{URL: "https://vm.tiktok.com/x", Platform: domain.PlatformTikTok})
	require.Error(t, err)
	assert.Equal(t, domain.KindUnclassified, domain.KindOf(err))
}
