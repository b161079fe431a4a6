package infrastructure

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yourusername/vidrelay/internal/domain"
)

// FacebookProvider implements MetadataProvider for Facebook
type FacebookProvider struct {
	oembed *OEmbedClient
	now    func() time.Time
}

// NewFacebookProvider creates a new Facebook provider
func NewFacebookProvider(oembed *OEmbedClient) *FacebookProvider {
	return &FacebookProvider{oembed: oembed, now: time.Now}
}

// Platform returns the platform this provider handles
func (p *FacebookProvider) Platform() domain.Platform {
	return domain.PlatformFacebook
}

// Fetch looks up a Facebook video through the oEmbed service
func (p *FacebookProvider) Fetch(ctx context.Context, rawURL string) (*domain.VideoMetadata, error) {
	info, err := p.oembed.Lookup(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return &domain.VideoMetadata{
		ID:          p.videoID(rawURL),
		Title:       orDefault(info.Title, "Facebook Video"),
		Uploader:    orDefault(info.AuthorName, "Facebook User"),
		Duration:    domain.UnknownDuration,
		Thumbnail:   info.ThumbnailURL,
		Description: "",
		ViewCount:   0,
		Options:     facebookOptions(),
		Platform:    domain.PlatformFacebook,
	}, nil
}

// videoID returns the last path segment, or a timestamp id when it is empty
func (p *FacebookProvider) videoID(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		segments := strings.Split(u.Path, "/")
		if last := segments[len(segments)-1]; last != "" {
			return last
		}
	}
	return fmt.Sprintf("fb_%d", p.now().UnixMilli())
}

func facebookOptions() []domain.DownloadOption {
	return []domain.DownloadOption{
		{ID: "best", Label: "Best Quality (MP4)", Ext: "mp4", Quality: "best", HasAudio: domain.Bool(true)},
		{ID: "hd", Label: "HD (MP4)", Ext: "mp4", Quality: "hd", HasAudio: domain.Bool(true)},
		{ID: "sd", Label: "SD (MP4)", Ext: "mp4", Quality: "sd", HasAudio: domain.Bool(true)},
		{ID: "audio", Label: "Audio Only (MP3)", Ext: "mp3", Quality: "audio", HasAudio: domain.Bool(true)},
	}
}
