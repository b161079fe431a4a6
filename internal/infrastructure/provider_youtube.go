package infrastructure

import (
	"context"

	"github.com/yourusername/vidrelay/internal/domain"
)

// YouTubeProvider implements MetadataProvider for YouTube
type YouTubeProvider struct {
	oembed *OEmbedClient
}

// NewYouTubeProvider creates a new YouTube provider
func NewYouTubeProvider(oembed *OEmbedClient) *YouTubeProvider {
	return &YouTubeProvider{oembed: oembed}
}

// Platform returns the platform this provider handles
func (p *YouTubeProvider) Platform() domain.Platform {
	return domain.PlatformYouTube
}

// Fetch looks up a YouTube video through the oEmbed service.
// The options are labels only; downloads are redirected to an external loader.
func (p *YouTubeProvider) Fetch(ctx context.Context, rawURL string) (*domain.VideoMetadata, error) {
	cleaned := domain.CleanYouTubeURL(rawURL)
	id, ok := domain.ExtractYouTubeID(cleaned)
	if !ok {
		return nil, domain.NewValidationError("Invalid YouTube URL")
	}

	info, err := p.oembed.Lookup(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	return &domain.VideoMetadata{
		ID:          id,
		Title:       orDefault(info.Title, "YouTube Video"),
		Uploader:    orDefault(info.AuthorName, "Unknown"),
		Duration:    domain.UnknownDuration,
		Thumbnail:   domain.YouTubeThumbnailURL(id),
		Description: "",
		ViewCount:   0,
		Options:     youtubeOptions(),
		Platform:    domain.PlatformYouTube,
	}, nil
}

func youtubeOptions() []domain.DownloadOption {
	return []domain.DownloadOption{
		{ID: "best", Label: "Best Quality (MP4)", Ext: "mp4", Quality: "best", HasAudio: domain.Bool(true)},
		{ID: "720p", Label: "720p HD (MP4)", Ext: "mp4", Quality: "720p", HasAudio: domain.Bool(true)},
		{ID: "480p", Label: "480p (MP4)", Ext: "mp4", Quality: "480p", HasAudio: domain.Bool(true)},
		{ID: "audio", Label: "Audio Only (MP3)", Ext: "mp3", Quality: "audio", HasAudio: domain.Bool(true)},
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
