package app

import (
	"context"
	"net/url"
	"strings"

	"github.com/yourusername/vidrelay/internal/domain"
	"github.com/yourusername/vidrelay/internal/infrastructure"
	"go.uber.org/zap"
)

// DownloadPlan describes how a download request is answered: either a redirect
// to an external loader or a stream of the selected option.
type DownloadPlan struct {
	Target      *Target
	RedirectURL string
	Option      domain.DownloadOption
	Filename    string
}

// IsRedirect reports whether the plan sends the client elsewhere
func (p *DownloadPlan) IsRedirect() bool {
	return p.RedirectURL != ""
}

// ContentDisposition returns the attachment header value for a stream plan
func (p *DownloadPlan) ContentDisposition() string {
	return `attachment; filename="` + p.Filename + `"`
}

// MediaOpener opens a media byte stream
type MediaOpener interface {
	Open(ctx context.Context, platform domain.Platform, mediaURL string) (*infrastructure.MediaStream, error)
}

// DownloadService decides how each platform is downloaded
type DownloadService struct {
	metadata *MetadataService
	streamer MediaOpener
	redirect *domain.RedirectConfig
	logger   *zap.Logger
}

// NewDownloadService creates a new download service
func NewDownloadService(metadata *MetadataService, streamer MediaOpener, redirect *domain.RedirectConfig, logger *zap.Logger) *DownloadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownloadService{
		metadata: metadata,
		streamer: streamer,
		redirect: redirect,
		logger:   logger,
	}
}

// Plan validates the request and builds its download plan. YouTube and
// Facebook never touch metadata; TikTok re-fetches it to get fresh links.
func (s *DownloadService) Plan(ctx context.Context, target *Target, format string) (*DownloadPlan, error) {
	switch target.Platform {
	case domain.PlatformYouTube:
		return &DownloadPlan{Target: target, RedirectURL: expandTemplate(s.redirect.YouTubeTemplate, target.URL, format)}, nil
	case domain.PlatformFacebook:
		return &DownloadPlan{Target: target, RedirectURL: expandTemplate(s.redirect.FacebookTemplate, target.URL, format)}, nil
	}

	metadata, err := s.metadata.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	option, ok := metadata.SelectOption(format, infrastructure.OptionNoWatermark)
	if !ok || option.URL == "" {
		s.logger.Warn("No download URL for option",
			zap.String("url", target.URL),
			zap.String("platform", string(target.Platform)),
			zap.String("format", format))
		return nil, domain.ErrNoDownloadURL
	}

	return &DownloadPlan{
		Target:   target,
		Option:   option,
		Filename: SanitizeFilename(metadata.Title) + "." + option.Ext,
	}, nil
}

// Open starts the upstream byte stream for a stream plan
func (s *DownloadService) Open(ctx context.Context, plan *DownloadPlan) (*infrastructure.MediaStream, error) {
	stream, err := s.streamer.Open(ctx, plan.Target.Platform, plan.Option.URL)
	if err != nil {
		s.logger.Error("Failed to open media stream",
			zap.String("url", plan.Target.URL),
			zap.String("platform", string(plan.Target.Platform)),
			zap.String("option", plan.Option.ID),
			zap.Error(err))
		return nil, err
	}
	return stream, nil
}

// expandTemplate substitutes the escaped video URL and format into a loader URL
func expandTemplate(template, videoURL, format string) string {
	if format == "" {
		format = "mp4"
	}
	r := strings.NewReplacer(
		"{url}", url.QueryEscape(videoURL),
		"{format}", url.QueryEscape(format),
	)
	return r.Replace(template)
}
