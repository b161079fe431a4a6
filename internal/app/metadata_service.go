package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/vidrelay/internal/domain"
	"go.uber.org/zap"
)

// Target is a validated request URL together with its platform
type Target struct {
	URL      string
	Platform domain.Platform
}

// MetadataService classifies URLs and dispatches them to the platform provider
type MetadataService struct {
	providers map[domain.Platform]domain.MetadataProvider
	logger    *zap.Logger
}

// NewMetadataService creates a new metadata service
func NewMetadataService(providers []domain.MetadataProvider, logger *zap.Logger) *MetadataService {
	if logger == nil {
		logger = zap.NewNop()
	}
	byPlatform := make(map[domain.Platform]domain.MetadataProvider, len(providers))
	for _, p := range providers {
		byPlatform[p.Platform()] = p
	}
	return &MetadataService{
		providers: byPlatform,
		logger:    logger,
	}
}

// Resolve validates rawURL, detects its platform and normalizes YouTube links
func (s *MetadataService) Resolve(rawURL string) (*Target, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, domain.ErrMissingURL
	}
	if !domain.IsValidURL(rawURL) {
		return nil, domain.ErrInvalidURL
	}

	platform, ok := domain.ExtractPlatform(rawURL)
	if !ok {
		return nil, domain.UnsupportedPlatformError()
	}

	target := &Target{URL: rawURL, Platform: platform}
	if platform == domain.PlatformYouTube {
		target.URL = domain.CleanYouTubeURL(rawURL)
	}
	return target, nil
}

// Fetch runs the provider for target
func (s *MetadataService) Fetch(ctx context.Context, target *Target) (*domain.VideoMetadata, error) {
	provider, ok := s.providers[target.Platform]
	if !ok {
		return nil, domain.NewUnclassifiedError(fmt.Sprintf("No provider configured for %s", target.Platform))
	}

	metadata, err := provider.Fetch(ctx, target.URL)
	if err != nil {
		s.logger.Error("Metadata lookup failed",
			zap.String("url", target.URL),
			zap.String("platform", string(target.Platform)),
			zap.String("kind", string(domain.KindOf(err))),
			zap.Error(err))
		return nil, err
	}

	s.logger.Debug("Metadata resolved",
		zap.String("url", target.URL),
		zap.String("platform", string(target.Platform)),
		zap.String("id", metadata.ID),
		zap.Int("options", len(metadata.Options)))
	return metadata, nil
}

// GetMetadata resolves rawURL and fetches its metadata
func (s *MetadataService) GetMetadata(ctx context.Context, rawURL string) (*Target, *domain.VideoMetadata, error) {
	target, err := s.Resolve(rawURL)
	if err != nil {
		return nil, nil, err
	}
	metadata, err := s.Fetch(ctx, target)
	return target, metadata, err
}
