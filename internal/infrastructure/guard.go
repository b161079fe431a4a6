package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/yourusername/vidrelay/internal/domain"
)

// WrapError converts any failure from an upstream call into a *domain.Error
// tagged with the platform, its message prefixed "<Platform> error: ".
func WrapError(platform domain.Platform, err error) error {
	if err == nil {
		return nil
	}

	var wrapped *domain.Error
	if errors.As(err, &wrapped) && wrapped.Platform != "" {
		// Already tagged by an inner adapter.
		return err
	}

	kind, message := classify(err)
	return &domain.Error{
		Kind:     kind,
		Platform: platform,
		Message:  fmt.Sprintf("%s error: %s", platform, message),
		Cause:    err,
	}
}

func classify(err error) (domain.ErrorKind, string) {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Kind, de.Message
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domain.KindTimeout, "request timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.KindTimeout, "request timeout"
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusNotFound, http.StatusGone:
			return domain.KindNotFound, "content not found"
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return domain.KindTimeout, "upstream timeout"
		}
		return domain.KindUnclassified, statusErr.Error()
	}

	return domain.ClassifyMessage(err.Error()), err.Error()
}

// guardedProvider applies WrapError and the metadata invariants around a provider
type guardedProvider struct {
	inner domain.MetadataProvider
}

// Guard wraps a provider so every failure it returns is platform-tagged
func Guard(p domain.MetadataProvider) domain.MetadataProvider {
	return &guardedProvider{inner: p}
}

func (g *guardedProvider) Platform() domain.Platform {
	return g.inner.Platform()
}

func (g *guardedProvider) Fetch(ctx context.Context, url string) (*domain.VideoMetadata, error) {
	metadata, err := g.inner.Fetch(ctx, url)
	if err != nil {
		return nil, WrapError(g.inner.Platform(), err)
	}
	if metadata == nil {
		return nil, WrapError(g.inner.Platform(), domain.NewUnclassifiedError("empty metadata"))
	}
	if err := metadata.Validate(); err != nil {
		return nil, WrapError(g.inner.Platform(), err)
	}
	metadata.Platform = g.inner.Platform()
	return metadata, nil
}
