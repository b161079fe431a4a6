package domain

import (
	"context"
	"strings"
)

// DownloadOption is one selectable download variant of a video
type DownloadOption struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Ext      string `json:"ext"`
	Quality  string `json:"quality"`
	URL      string `json:"url,omitempty"`
	HasAudio *bool  `json:"hasAudio,omitempty"`
}

// IsAudioOnly reports whether the option carries no video track
func (o DownloadOption) IsAudioOnly() bool {
	switch strings.ToLower(o.Ext) {
	case "mp3", "m4a", "aac", "ogg", "opus", "wav":
		return true
	}
	return false
}

// ContentType returns the MIME type served for the option
func (o DownloadOption) ContentType() string {
	if o.IsAudioOnly() {
		return "audio/mpeg"
	}
	return "video/mp4"
}

// VideoMetadata is the normalized description of a video returned by every provider
type VideoMetadata struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Uploader    string           `json:"uploader"`
	Duration    string           `json:"duration"`
	Thumbnail   string           `json:"thumbnail"`
	Description string           `json:"description"`
	ViewCount   int64            `json:"viewCount"`
	UploadDate  string           `json:"uploadDate,omitempty"`
	Options     []DownloadOption `json:"options"`
	Platform    Platform         `json:"platform"`
}

// Validate checks the invariants a provider must satisfy before returning metadata
func (m *VideoMetadata) Validate() error {
	if len(m.Options) == 0 {
		return NewUnclassifiedError("No download options available")
	}
	return nil
}

// FindOption returns the option with the given id
func (m *VideoMetadata) FindOption(id string) (DownloadOption, bool) {
	for _, o := range m.Options {
		if o.ID == id {
			return o, true
		}
	}
	return DownloadOption{}, false
}

// SelectOption picks the requested option, falling back to fallbackID and then
// to the first option.
func (m *VideoMetadata) SelectOption(requested, fallbackID string) (DownloadOption, bool) {
	if requested != "" {
		if o, ok := m.FindOption(requested); ok {
			return o, true
		}
	}
	if o, ok := m.FindOption(fallbackID); ok {
		return o, true
	}
	if len(m.Options) > 0 {
		return m.Options[0], true
	}
	return DownloadOption{}, false
}

// MetadataProvider fetches metadata for one platform
type MetadataProvider interface {
	// Platform returns the platform this provider handles
	Platform() Platform

	// Fetch retrieves and normalizes metadata for the given URL
	Fetch(ctx context.Context, url string) (*VideoMetadata, error)
}

// Bool returns a pointer to b
func Bool(b bool) *bool {
	return &b
}
