package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/yourusername/vidrelay/internal/domain"
)

// TikTok option ids; the download endpoint falls back to OptionNoWatermark
const (
	OptionNoWatermark = "no-watermark"
	OptionWatermark   = "watermark"
)

// tiktokResponse mirrors the resolver API envelope
type tiktokResponse struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data *tiktokData `json:"data"`
}

type tiktokData struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Cover      string   `json:"cover"`
	Duration   *float64 `json:"duration"`
	Play       string   `json:"play"`
	HDPlay     string   `json:"hdplay"`
	WMPlay     string   `json:"wmplay"`
	PlayCount  int64    `json:"play_count"`
	CreateTime int64    `json:"create_time"`
	Author     struct {
		UniqueID string `json:"unique_id"`
		Nickname string `json:"nickname"`
	} `json:"author"`
}

// TikTokProvider implements MetadataProvider for TikTok using a resolver API
// that returns direct playback links.
type TikTokProvider struct {
	apiURL    string
	userAgent string
	client    *http.Client
	timeout   time.Duration
}

// NewTikTokProvider creates a new TikTok provider
func NewTikTokProvider(apiURL, userAgent string, client *http.Client, timeout time.Duration) *TikTokProvider {
	return &TikTokProvider{
		apiURL:    apiURL,
		userAgent: userAgent,
		client:    client,
		timeout:   timeout,
	}
}

// Platform returns the platform this provider handles
func (p *TikTokProvider) Platform() domain.Platform {
	return domain.PlatformTikTok
}

// Fetch resolves a TikTok URL into metadata with playable download links
func (p *TikTokProvider) Fetch(ctx context.Context, rawURL string) (*domain.VideoMetadata, error) {
	payload, err := json.Marshal(map[string]interface{}{"url": rawURL, "hd": 1})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, p.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	var resp tiktokResponse
	if err := doJSON(ctx, p.client, req, p.timeout, &resp); err != nil {
		return nil, err
	}

	if resp.Code != 0 || resp.Data == nil {
		msg := resp.Msg
		if msg == "" || resp.Code == 0 {
			msg = "Video not found"
		}
		return nil, domain.NewError(domain.ClassifyMessage(msg), msg)
	}

	data := resp.Data
	options := p.buildOptions(data)
	if len(options) == 0 {
		return nil, domain.NewUnclassifiedError("No downloadable streams returned")
	}

	duration := math.NaN()
	if data.Duration != nil {
		duration = *data.Duration
	}

	metadata := &domain.VideoMetadata{
		ID:          data.ID,
		Title:       orDefault(data.Title, "TikTok Video"),
		Uploader:    orDefault(data.Author.Nickname, orDefault(data.Author.UniqueID, "Unknown")),
		Duration:    domain.FormatDuration(duration),
		Thumbnail:   p.absolute(data.Cover),
		Description: data.Title,
		ViewCount:   data.PlayCount,
		Options:     options,
		Platform:    domain.PlatformTikTok,
	}
	if data.CreateTime > 0 {
		metadata.UploadDate = time.Unix(data.CreateTime, 0).UTC().Format("2006-01-02")
	}
	return metadata, nil
}

func (p *TikTokProvider) buildOptions(data *tiktokData) []domain.DownloadOption {
	var options []domain.DownloadOption

	play := data.Play
	if play == "" {
		play = data.HDPlay
	}
	if play != "" {
		options = append(options, domain.DownloadOption{
			ID:       OptionNoWatermark,
			Label:    "No Watermark (MP4)",
			Ext:      "mp4",
			Quality:  "HD",
			URL:      p.absolute(play),
			HasAudio: domain.Bool(true),
		})
	}
	if data.WMPlay != "" {
		options = append(options, domain.DownloadOption{
			ID:       OptionWatermark,
			Label:    "With Watermark (MP4)",
			Ext:      "mp4",
			Quality:  "SD",
			URL:      p.absolute(data.WMPlay),
			HasAudio: domain.Bool(true),
		})
	}
	return options
}

// absolute resolves links the resolver returns relative to its own host
func (p *TikTokProvider) absolute(link string) string {
	if link == "" {
		return ""
	}
	ref, err := url.Parse(link)
	if err != nil || ref.IsAbs() {
		return link
	}
	base, err := url.Parse(p.apiURL)
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}
