package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/vidrelay/internal/domain"
)

func newOEmbedServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*OEmbedClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)
	client := NewOEmbedClient(server.URL+"/embed", NewHTTPClient(domain.DefaultBrowserUserAgent, 0), time.Second)
	return client, server
}

func newTikTokServer(t *testing.T, body string) (*TikTokProvider, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	provider := NewTikTokProvider(server.URL+"/api/", domain.DefaultBrowserUserAgent, NewHTTPClient("", 0), time.Second)
	return provider, server
}

func TestYouTubeProvider_Fetch(t *testing.T) {
	var gotURL string
	oembed, _ := newOEmbedServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		json.NewEncoder(w).Encode(map[string]string{
			"title":       "Never Gonna Give You Up",
			"author_name": "Rick Astley",
		})
	})

	metadata, err := Guard(NewYouTubeProvider(oembed)).Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", gotURL)
	assert.Equal(t, "dQw4w9WgXcQ", metadata.ID)
	assert.Equal(t, "Never Gonna Give You Up", metadata.Title)
	assert.Equal(t, "Rick Astley", metadata.Uploader)
	assert.Equal(t, "Unknown", metadata.Duration)
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", metadata.Thumbnail)
	assert.Equal(t, domain.PlatformYouTube, metadata.Platform)

	require.Len(t, metadata.Options, 4)
	ids := []string{}
	for _, o := range metadata.Options {
		ids = append(ids, o.ID)
		assert.Empty(t, o.URL)
	}
	assert.Equal(t, []string{"best", "720p", "480p", "audio"}, ids)
}

func TestYouTubeProvider_InvalidURL(t *testing.T) {
	called := false
	oembed, _ := newOEmbedServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := Guard(NewYouTubeProvider(oembed)).Fetch(context.Background(), "https://www.youtube.com/channel/UC123")
	require.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, "YouTube error: Invalid YouTube URL", err.Error())
}

func TestYouTubeProvider_UpstreamErrorField(t *testing.T) {
	oembed, _ := newOEmbedServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"404 Not Found"}`))
	})

	_, err := Guard(NewYouTubeProvider(oembed)).Fetch(context.Background(), "https://youtube.com/watch?v=dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.True(t, strings.HasPrefix(err.Error(), "YouTube error: "))
}

func TestYouTubeProvider_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	oembed := NewOEmbedClient(server.URL, NewHTTPClient("", 0), 50*time.Millisecond)
	_, err := Guard(NewYouTubeProvider(oembed)).Fetch(context.Background(), "https://youtube.com/watch?v=dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Equal(t, domain.KindTimeout, domain.KindOf(err))
	assert.Equal(t, http.StatusGatewayTimeout, domain.StatusFor(err))
}

func TestYouTubeProvider_MalformedResponse(t *testing.T) {
	oembed, _ := newOEmbedServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>nope</html>`))
	})

	_, err := Guard(NewYouTubeProvider(oembed)).Fetch(context.Background(), "https://youtube.com/watch?v=dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnclassified, domain.KindOf(err))
}

func TestFacebookProvider_Fetch(t *testing.T) {
	var gotURL string
	oembed, _ := newOEmbedServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		w.Write([]byte(`{"title":"Cat video","author_name":"Cats","thumbnail_url":"https://scontent/thumb.jpg"}`))
	})

	raw := "https://www.facebook.com/watch/12345"
	metadata, err := Guard(NewFacebookProvider(oembed)).Fetch(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, raw, gotURL)
	assert.Equal(t, "12345", metadata.ID)
	assert.Equal(t, "Cat video", metadata.Title)
	assert.Equal(t, "https://scontent/thumb.jpg", metadata.Thumbnail)
	assert.Equal(t, domain.PlatformFacebook, metadata.Platform)
	require.Len(t, metadata.Options, 4)
	assert.Equal(t, "best", metadata.Options[0].ID)
	assert.Equal(t, "audio", metadata.Options[3].ID)
}

func TestFacebookProvider_TimestampID(t *testing.T) {
	oembed, _ := newOEmbedServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"Cat video"}`))
	})

	provider := NewFacebookProvider(oembed)
	provider.now = func() time.Time { return time.UnixMilli(1700000000123) }

	metadata, err := provider.Fetch(context.Background(), "https://fb.watch/abc123/")
	require.NoError(t, err)
	assert.Equal(t, "fb_1700000000123", metadata.ID)
	assert.Equal(t, "Facebook User", metadata.Uploader)
}

func TestFacebookProvider_ErrorField(t *testing.T) {
	oembed, _ := newOEmbedServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"no matching providers found for this url"}`))
	})

	_, err := Guard(NewFacebookProvider(oembed)).Fetch(context.Background(), "https://facebook.com/video/1")
	require.Error(t, err)
	assert.Equal(t, "Facebook error: no matching providers found for this url", err.Error())
	assert.Equal(t, domain.KindUnclassified, domain.KindOf(err))
}

func TestTikTokProvider_Fetch(t *testing.T) {
	provider, _ := newTikTokServer(t, `{
		"code": 0, "msg": "success",
		"data": {
			"id": "7234567890", "title": "dance", "cover": "https://p16/cover.jpg",
			"duration": 65, "play": "https://v16/play.mp4", "wmplay": "/video/wm.mp4",
			"play_count": 1200, "create_time": 1700000000,
			"author": {"unique_id": "dancer", "nickname": "Dancer"}
		}
	}`)

	metadata, err := Guard(provider).Fetch(context.Background(), "https://vm.tiktok.com/xyz")
	require.NoError(t, err)

	assert.Equal(t, "7234567890", metadata.ID)
	assert.Equal(t, "dance", metadata.Title)
	assert.Equal(t, "Dancer", metadata.Uploader)
	assert.Equal(t, "1:05", metadata.Duration)
	assert.Equal(t, int64(1200), metadata.ViewCount)
	assert.Equal(t, "2023-11-14", metadata.UploadDate)
	require.Len(t, metadata.Options, 2)
	assert.Equal(t, OptionNoWatermark, metadata.Options[0].ID)
	assert.Equal(t, "https://v16/play.mp4", metadata.Options[0].URL)
	assert.Equal(t, OptionWatermark, metadata.Options[1].ID)
	assert.True(t, strings.HasSuffix(metadata.Options[1].URL, "/video/wm.mp4"))
	assert.True(t, strings.HasPrefix(metadata.Options[1].URL, "http://"))
}

func TestTikTokProvider_SendsJSON(t *testing.T) {
	var body map[string]interface{}
	var contentType, userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		userAgent = r.Header.Get("User-Agent")
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"code":0,"data":{"id":"1","play":"https://v16/p.mp4"}}`))
	}))
	defer server.Close()

	provider := NewTikTokProvider(server.URL, "test-agent", NewHTTPClient("", 0), time.Second)
	_, err := provider.Fetch(context.Background(), "https://www.tiktok.com/@u/video/1")
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "test-agent", userAgent)
	assert.Equal(t, "https://www.tiktok.com/@u/video/1", body["url"])
}

func TestTikTokProvider_NoStreams(t *testing.T) {
	provider, _ := newTikTokServer(t, `{"code":0,"data":{"id":"1","title":"x","duration":3}}`)

	_, err := Guard(provider).Fetch(context.Background(), "https://vm.tiktok.com/xyz")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnclassified, domain.KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, domain.StatusFor(err))
	assert.Equal(t, "TikTok error: No downloadable streams returned", err.Error())
}

func TestTikTokProvider_ServiceFailure(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		message  string
		expected domain.ErrorKind
	}{
		{"code with message", `{"code":-1,"msg":"Url parsing is failed! Please check url."}`, "TikTok error: Url parsing is failed! Please check url.", domain.KindUnclassified},
		{"code without message", `{"code":-1}`, "TikTok error: Video not found", domain.KindNotFound},
		{"missing data", `{"code":0,"msg":"success"}`, "TikTok error: Video not found", domain.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, _ := newTikTokServer(t, tt.body)
			_, err := Guard(provider).Fetch(context.Background(), "https://vm.tiktok.com/xyz")
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, tt.expected, domain.KindOf(err))
		})
	}
}

func TestTikTokProvider_MissingDurationIsUnknown(t *testing.T) {
	provider, _ := newTikTokServer(t, `{"code":0,"data":{"id":"1","wmplay":"https://v16/wm.mp4"}}`)

	metadata, err := provider.Fetch(context.Background(), "https://vm.tiktok.com/xyz")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", metadata.Duration)
	assert.Equal(t, "Unknown", metadata.Uploader)
	require.Len(t, metadata.Options, 1)
	assert.Equal(t, OptionWatermark, metadata.Options[0].ID)
}
