package domain

import (
	"net/url"
	"strings"
)

const youtubeWatchURL = "https://www.youtube.com/watch?v="

// CleanYouTubeURL rewrites short links, shorts and watch URLs into the canonical
// watch form. URLs it cannot read an ID from are returned unchanged.
func CleanYouTubeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	host := strings.ToLower(u.Hostname())
	var id string

	switch {
	case strings.Contains(host, "youtu.be") || strings.Contains(u.Path, "/shorts/"):
		for _, segment := range strings.Split(u.Path, "/") {
			if len(segment) == 10 || len(segment) == 11 {
				id = segment
				break
			}
		}
	case strings.Contains(host, "youtube.com"):
		id = u.Query().Get("v")
	}

	if id == "" {
		return rawURL
	}
	return youtubeWatchURL + id
}

// ExtractYouTubeID returns the v query parameter of a cleaned watch URL
func ExtractYouTubeID(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	id := u.Query().Get("v")
	if id == "" {
		return "", false
	}
	return id, true
}

// YouTubeThumbnailURL returns the CDN thumbnail for a video ID
func YouTubeThumbnailURL(id string) string {
	return "https://i.ytimg.com/vi/" + url.PathEscape(id) + "/hqdefault.jpg"
}
