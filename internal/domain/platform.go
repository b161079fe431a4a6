package domain

import (
	"net/url"
	"strings"
)

// Platform represents a supported video hosting platform
type Platform string

const (
	PlatformYouTube  Platform = "YouTube"
	PlatformTikTok   Platform = "TikTok"
	PlatformFacebook Platform = "Facebook"
)

type platformDomains struct {
	platform Platform
	domains  []string
}

// platformTable is matched in order; the first entry whose domain appears in the
// hostname wins.
var platformTable = []platformDomains{
	{platform: PlatformYouTube, domains: []string{"youtube.com", "youtu.be"}},
	{platform: PlatformTikTok, domains: []string{"tiktok.com"}},
	{platform: PlatformFacebook, domains: []string{"facebook.com", "fb.watch", "fb.com"}},
}

// SupportedPlatforms returns the supported platforms in lookup order
func SupportedPlatforms() []Platform {
	platforms := make([]Platform, 0, len(platformTable))
	for _, entry := range platformTable {
		platforms = append(platforms, entry.platform)
	}
	return platforms
}

// SupportedPlatformNames returns the supported platform names joined for display
func SupportedPlatformNames() string {
	names := make([]string, 0, len(platformTable))
	for _, p := range SupportedPlatforms() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

// IsValidURL reports whether s is an absolute http or https URL
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// ExtractPlatform detects the platform from a URL's hostname
func ExtractPlatform(rawURL string) (Platform, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}

	for _, entry := range platformTable {
		for _, d := range entry.domains {
			if strings.Contains(host, d) {
				return entry.platform, true
			}
		}
	}
	return "", false
}
