package main

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// APIError is a {success:false} response from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// healthInfo mirrors the /api/health body
type healthInfo struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	Timestamp   string   `json:"timestamp"`
	Environment string   `json:"environment"`
	Platforms   []string `json:"platforms"`
}

// Client talks to a VidRelay server
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL. Redirects are not followed so the
// caller can report the loader URL for YouTube and Facebook downloads.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Minute,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *Client) get(path string, query url.Values) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.http.Get(target)
}

// getData fetches path and decodes the data field of the envelope into out
func (c *Client) getData(path string, query url.Values, out interface{}) error {
	resp, err := c.get(path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeEnvelope(resp, out)
}

func decodeEnvelope(resp *http.Response, out interface{}) error {
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("unexpected response (HTTP %d): %w", resp.StatusCode, err)
	}
	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// Health returns the server's health response
func (c *Client) Health() (*healthInfo, error) {
	resp, err := c.get("/api/health", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info healthInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DownloadResult describes where a download went
type DownloadResult struct {
	RedirectURL string
	Path        string
	Bytes       int64
}

// Download requests videoURL. Streamed responses are written under output,
// which may be a file path, a directory, or empty for the working directory.
func (c *Client) Download(videoURL, format, key, output string) (*DownloadResult, error) {
	query := url.Values{"url": {videoURL}}
	if format != "" {
		query.Set("format", format)
	}
	if key != "" {
		query.Set("key", key)
	}

	resp, err := c.get("/api/download", query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return &DownloadResult{RedirectURL: resp.Header.Get("Location")}, nil
	case resp.StatusCode != http.StatusOK:
		if err := decodeEnvelope(resp, nil); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	path := outputPath(output, attachmentName(resp.Header.Get("Content-Disposition")))
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	n, err := io.Copy(file, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download interrupted after %d bytes: %w", n, err)
	}
	return &DownloadResult{Path: path, Bytes: n}, nil
}

func attachmentName(disposition string) string {
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil || params["filename"] == "" {
		return "video.mp4"
	}
	return filepath.Base(params["filename"])
}

func outputPath(output, name string) string {
	if output == "" {
		return name
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, name)
	}
	return output
}
