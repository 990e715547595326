package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Default client configuration, used when the caller passes zero values
// to NewClient.
const (
	DefaultUserAgent = "globe-observer-go"
	DefaultTimeout   = 60 * time.Second
)

// Client is the HTTP layer shared by the GLOBE API clients and the
// photo downloader: one place for the User-Agent header, the request
// timeout, and response status handling.
//
// Example usage:
//
//	client := NewClient("", 0)
//
//	// Fetch an API response body
//	body, err := client.Get(ctx, "https://api.globe.gov/search/v1/measurement/...")
//
//	// Stream a photo to disk
//	err = client.DownloadFile(ctx, photoURL, "photos/mhm_Larvae_....png")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client. An empty userAgent or a
// non-positive timeout falls back to the package defaults.
func NewClient(userAgent string, timeout time.Duration) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// get issues a GET request and hands back the open response body, which
// the caller owns. Responses other than 200 OK are an error.
func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected response status %s", resp.Status)
	}
	return resp.Body, nil
}

// Get fetches a URL and returns the response body. Used for GLOBE API
// and ArcGIS requests, and for photos that are post-processed in memory
// before they reach disk.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

// DownloadFile streams a URL to a file, avoiding an in-memory copy of
// the photo. The destination is created, or truncated when it already
// exists; nothing is written for failed requests.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}

	_, err = io.Copy(file, body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return err
}
