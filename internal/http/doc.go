// Package http provides the HTTP client shared by the GLOBE API client
// and the photo downloader.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Streaming file downloads
//
// # Basic Usage
//
//	client := http.NewClient("", 0)
//
//	// Fetch an API response
//	body, err := client.Get(ctx, apiURL)
//
//	// Stream a photo to disk
//	err = client.DownloadFile(ctx, photoURL, "photos/photo.png")
package http
