package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Settings are the knobs for GLOBE API access and photo downloads.
type Settings struct {
	// API settings
	APIBaseURL         string `json:"api_base_url"`
	ArcGISContentURL   string `json:"arcgis_content_url"`
	UserAgent          string `json:"user_agent"`
	HTTPTimeoutSeconds int    `json:"http_timeout_seconds"`

	// Photo download settings
	MaxConcurrentDownloads int     `json:"max_concurrent_downloads"`
	DownloadMaxRetries     int     `json:"download_max_retries"`
	DownloadRetryCooldown  float64 `json:"download_retry_cooldown"`
	SkipExistingPhotos     bool    `json:"skip_existing_photos"`

	// Photo post-processing
	ResizePhotos        bool `json:"resize_photos"`
	MaxPhotoDimension   int  `json:"max_photo_dimension"`
	ConvertPhotosToJPEG bool `json:"convert_photos_to_jpeg"`
	JPEGQuality         int  `json:"jpeg_quality"`
}

// DefaultSettings is the configuration used when no file overrides it.
func DefaultSettings() *Settings {
	return &Settings{
		APIBaseURL:         "https://api.globe.gov/search/v1",
		ArcGISContentURL:   "https://www.arcgis.com/sharing/rest/content/items",
		UserAgent:          "globe-observer-go",
		HTTPTimeoutSeconds: 60,

		MaxConcurrentDownloads: 10,
		DownloadMaxRetries:     7,
		DownloadRetryCooldown:  0.5,
		SkipExistingPhotos:     true,

		ResizePhotos:        false,
		MaxPhotoDimension:   1000,
		ConvertPhotosToJPEG: false,
		JPEGQuality:         95,
	}
}

// Load parses a settings file, falling back to the defaults when the
// file does not exist. Fields absent from the file keep their defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes the settings as indented JSON, creating parent
// directories as needed.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// HTTPTimeout converts the configured timeout to a time.Duration.
func (s *Settings) HTTPTimeout() time.Duration {
	return time.Duration(s.HTTPTimeoutSeconds) * time.Second
}
