// Package config provides JSON settings for the GLOBE Observer download
// tools.
//
// Settings cover the GLOBE and ArcGIS endpoints, the HTTP client
// (User-Agent, timeout), photo download behavior (concurrency, retries,
// skip-existing) and photo post-processing (resize bound, JPEG
// conversion and quality).
//
// DefaultSettings works against the public GLOBE endpoints without any
// file:
//
//	settings := config.DefaultSettings()
//
// Load reads a settings file, falling back to the defaults when the
// file does not exist:
//
//	settings, err := config.Load("globe.json")
//
// Save writes the current settings back out, pretty-printed:
//
//	settings.MaxConcurrentDownloads = 4
//	err := settings.Save("globe.json")
package config
