package model

import "path/filepath"

// Target is a single photo scheduled for download: where it lives on
// the GLOBE servers and where it should end up on disk.
type Target struct {
	// URL is the source address of the photo.
	URL string

	// Directory is the destination directory. It is created on demand.
	Directory string

	// Filename is the destination file name, already sanitized and
	// carrying the observation metadata the photo was named after.
	Filename string
}

// Path returns the full destination path of the photo.
func (t Target) Path() string {
	return filepath.Join(t.Directory, t.Filename)
}
