// Package ioutils provides file system utilities for the GLOBE
// download tools.
package ioutils

import (
	"context"
	"os"
	"regexp"
)

var badFileNameChars = regexp.MustCompile(`[<>:?"/\\|*]`)

// WriteFile writes data to a file with mode 0644, truncating any
// existing file at the path. The context is reserved for future use;
// the write itself is not interruptible.
func WriteFile(ctx context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// RemoveBadCharacters strips characters that are invalid in file names.
//
// Photo file names are assembled from observation fields like water
// source descriptions and genus names, which can contain anything the
// observer typed. The characters < > : ? " / \ | * are removed rather
// than replaced so the remaining name stays compact.
//
// Example:
//
//	RemoveBadCharacters(`<bad-/test|"\filename:?>*`) // Returns "bad-testfilename"
func RemoveBadCharacters(name string) string {
	return badFileNameChars.ReplaceAllString(name, "")
}

// EnsureDir creates a directory and any missing parents with mode 0755.
// An existing directory is not an error.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
