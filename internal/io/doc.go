// Package ioutils provides file system and image helpers for the photo
// downloader.
//
// # File Operations
//
//	// Write photo bytes to a file
//	err := ioutils.WriteFile(ctx, "photos/mhm_Larvae_....png", data)
//
//	// Ensure the photo directory exists
//	err := ioutils.EnsureDir("photos")
//
// # Filename Sanitization
//
// Photo names are assembled from observation fields, which can contain
// anything the observer typed. RemoveBadCharacters strips the characters
// that are invalid in file names:
//
//	safe := ioutils.RemoveBadCharacters(`pond/ditch: north?`) // "pondditch north"
//
// # Image Processing
//
// The ImageService bounds photo dimensions and converts formats:
//
//	svc := ioutils.NewImageService()
//
//	// Bound to 1000px on the longer side
//	resized, _ := svc.ResizeImage(ctx, photoData, 1000)
//
//	// Convert to JPEG at quality 90
//	jpegData, _ := svc.ConvertToJPEG(ctx, pngData, 90)
package ioutils
