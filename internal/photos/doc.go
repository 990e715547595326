// Package photos derives download targets from cleaned GLOBE Observer
// datasets and downloads them concurrently.
//
// # Targets
//
// A target pairs a photo URL with the file it should be saved as. The
// filename encodes the observation metadata, so a photo can be traced
// back to its record without opening the CSV:
//
//	mhm_Larvae_dish or pot_37.1_-84.52_2021-01-07_26422_Aedes_2082764.png
//	lc_North_38.2_-78.4_2021-01-01_38513_2072269.png
//
// Photo cells hold one URL or several separated by semicolons. Only
// https URLs are considered; rejected and pending photo markers are
// skipped. Targets are deduplicated and sorted by filename.
//
// # Basic Usage
//
//	targets, err := photos.MosquitoTargets(cleaned, "photos", photos.MosquitoOptions{
//	    Larvae:      true,
//	    WaterSource: true,
//	    Abdomen:     true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	manager := photos.NewManager(settings, func(event photos.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	err = manager.DownloadPhotos(ctx, targets)
//
// # Concurrency
//
// The Manager downloads at most settings.MaxConcurrentDownloads photos in
// parallel. Failed downloads are retried up to settings.DownloadMaxRetries
// times with a growing cooldown. A photo that fails every retry is counted
// and reported but does not abort the remaining downloads.
//
// # Post-processing
//
// Downloaded photos can optionally be resized to fit
// settings.MaxPhotoDimension and converted to JPEG, in which case the
// .png suffix in the target filename becomes .jpg.
package photos
