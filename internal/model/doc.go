// Package model defines the core data structures shared by the
// download and processing pipelines.
//
// # Protocol
//
// Protocol names a GLOBE Observer measurement protocol and derives the
// identifiers the rest of the toolkit builds from it:
//
//	p := model.MosquitoHabitatMapper
//	fmt.Println(p.Abbreviation())     // "mhm"
//	fmt.Println(p.MeasuredAtColumn()) // "mosquitohabitatmapperMeasuredAt"
//
// # LatLonBox
//
// LatLonBox bounds a download geographically. Boxes arrive from the
// command line as "min lat, min lon, max lat, max lon":
//
//	box, err := model.ParseLatLonBox("-9, 95, 7, 142")
//	if box.Valid() {
//	    // pass to globe.GetAPIData
//	}
//
// # Target
//
// Target pairs a photo URL with its destination on disk. Targets are
// produced by the photos package and consumed by its download manager:
//
//	t := model.Target{URL: url, Directory: "photos", Filename: name}
//	fmt.Println(t.Path()) // "photos/<name>"
package model
