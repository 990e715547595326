// Package globe downloads GLOBE Observer observation data.
//
// Two sources are supported: the public GLOBE search API for raw
// observations, and the country-enriched ArcGIS feature layers for
// observations carrying a country column. Both return the same
// columnar table shape the cleanup pipelines expect.
//
// # Raw API download
//
//	client := globe.NewClient(httpClient, "", "")
//	t, err := client.GetAPIData(ctx, model.MosquitoHabitatMapper, globe.DownloadOptions{
//	    StartDate: "2021-01-01",
//	    EndDate:   "2021-06-01",
//	    Box:       &model.LatLonBox{MinLat: -9, MaxLat: 7, MinLon: 95, MaxLon: 142},
//	})
//
// An invalid box falls back to downloading every observation in the
// date range, with a warning.
//
// # Country-enriched download
//
//	t, err := client.GetCountryAPIData(ctx, model.LandCovers, globe.CountryDownloadOptions{
//	    Countries: []string{"Brazil"},
//	    Regions:   []string{"Africa"},
//	})
//
// The country layers are rebuilt daily from the live data, so recent
// observations can lag behind the raw API.
//
// # Dates and regions
//
// DefaultStartDate is the GLOBE Observer launch date; DefaultEndDate
// is today. Regions and RegionCountries expose the GLOBE program
// region table used to expand region selections.
package globe
