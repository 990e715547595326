// Package filtering removes low quality rows from observation tables.
//
// # Invalid coordinates
//
// Certain entries in the GLOBE database carry latitudes and longitudes
// that do not exist. [FilterInvalidCoords] drops them.
//
// # Duplicates
//
// Trainings and similar mass events often record the same observation
// many times over, which hurts data quality. [FilterDuplicates] drops
// groups of entries that share the same values in a chosen set of
// columns, such as MGRS latitude, MGRS longitude, measured date and
// protocol specific attributes. Low et al.
// (https://agupubs.onlinelibrary.wiley.com/doi/10.1029/2021GH000436)
// remove mosquito habitat mapper duplicates by groups larger than 10
// sharing MGRS coordinates, water source and site name.
//
// # Poor geolocational data
//
// Geolocational data is not always accurate.
// [FilterPoorGeolocationalData] runs a relatively naive check: entries
// whose MGRS coordinates match the GPS coordinates, or whose GPS
// coordinates are whole numbers, are considered poor quality.
package filtering
