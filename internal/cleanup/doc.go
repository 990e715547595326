// Package cleanup contains the shared transforms of the GLOBE data
// cleanup pipeline. The protocol packages compose them in a fixed
// order; each transform also works on its own.
//
// # Removing homogenous columns
//
// RemoveHomogenousColumns drops columns where every value is the same.
// Raw mosquito habitat mapper data loses its protocol, ExtraData,
// MosquitoEggCount and DataSource columns this way; raw land cover
// data loses protocol.
//
// # Renaming coordinate columns
//
// The GLOBE API reports each observation's Military Grid Reference
// System (MGRS) coordinates in the latitude and longitude fields,
// while the GPS coordinates are stored in the protocol's
// MeasurementLatitude and MeasurementLongitude fields. To avoid
// confusion, RenameLatLonColumns renames the GPS pair to Latitude and
// Longitude and the MGRS pair to MGRSLatitude and MGRSLongitude.
//
// # Protocol abbreviation
//
// ReplaceColumnPrefix renames every column to
// "{protocolAbbreviation}_{columnName}" ("mhm_" for mosquito habitat
// mapper, "lc_" for land cover), which keeps cross-protocol analysis
// sane. The mhm and lc packages each export a CleanupColumnPrefix
// that applies their own abbreviation.
//
// # Standardizing no-data values
//
// The raw data marks missing values inconsistently: nulls, "null",
// empty cells, "NaN", "nan". StandardizeNullValues converts all of
// them to one value, normally the table null.
//
// # Rounding
//
// RoundColumns rounds latitude and longitude columns to 5 decimal
// places (about a meter, matching what the app's GPS fix can deliver)
// and converts all other numeric columns to integers with -9999 as the
// no-data value, per Cook et al (2018).
package cleanup
