package model

import "strings"

// Protocol identifies a GLOBE Observer measurement protocol.
type Protocol string

// The protocols supported by the download and processing pipelines.
const (
	// MosquitoHabitatMapper covers mosquito habitat observations:
	// water sources, larvae counts, and genus identifications.
	MosquitoHabitatMapper Protocol = "mosquito_habitat_mapper"

	// LandCovers covers land cover observations: directional photos
	// and MUC classifications.
	LandCovers Protocol = "land_covers"
)

// Valid reports whether p is a protocol the pipelines know how to process.
func (p Protocol) Valid() bool {
	switch p {
	case MosquitoHabitatMapper, LandCovers:
		return true
	}
	return false
}

// Abbreviation returns the short prefix used for column names and file
// names, e.g. "mhm" for the mosquito habitat mapper protocol.
func (p Protocol) Abbreviation() string {
	switch p {
	case MosquitoHabitatMapper:
		return "mhm"
	case LandCovers:
		return "lc"
	}
	return ""
}

// Compact returns the protocol name with underscores removed. The GLOBE
// API uses this form to prefix the flattened measurement fields.
func (p Protocol) Compact() string {
	return strings.ReplaceAll(string(p), "_", "")
}

// MeasuredAtColumn returns the name of the column holding the parsed
// measurement timestamp for this protocol.
func (p Protocol) MeasuredAtColumn() string {
	return p.Compact() + "MeasuredAt"
}
