package model

import (
	"fmt"
	"strconv"
	"strings"
)

// LatLonBox is a geographic bounding box in decimal degrees. Latitudes
// grow northwards and longitudes grow eastwards, so MinLat/MinLon name
// the southwest corner and MaxLat/MaxLon the northeast corner.
type LatLonBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// GlobalBox returns the box spanning the entire globe. It is the
// default region for downloads when no box or countries are given.
func GlobalBox() LatLonBox {
	return LatLonBox{MinLat: -90, MaxLat: 90, MinLon: -180, MaxLon: 180}
}

// Valid reports whether the box describes a real region: each minimum
// strictly below its maximum and all four edges within the valid
// coordinate ranges.
func (b LatLonBox) Valid() bool {
	return b.MinLat < b.MaxLat &&
		b.MaxLat <= 90 && b.MinLat >= -90 &&
		b.MinLon < b.MaxLon &&
		b.MaxLon <= 180 && b.MinLon >= -180
}

// Contains reports whether the coordinate falls inside the box,
// boundary included.
func (b LatLonBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// ParseLatLonBox parses a box from its command line form, four
// comma-separated decimal degrees in the order
// "min lat, min lon, max lat, max lon".
func ParseLatLonBox(s string) (LatLonBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return LatLonBox{}, fmt.Errorf("latlon box %q: want 4 comma-separated values, got %d", s, len(parts))
	}

	coords := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return LatLonBox{}, fmt.Errorf("latlon box %q: %w", s, err)
		}
		coords[i] = v
	}

	return LatLonBox{
		MinLat: coords[0],
		MinLon: coords[1],
		MaxLat: coords[2],
		MaxLon: coords[3],
	}, nil
}
