package filtering

import (
	"fmt"
	"math"

	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

// FilterInvalidCoords returns the rows whose coordinates lie within the
// latitude range of [-90, 90] and longitude range of [-180, 180]. With
// inclusive false the bounds themselves are excluded, since coordinates
// sitting exactly on them do not work with certain GIS software and
// projections.
func FilterInvalidCoords(t *table.Table, latitudeCol, longitudeCol string, inclusive bool) (*table.Table, error) {
	for _, column := range []string{latitudeCol, longitudeCol} {
		if !t.HasColumn(column) {
			return nil, fmt.Errorf("could not filter coordinates: no %q column", column)
		}
	}
	latitudes := t.Column(latitudeCol)
	longitudes := t.Column(longitudeCol)
	return t.FilterRows(func(row int) bool {
		lat := latitudes[row].Float()
		lon := longitudes[row].Float()
		if inclusive {
			return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
		}
		return lat > -90 && lat < 90 && lon > -180 && lon < 180
	}), nil
}

// FilterDuplicates returns the rows left after dropping every group of
// at least groupSize rows that share values in the given columns.
// Groups of suspiciously similar entries often come from trainings and
// other mass events recording the same observation many times over.
func FilterDuplicates(t *table.Table, columns []string, groupSize int) (*table.Table, error) {
	for _, column := range columns {
		if !t.HasColumn(column) {
			return nil, fmt.Errorf("could not filter duplicates: no %q column", column)
		}
	}
	if groupSize < 1 {
		return nil, fmt.Errorf("could not filter duplicates: group size %d is not positive", groupSize)
	}

	sizes := make(map[string]int)
	for row := 0; row < t.Len(); row++ {
		sizes[t.GroupKey(columns, row)]++
	}
	return t.FilterRows(func(row int) bool {
		return sizes[t.GroupKey(columns, row)] < groupSize
	}), nil
}

// FilterPoorGeolocationalData returns the rows whose geolocational data
// passes a naive quality check: a row is dropped when its GPS
// coordinates match the MGRS coordinates exactly or when either GPS
// coordinate is a whole number, both signs that the reported location
// is too coarse to trust.
func FilterPoorGeolocationalData(t *table.Table, latitudeCol, longitudeCol, mgrsLatitudeCol, mgrsLongitudeCol string) (*table.Table, error) {
	for _, column := range []string{latitudeCol, longitudeCol, mgrsLatitudeCol, mgrsLongitudeCol} {
		if !t.HasColumn(column) {
			return nil, fmt.Errorf("could not filter geolocational data: no %q column", column)
		}
	}
	latitudes := t.Column(latitudeCol)
	longitudes := t.Column(longitudeCol)
	mgrsLatitudes := t.Column(mgrsLatitudeCol)
	mgrsLongitudes := t.Column(mgrsLongitudeCol)
	return t.FilterRows(func(row int) bool {
		lat := latitudes[row].Float()
		lon := longitudes[row].Float()
		if mgrsLatitudes[row].Float() == lat && mgrsLongitudes[row].Float() == lon {
			return false
		}
		return lat != math.Trunc(lat) && lon != math.Trunc(lon)
	}), nil
}
