package cleanup

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

// NullSentinel replaces nulls in numeric columns, following the
// environmental data standard of -9999 for missing values.
const NullSentinel = -9999

// RemoveHomogenousColumns drops every column holding a single distinct
// value, nulls included. Raw GLOBE downloads carry several of these
// (the protocol name, the data source, unused fields), and a column
// with one value carries no information.
//
// Dropped columns are logged at debug level.
func RemoveHomogenousColumns(t *table.Table) {
	for _, column := range t.Columns() {
		if t.UniqueCount(column) == 1 {
			logrus.WithFields(logrus.Fields{
				"column": column,
				"value":  t.Cell(column, 0).String(),
			}).Debug("dropped homogenous column")
			t.DropColumn(column)
		}
	}
}

// FindColumn returns the first column whose name contains the keyword.
func FindColumn(t *table.Table, keyword string) (string, error) {
	for _, column := range t.Columns() {
		if strings.Contains(column, keyword) {
			return column, nil
		}
	}
	return "", fmt.Errorf("no column containing %q", keyword)
}

// RenameLatLonColumns makes the coordinate columns of raw GLOBE data
// intuitive. The API reports the site's MGRS region coordinates in
// "latitude"/"longitude" and the observation's GPS coordinates in the
// protocol's MeasurementLatitude/MeasurementLongitude fields, so the
// GPS pair becomes Latitude/Longitude and the MGRS pair becomes
// MGRSLatitude/MGRSLongitude.
//
// Missing measurement coordinate columns are an error.
func RenameLatLonColumns(t *table.Table) error {
	latitudeCol, err := FindColumn(t, "MeasurementLatitude")
	if err != nil {
		return err
	}
	longitudeCol, err := FindColumn(t, "MeasurementLongitude")
	if err != nil {
		return err
	}
	t.RenameColumns(map[string]string{
		latitudeCol:  "Latitude",
		longitudeCol: "Longitude",
		"latitude":   "MGRSLatitude",
		"longitude":  "MGRSLongitude",
	})
	return nil
}

// ReplaceColumnPrefix strips the un-underscored protocol name from
// every column name and prefixes "{replacement}_" instead, giving the
// "mhm_Genus" / "lc_MGRSLatitude" naming the processed datasets use.
// Columns that never contained the protocol name still gain the
// prefix.
func ReplaceColumnPrefix(t *table.Table, protocol, replacement string) {
	compact := strings.ReplaceAll(protocol, "_", "")
	columns := t.Columns()
	names := make([]string, len(columns))
	for i, column := range columns {
		names[i] = replacement + "_" + strings.ReplaceAll(column, compact, "")
	}
	// The name count never changes, so this cannot fail.
	_ = t.SetColumnNames(names)
}

// RoundColumns normalizes every numeric column. Nulls become -9999.
// Latitude and longitude columns are rounded to 5 decimal places,
// about a meter of precision, which is all the app's GPS fix can
// deliver. Every other numeric column is converted to integers, since
// ids are discrete and third-party elevation estimates carry no real
// sub-meter accuracy.
func RoundColumns(t *table.Table) {
	for _, column := range t.Columns() {
		cells := t.Column(column)
		if !isNumericColumn(cells) {
			continue
		}

		lower := strings.ToLower(column)
		if strings.Contains(lower, "latitude") || strings.Contains(lower, "longitude") {
			logrus.WithField("column", column).Debug("rounded to 5 decimals")
			for i, v := range cells {
				if v.IsNull() {
					cells[i] = table.Float(NullSentinel)
					continue
				}
				cells[i] = table.Float(roundTo(v.Float(), 5))
			}
		} else {
			logrus.WithField("column", column).Debug("converted to integer")
			for i, v := range cells {
				if v.IsNull() {
					cells[i] = table.Int(NullSentinel)
					continue
				}
				cells[i] = table.Int(v.Int())
			}
		}
	}
}

// isNumericColumn reports whether every cell is numeric or null, the
// table analogue of a float or integer dtype.
func isNumericColumn(cells []table.Value) bool {
	if len(cells) == 0 {
		return false
	}
	for _, v := range cells {
		if !v.IsNull() && !v.IsNumeric() {
			return false
		}
	}
	return true
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}

// StandardizeNullValues rewrites the mixed no-data markers of raw
// GLOBE data ("null", empty text, "NaN", "nan") to the given value,
// usually table.Null().
func StandardizeNullValues(t *table.Table, null table.Value) {
	for _, column := range t.Columns() {
		cells := t.Column(column)
		for i, v := range cells {
			if v.IsNull() {
				cells[i] = null
				continue
			}
			if v.Kind() != table.KindString {
				continue
			}
			switch v.String() {
			case "null", "", "NaN", "nan":
				cells[i] = null
			}
		}
	}
}
