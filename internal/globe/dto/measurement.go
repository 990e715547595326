package dto

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

// FieldValue is a single field from a measurement's nested "data"
// object or an ArcGIS feature attribute. The GLOBE APIs mix strings,
// integers, floats, booleans and nulls freely within one column, so
// the value keeps whichever type arrived on the wire.
type FieldValue struct {
	table.Value
}

// UnmarshalJSON decodes a JSON scalar into a table cell. Integers and
// floats stay distinct, booleans become the strings "true"/"false",
// and nested objects or arrays are kept as their raw JSON text.
func (f *FieldValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		f.Value = table.Null()
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		f.Value = table.Str(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		f.Value = table.Str(strconv.FormatBool(b))
	case '{', '[':
		f.Value = table.Str(string(trimmed))
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		if i, err := n.Int64(); err == nil {
			f.Value = table.Int(i)
		} else {
			fl, err := n.Float64()
			if err != nil {
				return err
			}
			f.Value = table.Float(fl)
		}
	}
	return nil
}

// SearchResponse is the envelope returned by the GLOBE search API.
//
// Results is a pointer so a response that lacks the "results" key can
// be told apart from one with an empty result list; the former means
// the API itself is in trouble.
type SearchResponse struct {
	Message string         `json:"message"`
	Count   int            `json:"count"`
	Results *[]Measurement `json:"results"`
}

// Measurement is a single observation from the GLOBE search API. The
// top-level fields are shared by every protocol; the protocol-specific
// fields arrive in the nested Data object and are flattened into table
// columns by the client.
//
// Latitude and Longitude here are the GLOBE site coordinates, which
// are rounded to the site's MGRS region. The precise coordinates of
// the observation live in the protocol-specific measurement fields.
type Measurement struct {
	Protocol         string                `json:"protocol"`
	MeasuredDate     string                `json:"measuredDate"`
	CreateDate       string                `json:"createDate"`
	UpdateDate       string                `json:"updateDate"`
	PublishDate      string                `json:"publishDate"`
	OrganizationID   *int64                `json:"organizationId"`
	OrganizationName string                `json:"organizationName"`
	SiteID           *int64                `json:"siteId"`
	SiteName         string                `json:"siteName"`
	CountryName      string                `json:"countryName"`
	CountryCode      string                `json:"countryCode"`
	Latitude         *float64              `json:"latitude"`
	Longitude        *float64              `json:"longitude"`
	Elevation        *float64              `json:"elevation"`
	PID              *int64                `json:"pid"`
	Data             map[string]FieldValue `json:"data"`
}
