package globe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/IGES-Geospatial/globe-observer-go/internal/globe/dto"
	gohttp "github.com/IGES-Geospatial/globe-observer-go/internal/http"
	"github.com/IGES-Geospatial/globe-observer-go/internal/model"
	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

// Default endpoints. Both can be overridden through the settings file,
// which also lets tests point the client at local servers.
const (
	DefaultAPIBaseURL       = "https://api.globe.gov/search/v1"
	DefaultArcGISContentURL = "https://www.arcgis.com/sharing/rest/content/items"
)

// Stable failure modes of the search API.
var (
	// ErrAPIDown is returned when a response carries no results
	// payload at all, which usually means a GLOBE outage.
	ErrAPIDown = errors.New("data download failed: the GLOBE API is most likely down")

	// ErrRequestFailed is returned when the API rejects the request,
	// usually because of invalid parameters.
	ErrRequestFailed = errors.New("failed to get data from the API: double check your specified settings")
)

// baseColumns is the column order of the shared measurement fields,
// matching the order the GLOBE API serializes them in. Flattened
// protocol-specific fields follow in sorted order.
var baseColumns = []string{
	"protocol", "measuredDate", "createDate", "updateDate", "publishDate",
	"organizationId", "organizationName", "siteId", "siteName",
	"countryName", "countryCode", "latitude", "longitude", "elevation",
	"pid",
}

// Client downloads observation data from the GLOBE search API and from
// the country-enriched ArcGIS feature layers.
//
// Example usage:
//
//	client := globe.NewClient(httpClient, "", "")
//
//	t, err := client.GetAPIData(ctx, model.MosquitoHabitatMapper, globe.DownloadOptions{
//	    StartDate: "2021-01-01",
//	    EndDate:   "2021-06-01",
//	})
type Client struct {
	http             *gohttp.Client
	apiBaseURL       string
	arcgisContentURL string
}

// NewClient creates a client over the given HTTP client. Empty URLs
// fall back to the public GLOBE and ArcGIS endpoints.
func NewClient(httpClient *gohttp.Client, apiBaseURL, arcgisContentURL string) *Client {
	if apiBaseURL == "" {
		apiBaseURL = DefaultAPIBaseURL
	}
	if arcgisContentURL == "" {
		arcgisContentURL = DefaultArcGISContentURL
	}
	return &Client{
		http:             httpClient,
		apiBaseURL:       apiBaseURL,
		arcgisContentURL: arcgisContentURL,
	}
}

// DownloadOptions control a raw API download. Zero values select the
// defaults: the GLOBE Observer launch date, today, and the whole globe.
type DownloadOptions struct {
	// StartDate and EndDate bound the measurement dates, both in
	// YYYY-MM-DD form.
	StartDate string
	EndDate   string

	// Box bounds the observation sites geographically. Nil means the
	// whole globe. A non-nil box that fails Valid() downloads the
	// whole globe too, with a warning, matching the API's behavior of
	// only accepting fully specified boxes.
	Box *model.LatLonBox
}

func (o *DownloadOptions) fillDefaults() {
	if o.StartDate == "" {
		o.StartDate = DefaultStartDate
	}
	if o.EndDate == "" {
		o.EndDate = DefaultEndDate()
	}
	if o.Box == nil {
		box := model.GlobalBox()
		o.Box = &box
	}
}

// GetAPIData downloads raw observation data for a protocol and returns
// it as a table: one row per observation, shared measurement fields
// first, protocol-specific fields flattened after them in sorted order.
//
// The measuredDate column and the protocol's measured-at column are
// validated against the GLOBE date layouts; unparseable values become
// null.
func (c *Client) GetAPIData(ctx context.Context, protocol model.Protocol, opts DownloadOptions) (*table.Table, error) {
	opts.fillDefaults()

	url := c.measurementURL(protocol, opts)
	body, err := c.http.Get(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var resp dto.SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIDown, err)
	}
	if resp.Results == nil {
		return nil, ErrAPIDown
	}

	logrus.WithFields(logrus.Fields{
		"protocol": protocol,
		"rows":     len(*resp.Results),
	}).Debug("downloaded observations")

	t := buildMeasurementTable(*resp.Results)
	normalizeDateColumns(t, protocol)
	return t, nil
}

// measurementURL builds the search API URL for the options. A valid
// box selects the lat/lon endpoint; otherwise the protocol/date
// endpoint returns every observation in the date range.
func (c *Client) measurementURL(protocol model.Protocol, opts DownloadOptions) string {
	if opts.Box.Valid() {
		return fmt.Sprintf(
			"%s/measurement/protocol/measureddate/lat/lon/?protocols=%s&startdate=%s&enddate=%s&minlat=%s&maxlat=%s&minlon=%s&maxlon=%s&geojson=FALSE&sample=FALSE",
			c.apiBaseURL, protocol, opts.StartDate, opts.EndDate,
			formatCoord(opts.Box.MinLat), formatCoord(opts.Box.MaxLat),
			formatCoord(opts.Box.MinLon), formatCoord(opts.Box.MaxLon),
		)
	}

	logrus.Warn("no valid bounding box given, downloading all observations for the protocol and date range")
	return fmt.Sprintf(
		"%s/measurement/protocol/measureddate/?protocols=%s&startdate=%s&enddate=%s&geojson=FALSE&sample=FALSE",
		c.apiBaseURL, protocol, opts.StartDate, opts.EndDate,
	)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// buildMeasurementTable flattens measurements into a table. The
// protocol-specific data keys differ from row to row, so the column
// set is the union over all rows; rows missing a key hold null there.
func buildMeasurementTable(results []dto.Measurement) *table.Table {
	keySet := make(map[string]struct{})
	for _, m := range results {
		for k := range m.Data {
			keySet[k] = struct{}{}
		}
	}
	dataColumns := make([]string, 0, len(keySet))
	for k := range keySet {
		dataColumns = append(dataColumns, k)
	}
	sort.Strings(dataColumns)

	t := table.New(append(append([]string{}, baseColumns...), dataColumns...)...)
	for _, m := range results {
		row := map[string]table.Value{
			"protocol":         strOrNull(m.Protocol),
			"measuredDate":     strOrNull(m.MeasuredDate),
			"createDate":       strOrNull(m.CreateDate),
			"updateDate":       strOrNull(m.UpdateDate),
			"publishDate":      strOrNull(m.PublishDate),
			"organizationId":   intOrNull(m.OrganizationID),
			"organizationName": strOrNull(m.OrganizationName),
			"siteId":           intOrNull(m.SiteID),
			"siteName":         strOrNull(m.SiteName),
			"countryName":      strOrNull(m.CountryName),
			"countryCode":      strOrNull(m.CountryCode),
			"latitude":         floatOrNull(m.Latitude),
			"longitude":        floatOrNull(m.Longitude),
			"elevation":        floatOrNull(m.Elevation),
			"pid":              intOrNull(m.PID),
		}
		for k, v := range m.Data {
			row[k] = v.Value
		}
		t.AppendRow(row)
	}
	return t
}

func strOrNull(s string) table.Value {
	if s == "" {
		return table.Null()
	}
	return table.Str(s)
}

func intOrNull(i *int64) table.Value {
	if i == nil {
		return table.Null()
	}
	return table.Int(*i)
}

func floatOrNull(f *float64) table.Value {
	if f == nil {
		return table.Null()
	}
	return table.Float(*f)
}

// normalizeDateColumns validates the measuredDate column and the
// protocol's measured-at column. Parseable values are kept as they
// are; anything else becomes null.
func normalizeDateColumns(t *table.Table, protocol model.Protocol) {
	for _, col := range []string{"measuredDate", protocol.MeasuredAtColumn()} {
		if !t.HasColumn(col) {
			continue
		}
		values := t.Column(col)
		for i, v := range values {
			if v.Kind() != table.KindString {
				continue
			}
			if _, ok := model.ParseMeasuredDate(v.String()); !ok {
				values[i] = table.Null()
			}
		}
	}
}
