package globe

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/IGES-Geospatial/globe-observer-go/internal/globe/dto"
	"github.com/IGES-Geospatial/globe-observer-go/internal/model"
	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

const arcgisPageSize = 1000

// arcgisItemIDs are the ArcGIS content items hosting the
// country-enriched observation layers. The layers are refreshed daily,
// so they lag the live API slightly.
var arcgisItemIDs = map[model.Protocol]string{
	model.MosquitoHabitatMapper: "4e8bdb70b3d6424b8831e9cc621cf3b6",
	model.LandCovers:            "c68acbfc68db4409b495fd4636646aa6",
}

// mhmTruncatedNames restores the mosquito habitat mapper field names
// that ArcGIS truncates to 31 characters when it builds the layer.
var mhmTruncatedNames = map[string]string{
	"mosquitohabitatmapperAbdomenClo": "mosquitohabitatmapperAbdomenCloseupPhotoUrls",
	"mosquitohabitatmapperBreedingGr": "mosquitohabitatmapperBreedingGroundEliminated",
	"mosquitohabitatmapperLarvaFullB": "mosquitohabitatmapperLarvaFullBodyPhotoUrls",
	"mosquitohabitatmapperLarvaeCoun": "mosquitohabitatmapperLarvaeCount",
	"mosquitohabitatmapperLastIdenti": "mosquitohabitatmapperLastIdentifyStage",
	"mosquitohabitatmapperMeasurem_1": "mosquitohabitatmapperMeasurementLatitude",
	"mosquitohabitatmapperMeasurem_2": "mosquitohabitatmapperMeasurementLongitude",
	"mosquitohabitatmapperMeasuremen": "mosquitohabitatmapperMeasurementElevation",
	"mosquitohabitatmapperMosquitoAd": "mosquitohabitatmapperMosquitoAdults",
	"mosquitohabitatmapperMosquitoEg": "mosquitohabitatmapperMosquitoEggs",
	"mosquitohabitatmapperMosquitoHa": "mosquitohabitatmapperMosquitoHabitatMapperId",
	"mosquitohabitatmapperMosquitoPu": "mosquitohabitatmapperMosquitoPupae",
	"mosquitohabitatmapperMosquito_1": "mosquitohabitatmapperMosquitoEggCount",
	"mosquitohabitatmapperWaterSou_1": "mosquitohabitatmapperWaterSourcePhotoUrls",
	"mosquitohabitatmapperWaterSou_2": "mosquitohabitatmapperWaterSourceType",
	"mosquitohabitatmapperWaterSourc": "mosquitohabitatmapperWaterSource",
}

// CountryDownloadOptions control a country-enriched download. Countries
// and Regions select rows by the layer's COUNTRY column; regions expand
// to their member countries, and the selections are combined. Empty
// selections keep all countries.
type CountryDownloadOptions struct {
	// StartDate and EndDate bound the measurement timestamps, both in
	// YYYY-MM-DD form. Zero values select the defaults.
	StartDate string
	EndDate   string

	// Countries are exact country names to keep.
	Countries []string

	// Regions are GLOBE program region names; each contributes its
	// member countries.
	Regions []string

	// Box optionally bounds the GLOBE site coordinates. Nil or invalid
	// boxes keep all rows.
	Box *model.LatLonBox
}

// GetCountryAPIData downloads country-enriched observation data from
// the protocol's ArcGIS feature layer and returns it as a raw table in
// the same shape as GetAPIData, plus the enrichment columns (the
// country name among them).
//
// The layer is fetched page by page, truncated mosquito habitat mapper
// field names are restored, date fields are normalized, and rows are
// filtered to the date range, bounding box, and country selection.
func (c *Client) GetCountryAPIData(ctx context.Context, protocol model.Protocol, opts CountryDownloadOptions) (*table.Table, error) {
	itemID, ok := arcgisItemIDs[protocol]
	if !ok {
		return nil, fmt.Errorf("invalid protocol %q: only mosquito_habitat_mapper and land_covers have country layers", protocol)
	}

	if opts.StartDate == "" {
		opts.StartDate = DefaultStartDate
	}
	if opts.EndDate == "" {
		opts.EndDate = DefaultEndDate()
	}
	start, err := time.Parse(model.MeasuredDateLayout, opts.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", opts.StartDate, err)
	}
	end, err := time.Parse(model.MeasuredDateLayout, opts.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", opts.EndDate, err)
	}

	wanted, err := countrySet(opts.Countries, opts.Regions)
	if err != nil {
		return nil, err
	}

	features, err := c.fetchArcGISLayer(ctx, itemID)
	if err != nil {
		return nil, err
	}

	t := buildFeatureTable(features)
	if protocol == model.MosquitoHabitatMapper {
		t.RenameColumns(mhmTruncatedNames)
	}

	measuredAt := protocol.MeasuredAtColumn()
	normalizeArcGISDates(t, "measuredDate", measuredAt)
	if t.Len() == 0 {
		return t, nil
	}

	if !t.HasColumn(measuredAt) {
		return nil, fmt.Errorf("country layer for %s has no %s column", protocol, measuredAt)
	}
	t = filterDateRange(t, measuredAt, start, end)

	if opts.Box != nil && opts.Box.Valid() {
		if !t.HasColumn("latitude") || !t.HasColumn("longitude") {
			return nil, fmt.Errorf("country layer for %s has no latitude/longitude columns", protocol)
		}
		box := *opts.Box
		lat, lon := t.Column("latitude"), t.Column("longitude")
		t = t.FilterRows(func(i int) bool {
			// NaN coordinates fail both comparisons and drop the row.
			return box.Contains(lat[i].Float(), lon[i].Float())
		})
	}

	if len(wanted) > 0 {
		if !t.HasColumn("COUNTRY") {
			return nil, fmt.Errorf("country layer for %s has no COUNTRY column", protocol)
		}
		country := t.Column("COUNTRY")
		t = t.FilterRows(func(i int) bool {
			return wanted[country[i].String()]
		})
	}

	return t, nil
}

// fetchArcGISLayer resolves the feature service URL behind a content
// item and pulls every row of its first layer, following the transfer
// limit paging.
func (c *Client) fetchArcGISLayer(ctx context.Context, itemID string) ([]dto.ArcGISFeature, error) {
	itemURL := fmt.Sprintf("%s/%s?f=json", c.arcgisContentURL, itemID)
	body, err := c.http.Get(ctx, itemURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("fetching country layer item %s: %w", itemID, err)
	}

	var item dto.ArcGISItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("decoding country layer item %s: %w", itemID, err)
	}
	if item.Error != nil {
		return nil, fmt.Errorf("fetching country layer item %s: %w", itemID, item.Error)
	}
	if item.URL == "" {
		return nil, fmt.Errorf("country layer item %s has no feature service URL", itemID)
	}

	var features []dto.ArcGISFeature
	offset := 0
	for {
		queryURL := fmt.Sprintf(
			"%s/0/query?where=1%%3D1&outFields=*&returnGeometry=false&f=json&resultOffset=%d&resultRecordCount=%d",
			item.URL, offset, arcgisPageSize,
		)
		body, err := c.http.Get(ctx, queryURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("querying country layer at offset %d: %w", offset, err)
		}

		var page dto.ArcGISQueryResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decoding country layer page at offset %d: %w", offset, err)
		}
		if page.Error != nil {
			return nil, fmt.Errorf("querying country layer at offset %d: %w", offset, page.Error)
		}

		features = append(features, page.Features...)
		logrus.WithFields(logrus.Fields{
			"offset": offset,
			"rows":   len(page.Features),
		}).Debug("fetched country layer page")

		if !page.ExceededTransferLimit || len(page.Features) == 0 {
			return features, nil
		}
		offset += len(page.Features)
	}
}

// buildFeatureTable lays feature attributes out as a table. Geometry
// bookkeeping columns are dropped; everything else is kept, columns
// sorted for determinism since attribute maps carry no order.
func buildFeatureTable(features []dto.ArcGISFeature) *table.Table {
	keySet := make(map[string]struct{})
	for _, f := range features {
		for k := range f.Attributes {
			if isGeometryColumn(k) {
				continue
			}
			keySet[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(keySet))
	for k := range keySet {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	t := table.New(columns...)
	for _, f := range features {
		row := make(map[string]table.Value, len(f.Attributes))
		for k, v := range f.Attributes {
			if isGeometryColumn(k) {
				continue
			}
			row[k] = v.Value
		}
		t.AppendRow(row)
	}
	return t
}

func isGeometryColumn(name string) bool {
	return name == "SHAPE" || strings.HasPrefix(name, "Shape__")
}

// normalizeArcGISDates rewrites date columns into the GLOBE string
// layouts. ArcGIS serves date fields as epoch milliseconds; string
// values are validated instead, and anything unparseable becomes null.
func normalizeArcGISDates(t *table.Table, columns ...string) {
	for _, col := range columns {
		if !t.HasColumn(col) {
			continue
		}
		values := t.Column(col)
		for i, v := range values {
			switch v.Kind() {
			case table.KindInt, table.KindFloat:
				values[i] = table.Str(formatEpochMillis(v.Int()))
			case table.KindString:
				if _, ok := model.ParseMeasuredDate(v.String()); !ok {
					values[i] = table.Null()
				}
			}
		}
	}
}

func formatEpochMillis(ms int64) string {
	ts := time.UnixMilli(ms).UTC()
	if ts.Hour() == 0 && ts.Minute() == 0 && ts.Second() == 0 {
		return ts.Format(model.MeasuredDateLayout)
	}
	return ts.Format(model.MeasuredDateTimeLayout)
}

// filterDateRange keeps rows whose timestamp in col falls within
// [start, end]. Rows with null or unparseable timestamps are dropped.
func filterDateRange(t *table.Table, col string, start, end time.Time) *table.Table {
	values := t.Column(col)
	return t.FilterRows(func(i int) bool {
		ts, ok := model.ParseMeasuredDate(values[i].String())
		if !ok {
			return false
		}
		return !ts.Before(start) && !ts.After(end)
	})
}
