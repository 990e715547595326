package photos

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	ioutils "github.com/IGES-Geospatial/globe-observer-go/internal/io"
	"github.com/IGES-Geospatial/globe-observer-go/internal/lc"
	"github.com/IGES-Geospatial/globe-observer-go/internal/mhm"
	"github.com/IGES-Geospatial/globe-observer-go/internal/model"
	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

// Default column names for cleaned mosquito habitat mapper data that the
// mhm package does not already name.
const (
	MosquitoLatitudeColumn  = "mhm_Latitude"
	MosquitoLongitudeColumn = "mhm_Longitude"
	MosquitoDateColumn      = "mhm_measuredDate"
	MosquitoIDColumn        = "mhm_MosquitoHabitatMapperId"
	MosquitoSpeciesColumn   = "mhm_Species"
)

// Default column names for cleaned land cover data that the lc package
// does not already name.
const (
	LandCoverLatitudeColumn  = "lc_Latitude"
	LandCoverLongitudeColumn = "lc_Longitude"
	LandCoverDateColumn      = "lc_measuredDate"
	LandCoverIDColumn        = "lc_LandCoverId"
)

// GLOBE photo URLs carry the upload date and the photo ID in their path,
// as in .../photos/2021/01/05/2076283/original.jpg.
var photoIDPattern = regexp.MustCompile(`\d{4}/\d{2}/\d{2}/(.*)/`)

// GlobePhotoID extracts the GLOBE photo ID from a photo URL. The ID is
// the path segment between the upload date and the file name.
func GlobePhotoID(url string) (string, error) {
	match := photoIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", fmt.Errorf("no GLOBE photo ID in %q", url)
	}
	return match[1], nil
}

// MosquitoColumns names the cleaned mosquito habitat mapper columns used
// to derive photo targets. Zero-valued fields fall back to the standard
// cleaned column names.
type MosquitoColumns struct {
	Latitude    string
	Longitude   string
	WaterSource string
	Date        string
	ID          string
	Genus       string
	Species     string

	LarvaePhotos      string
	WaterSourcePhotos string
	AbdomenPhotos     string
}

func (c MosquitoColumns) withDefaults() MosquitoColumns {
	fill := func(field *string, value string) {
		if *field == "" {
			*field = value
		}
	}
	fill(&c.Latitude, MosquitoLatitudeColumn)
	fill(&c.Longitude, MosquitoLongitudeColumn)
	fill(&c.WaterSource, mhm.WaterSourceColumn)
	fill(&c.Date, MosquitoDateColumn)
	fill(&c.ID, MosquitoIDColumn)
	fill(&c.Genus, mhm.GenusColumn)
	fill(&c.Species, MosquitoSpeciesColumn)
	fill(&c.LarvaePhotos, mhm.LarvaePhotosColumn)
	fill(&c.WaterSourcePhotos, mhm.WaterSourcePhotosColumn)
	fill(&c.AbdomenPhotos, mhm.AbdomenPhotosColumn)
	return c
}

// MosquitoOptions selects which mosquito habitat mapper photos to derive
// targets for.
type MosquitoOptions struct {
	Larvae      bool
	WaterSource bool
	Abdomen     bool

	// IncludeSpecies appends the species to the genus in the filename
	// classification when a species was recorded.
	IncludeSpecies bool

	Columns MosquitoColumns
}

// MosquitoTargets derives download targets for the enabled photo columns
// of a cleaned mosquito habitat mapper table. Filenames carry the photo
// type, water source, coordinates, measured date, observation ID, genus
// classification and GLOBE photo ID:
//
//	mhm_Larvae_dish or pot_37.1_-84.52_2021-01-07_26422_Aedes_2082764.png
//
// Targets are deduplicated and sorted by filename.
func MosquitoTargets(t *table.Table, directory string, opts MosquitoOptions) ([]model.Target, error) {
	columns := opts.Columns.withDefaults()

	kinds := []struct {
		enabled bool
		label   string
		column  string
	}{
		{opts.Larvae, "Larvae", columns.LarvaePhotos},
		{opts.WaterSource, "Watersource", columns.WaterSourcePhotos},
		{opts.Abdomen, "Abdomen", columns.AbdomenPhotos},
	}

	required := []string{columns.Latitude, columns.Longitude, columns.WaterSource, columns.Date, columns.ID, columns.Genus}
	if opts.IncludeSpecies {
		required = append(required, columns.Species)
	}
	for _, kind := range kinds {
		if kind.enabled {
			required = append(required, kind.column)
		}
	}
	if err := requireColumns(t, required); err != nil {
		return nil, err
	}

	collector := newTargetCollector()
	for row := 0; row < t.Len(); row++ {
		for _, kind := range kinds {
			if !kind.enabled {
				continue
			}
			cell := t.Cell(kind.column, row)
			if cell.IsNull() {
				continue
			}

			date, err := measuredDateString(t.Cell(columns.Date, row))
			if err != nil {
				return nil, fmt.Errorf("could not build photo targets: %w", err)
			}

			classification := "None"
			if genus := t.Cell(columns.Genus, row); !genus.IsNull() {
				classification = genus.String()
				if species := t.Cell(columns.Species, row); opts.IncludeSpecies && !species.IsNull() {
					classification += " " + species.String()
				}
			}

			prefix := fmt.Sprintf("mhm_%s_%s_%s_%s_%s_%s_%s",
				kind.label,
				t.Cell(columns.WaterSource, row).String(),
				formatCoordinate(t.Cell(columns.Latitude, row)),
				formatCoordinate(t.Cell(columns.Longitude, row)),
				date,
				t.Cell(columns.ID, row).String(),
				classification,
			)
			if err := collector.add(cell.String(), directory, prefix); err != nil {
				return nil, fmt.Errorf("could not build photo targets: %w", err)
			}
		}
	}
	return collector.sorted(), nil
}

// LandCoverColumns names the cleaned land cover columns used to derive
// photo targets. Zero-valued fields fall back to the standard cleaned
// column names.
type LandCoverColumns struct {
	Latitude  string
	Longitude string
	Date      string
	ID        string

	UpPhotos    string
	DownPhotos  string
	NorthPhotos string
	SouthPhotos string
	EastPhotos  string
	WestPhotos  string
}

func (c LandCoverColumns) withDefaults() LandCoverColumns {
	fill := func(field *string, value string) {
		if *field == "" {
			*field = value
		}
	}
	fill(&c.Latitude, LandCoverLatitudeColumn)
	fill(&c.Longitude, LandCoverLongitudeColumn)
	fill(&c.Date, LandCoverDateColumn)
	fill(&c.ID, LandCoverIDColumn)
	fill(&c.UpPhotos, lc.UpwardPhotoColumn)
	fill(&c.DownPhotos, lc.DownwardPhotoColumn)
	fill(&c.NorthPhotos, lc.NorthPhotoColumn)
	fill(&c.SouthPhotos, lc.SouthPhotoColumn)
	fill(&c.EastPhotos, lc.EastPhotoColumn)
	fill(&c.WestPhotos, lc.WestPhotoColumn)
	return c
}

// LandCoverOptions selects which land cover photo directions to derive
// targets for.
type LandCoverOptions struct {
	Up    bool
	Down  bool
	North bool
	South bool
	East  bool
	West  bool

	Columns LandCoverColumns
}

// LandCoverTargets derives download targets for the enabled directions of
// a cleaned land cover table. Filenames carry the direction, coordinates,
// measured date, observation ID and GLOBE photo ID:
//
//	lc_North_38.2_-78.4_2021-01-01_38513_2072269.png
//
// Targets are deduplicated and sorted by filename.
func LandCoverTargets(t *table.Table, directory string, opts LandCoverOptions) ([]model.Target, error) {
	columns := opts.Columns.withDefaults()

	directions := []struct {
		enabled bool
		label   string
		column  string
	}{
		{opts.Up, "Up", columns.UpPhotos},
		{opts.Down, "Down", columns.DownPhotos},
		{opts.North, "North", columns.NorthPhotos},
		{opts.South, "South", columns.SouthPhotos},
		{opts.East, "East", columns.EastPhotos},
		{opts.West, "West", columns.WestPhotos},
	}

	required := []string{columns.Latitude, columns.Longitude, columns.Date, columns.ID}
	for _, direction := range directions {
		if direction.enabled {
			required = append(required, direction.column)
		}
	}
	if err := requireColumns(t, required); err != nil {
		return nil, err
	}

	collector := newTargetCollector()
	for row := 0; row < t.Len(); row++ {
		for _, direction := range directions {
			if !direction.enabled {
				continue
			}
			cell := t.Cell(direction.column, row)
			if cell.IsNull() {
				continue
			}

			date, err := measuredDateString(t.Cell(columns.Date, row))
			if err != nil {
				return nil, fmt.Errorf("could not build photo targets: %w", err)
			}

			prefix := fmt.Sprintf("lc_%s_%s_%s_%s_%s",
				direction.label,
				formatCoordinate(t.Cell(columns.Latitude, row)),
				formatCoordinate(t.Cell(columns.Longitude, row)),
				date,
				t.Cell(columns.ID, row).String(),
			)
			if err := collector.add(cell.String(), directory, prefix); err != nil {
				return nil, fmt.Errorf("could not build photo targets: %w", err)
			}
		}
	}
	return collector.sorted(), nil
}

// targetCollector deduplicates targets as they are derived.
type targetCollector struct {
	seen    map[model.Target]struct{}
	targets []model.Target
}

func newTargetCollector() *targetCollector {
	return &targetCollector{seen: make(map[model.Target]struct{})}
}

// add derives one target per https URL in a photo cell. Cells hold one URL
// or several separated by semicolons.
func (c *targetCollector) add(entry, directory, prefix string) error {
	for _, url := range strings.Split(entry, ";") {
		if !strings.Contains(url, "https") {
			continue
		}
		id, err := GlobePhotoID(url)
		if err != nil {
			return err
		}
		target := model.Target{
			URL:       url,
			Directory: directory,
			Filename:  ioutils.RemoveBadCharacters(fmt.Sprintf("%s_%s.png", prefix, id)),
		}
		if _, ok := c.seen[target]; ok {
			continue
		}
		c.seen[target] = struct{}{}
		c.targets = append(c.targets, target)
	}
	return nil
}

func (c *targetCollector) sorted() []model.Target {
	sort.Slice(c.targets, func(i, j int) bool {
		return c.targets[i].Filename < c.targets[j].Filename
	})
	return c.targets
}

func requireColumns(t *table.Table, columns []string) error {
	for _, column := range columns {
		if !t.HasColumn(column) {
			return fmt.Errorf("could not build photo targets: no %q column", column)
		}
	}
	return nil
}

func measuredDateString(v table.Value) (string, error) {
	parsed, ok := model.ParseMeasuredDate(v.String())
	if !ok {
		return "", fmt.Errorf("unparseable measured date %q", v.String())
	}
	return parsed.Format(model.MeasuredDateLayout), nil
}

// formatCoordinate renders a latitude or longitude rounded to five decimal
// places, without trailing zeros.
func formatCoordinate(v table.Value) string {
	f := v.Float()
	if math.IsNaN(f) {
		return v.String()
	}
	rounded := math.Round(f*1e5) / 1e5
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
