package mhm

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/IGES-Geospatial/globe-observer-go/internal/cleanup"
	"github.com/IGES-Geospatial/globe-observer-go/internal/model"
	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

// Input columns consumed by AddFlags, named as they appear after
// ApplyCleanup has shortened the raw column prefix.
const (
	GenusColumn             = "mhm_Genus"
	WaterSourceColumn       = "mhm_WaterSource"
	WaterSourcePhotosColumn = "mhm_WaterSourcePhotoUrls"
	LarvaePhotosColumn      = "mhm_LarvaFullBodyPhotoUrls"
	AbdomenPhotosColumn     = "mhm_AbdomenCloseupPhotoUrls"
	LarvaeCountColumn       = "mhm_LarvaeCount"
)

// Columns written by the flagging routines.
const (
	HasGenusColumn               = "mhm_HasGenus"
	GenusOfInterestColumn        = "mhm_IsGenusOfInterest"
	ContainerColumn              = "mhm_IsWaterSourceContainer"
	HasWaterSourceColumn         = "mhm_HasWaterSource"
	PhotoCountColumn             = "mhm_PhotoCount"
	RejectedCountColumn          = "mhm_RejectedCount"
	PendingCountColumn           = "mhm_PendingCount"
	PhotoBitBinaryColumn         = "mhm_PhotoBitBinary"
	PhotoBitDecimalColumn        = "mhm_PhotoBitDecimal"
	SubCompletenessColumn        = "mhm_SubCompletenessScore"
	CumulativeCompletenessColumn = "mhm_CumulativeCompletenessScore"
)

// Genera known to carry human diseases.
var infectiousGenera = []string{"Aedes", "Anopheles", "Culex"}

// Water sources that are natural bodies rather than artificial containers.
var nonContainerKeywords = []string{
	"puddle",
	"still water",
	"stream",
	"estuary",
	"lake",
	"pond",
	"ditch",
	"bay",
	"ocean",
	"swamp",
	"wetland",
}

// CleanupColumnPrefix shortens the verbose mosquito_habitat_mapper column
// prefix to mhm_.
func CleanupColumnPrefix(t *table.Table) {
	cleanup.ReplaceColumnPrefix(t, string(model.MosquitoHabitatMapper), model.MosquitoHabitatMapper.Abbreviation())
}

// LarvaeToNum converts the larvae counts, which arrive from the API as
// strings, into integers. The count column is rewritten in place and two
// flag columns are appended: LarvaeCountMagnitude holds the order of
// magnitude (0 to 4) by which a count exceeds the maximum reliable count
// of 100, and LarvaeCountIsRangeFlag marks entries that were reported as
// a range such as "25-50", which keep their lower bound.
//
// An empty larvaeCountCol selects the mhm_LarvaeCount column. The flag
// column names reuse whatever precedes "LarvaeCount" in the column name
// as their prefix.
func LarvaeToNum(t *table.Table, larvaeCountCol string) error {
	if larvaeCountCol == "" {
		larvaeCountCol = LarvaeCountColumn
	}
	if !t.HasColumn(larvaeCountCol) {
		return fmt.Errorf("could not convert larvae counts: no %q column", larvaeCountCol)
	}
	prefix := strings.ReplaceAll(strings.ToLower(larvaeCountCol), "larvaecount", "")

	counts := t.Column(larvaeCountCol)
	magnitudes := make([]table.Value, len(counts))
	isRange := make([]table.Value, len(counts))
	for i, cell := range counts {
		count, magnitude, rangeFlag, err := larvaeEntry(cell)
		if err != nil {
			return fmt.Errorf("could not convert larvae counts: %w", err)
		}
		counts[i] = table.Int(count)
		magnitudes[i] = table.Int(magnitude)
		isRange[i] = table.Int(rangeFlag)
	}
	copy(t.AddColumn(prefix+"LarvaeCountMagnitude", table.Null()), magnitudes)
	copy(t.AddColumn(prefix+"LarvaeCountIsRangeFlag", table.Null()), isRange)
	return nil
}

// larvaeEntry converts one raw larvae count cell into its numeric count,
// magnitude bucket and range flag.
func larvaeEntry(cell table.Value) (count, magnitude, rangeFlag int64, err error) {
	if cell.IsNull() {
		return cleanup.NullSentinel, 0, 0, nil
	}
	s := cell.String()
	// A few counts arrive in scientific notation ("1e+27"). They are far
	// too large to be real and land in the maximum magnitude bucket.
	if strings.Contains(s, "e+") {
		s = "100000"
	}
	if s == "more than 100" {
		return 101, 1, 1, nil
	}
	f, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		// Ranges such as "25-50" keep their lower bound.
		low, _, found := strings.Cut(s, "-")
		if !found {
			return 0, 0, 0, fmt.Errorf("unrecognized larvae count %q", s)
		}
		f, perr = strconv.ParseFloat(strings.TrimSpace(low), 64)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("unrecognized larvae count %q", s)
		}
		return int64(f), 0, 1, nil
	}
	if f > 100 {
		return 101, magnitudeBucket(f), 0, nil
	}
	return int64(f), 0, 0, nil
}

// magnitudeBucket places a count above 100 into a bucket: 1 for counts up
// to 999, 2 for counts up to 9999, and so on, capped at 4.
func magnitudeBucket(count float64) int64 {
	magnitude := int64(1)
	for limit := 1000.0; count >= limit && magnitude < 4; limit *= 10 {
		magnitude++
	}
	return magnitude
}

// HasGenusFlag writes the mhm_HasGenus column: 1 for rows with an
// identified genus, 0 otherwise.
func HasGenusFlag(t *table.Table, genusCol string) error {
	return addPresenceFlag(t, genusCol, HasGenusColumn)
}

// HasWaterSourceFlag writes the mhm_HasWaterSource column: 1 for rows
// with a recorded water source, 0 otherwise.
func HasWaterSourceFlag(t *table.Table, watersourceCol string) error {
	return addPresenceFlag(t, watersourceCol, HasWaterSourceColumn)
}

func addPresenceFlag(t *table.Table, source, flag string) error {
	if !t.HasColumn(source) {
		return fmt.Errorf("could not flag %s: no %q column", flag, source)
	}
	cells := t.Column(source)
	out := t.AddColumn(flag, table.Int(0))
	for i, cell := range cells {
		if !cell.IsNull() {
			out[i] = table.Int(1)
		}
	}
	return nil
}

// InfectiousGenusFlag writes the mhm_IsGenusOfInterest column: 1 for rows
// whose genus is one of the disease vectors Aedes, Anopheles or Culex,
// 0 otherwise.
func InfectiousGenusFlag(t *table.Table, genusCol string) error {
	if !t.HasColumn(genusCol) {
		return fmt.Errorf("could not flag %s: no %q column", GenusOfInterestColumn, genusCol)
	}
	cells := t.Column(genusCol)
	out := t.AddColumn(GenusOfInterestColumn, table.Int(0))
	for i, cell := range cells {
		genus := cell.String()
		for _, candidate := range infectiousGenera {
			if genus == candidate {
				out[i] = table.Int(1)
				break
			}
		}
	}
	return nil
}

// IsContainerFlag writes the mhm_IsWaterSourceContainer column: 1 for
// rows whose water source is an artificial container such as an ovitrap,
// pot or tire, 0 for natural bodies of water.
func IsContainerFlag(t *table.Table, watersourceCol string) error {
	if !t.HasColumn(watersourceCol) {
		return fmt.Errorf("could not flag %s: no %q column", ContainerColumn, watersourceCol)
	}
	cells := t.Column(watersourceCol)
	out := t.AddColumn(ContainerColumn, table.Int(1))
	for i, cell := range cells {
		lower := strings.ToLower(cell.String())
		for _, keyword := range nonContainerKeywords {
			if strings.Contains(lower, keyword) {
				out[i] = table.Int(0)
				break
			}
		}
	}
	return nil
}

// PhotoBitFlags summarizes the three photo URL columns into five new
// columns: mhm_PhotoCount counts the valid photos per row,
// mhm_RejectedCount and mhm_PendingCount count photos that were rejected
// or are awaiting approval, mhm_PhotoBitBinary encodes the presence of a
// photo per column in water source, larvae, abdomen order (for example
// "110" marks a water source photo and a larvae photo but no abdomen
// photo), and mhm_PhotoBitDecimal holds the numeric value of that mask.
func PhotoBitFlags(t *table.Table, watersourceCol, larvaeCol, abdomenCol string) error {
	photoCols := []string{watersourceCol, larvaeCol, abdomenCol}
	sources := make([][]table.Value, len(photoCols))
	for i, name := range photoCols {
		if !t.HasColumn(name) {
			return fmt.Errorf("could not flag photos: no %q column", name)
		}
		sources[i] = t.Column(name)
	}

	photoCount := t.AddColumn(PhotoCountColumn, table.Int(0))
	rejectedCount := t.AddColumn(RejectedCountColumn, table.Int(0))
	pendingCount := t.AddColumn(PendingCountColumn, table.Int(0))
	bitBinary := t.AddColumn(PhotoBitBinaryColumn, table.Null())
	bitDecimal := t.AddColumn(PhotoBitDecimalColumn, table.Int(0))

	for row := 0; row < t.Len(); row++ {
		var photos, rejected, pending int64
		mask := make([]byte, 0, len(sources))
		for _, cells := range sources {
			cell := cells[row]
			if cell.IsNull() {
				mask = append(mask, '0')
				continue
			}
			urls := cell.String()
			if strings.Contains(urls, "http") {
				mask = append(mask, '1')
			} else {
				mask = append(mask, '0')
			}
			photos += int64(strings.Count(urls, "http"))
			pending += int64(strings.Count(urls, "pending"))
			rejected += int64(strings.Count(urls, "rejected"))
		}
		// The mask only ever holds binary digits.
		decimal, _ := strconv.ParseInt(string(mask), 2, 64)
		photoCount[row] = table.Int(photos)
		rejectedCount[row] = table.Int(rejected)
		pendingCount[row] = table.Int(pending)
		bitBinary[row] = table.Str(string(mask))
		bitDecimal[row] = table.Int(decimal)
	}
	return nil
}

// CompletionScoreFlag scores how complete each row is.
// mhm_SubCompletenessScore is the filled fraction of the three photo
// columns and the genus column, derived from the flags written by
// HasGenusFlag and PhotoBitFlags. mhm_CumulativeCompletenessScore is the
// non-null fraction of all columns present before the two score columns,
// rounded to two decimal places.
func CompletionScoreFlag(t *table.Table) error {
	for _, required := range []string{HasGenusColumn, PhotoBitBinaryColumn} {
		if !t.HasColumn(required) {
			return fmt.Errorf("could not score completeness: no %q column", required)
		}
	}

	columns := len(t.Columns())
	hasGenus := t.Column(HasGenusColumn)
	bitBinary := t.Column(PhotoBitBinaryColumn)

	sub := make([]table.Value, t.Len())
	cumulative := make([]table.Value, t.Len())
	for row := 0; row < t.Len(); row++ {
		photos := strings.Count(bitBinary[row].String(), "1")
		sub[row] = table.Float((float64(hasGenus[row].Int()) + float64(photos)) / 4.0)
		cumulative[row] = table.Float(round2(float64(t.NonNullCount(row)) / float64(columns)))
	}
	copy(t.AddColumn(SubCompletenessColumn, table.Null()), sub)
	copy(t.AddColumn(CumulativeCompletenessColumn, table.Null()), cumulative)
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyCleanup runs the full cleanup procedure for raw mosquito habitat
// mapper data and returns the cleaned copy. It removes homogenous
// columns, renames the latitude and longitude columns, shortens the
// column prefix, converts larvae counts to numbers, rounds numeric
// columns and standardizes null values.
func ApplyCleanup(t *table.Table) (*table.Table, error) {
	cleaned := t.Clone()
	cleanup.RemoveHomogenousColumns(cleaned)
	if err := cleanup.RenameLatLonColumns(cleaned); err != nil {
		return nil, fmt.Errorf("could not clean mosquito habitat mapper data: %w", err)
	}
	CleanupColumnPrefix(cleaned)
	if err := LarvaeToNum(cleaned, ""); err != nil {
		return nil, fmt.Errorf("could not clean mosquito habitat mapper data: %w", err)
	}
	cleanup.RoundColumns(cleaned)
	cleanup.StandardizeNullValues(cleaned, table.Null())
	return cleaned, nil
}

// AddFlags adds the full set of interpretation flags to cleaned mosquito
// habitat mapper data: genus presence and interest, water source
// presence and kind, photo summaries and completeness scores.
func AddFlags(t *table.Table) error {
	if err := HasGenusFlag(t, GenusColumn); err != nil {
		return err
	}
	if err := InfectiousGenusFlag(t, GenusColumn); err != nil {
		return err
	}
	if err := IsContainerFlag(t, WaterSourceColumn); err != nil {
		return err
	}
	if err := HasWaterSourceFlag(t, WaterSourceColumn); err != nil {
		return err
	}
	if err := PhotoBitFlags(t, WaterSourcePhotosColumn, LarvaePhotosColumn, AbdomenPhotosColumn); err != nil {
		return err
	}
	return CompletionScoreFlag(t)
}

// QAFilterOptions selects which quality checks QAFilter applies. The
// zero value keeps every row.
type QAFilterOptions struct {
	// HasGenus keeps only rows with an identified genus.
	HasGenus bool
	// IsContainer keeps only rows whose water source is a container.
	IsContainer bool
	// HasPhotos keeps only rows with at least one valid photo.
	HasPhotos bool
	// MinLarvaeCount drops rows with fewer larvae. Zero disables the
	// check.
	MinLarvaeCount int
}

// QAFilter returns the rows of flagged mosquito habitat mapper data that
// pass the requested quality checks.
func QAFilter(t *table.Table, opts QAFilterOptions) (*table.Table, error) {
	type check struct {
		column string
		keep   func(table.Value) bool
	}
	var checks []check
	if opts.HasGenus {
		checks = append(checks, check{HasGenusColumn, func(v table.Value) bool { return v.Int() == 1 }})
	}
	if opts.IsContainer {
		checks = append(checks, check{ContainerColumn, func(v table.Value) bool { return v.Int() == 1 }})
	}
	if opts.HasPhotos {
		checks = append(checks, check{PhotoBitDecimalColumn, func(v table.Value) bool { return v.Int() > 0 }})
	}
	if opts.MinLarvaeCount > 0 {
		minCount := int64(opts.MinLarvaeCount)
		checks = append(checks, check{LarvaeCountColumn, func(v table.Value) bool { return v.Int() >= minCount }})
	}
	for _, c := range checks {
		if !t.HasColumn(c.column) {
			return nil, fmt.Errorf("could not filter mosquito habitat mapper data: no %q column", c.column)
		}
	}
	return t.FilterRows(func(row int) bool {
		for _, c := range checks {
			if !c.keep(t.Cell(c.column, row)) {
				return false
			}
		}
		return true
	}), nil
}
