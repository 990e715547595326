package lc

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/IGES-Geospatial/globe-observer-go/internal/cleanup"
	"github.com/IGES-Geospatial/globe-observer-go/internal/model"
	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

// Input columns consumed by AddFlags and UnpackClassifications, named as
// they appear after ApplyCleanup has shortened the raw column prefix.
const (
	UpwardPhotoColumn          = "lc_UpwardPhotoUrl"
	DownwardPhotoColumn        = "lc_DownwardPhotoUrl"
	NorthPhotoColumn           = "lc_NorthPhotoUrl"
	SouthPhotoColumn           = "lc_SouthPhotoUrl"
	EastPhotoColumn            = "lc_EastPhotoUrl"
	WestPhotoColumn            = "lc_WestPhotoUrl"
	NorthClassificationsColumn = "lc_NorthClassifications"
	SouthClassificationsColumn = "lc_SouthClassifications"
	EastClassificationsColumn  = "lc_EastClassifications"
	WestClassificationsColumn  = "lc_WestClassifications"
	PIDColumn                  = "lc_pid"
)

// Columns written by the flagging routines.
const (
	PhotoCountColumn               = "lc_PhotoCount"
	RejectedCountColumn            = "lc_RejectedCount"
	PendingCountColumn             = "lc_PendingCount"
	EmptyCountColumn               = "lc_EmptyCount"
	PhotoBitBinaryColumn           = "lc_PhotoBitBinary"
	PhotoBitDecimalColumn          = "lc_PhotoBitDecimal"
	ClassificationCountColumn      = "lc_ClassificationCount"
	ClassificationBitBinaryColumn  = "lc_ClassificationBitBinary"
	ClassificationBitDecimalColumn = "lc_ClassificationBitDecimal"
	SubCompletenessColumn          = "lc_SubCompletenessScore"
	CumulativeCompletenessColumn   = "lc_CumulativeCompletenessScore"
)

// classificationColumns lists the directional classification columns in
// the order UnpackClassifications processes them.
var classificationColumns = []string{
	WestClassificationsColumn,
	EastClassificationsColumn,
	NorthClassificationsColumn,
	SouthClassificationsColumn,
}

// classificationDelimiters split land cover descriptions into the words
// that form the camel cased column names.
var classificationDelimiters = []string{" ", ",", "-", "/"}

// directionKeywords mark the columns UnpackClassifications groups
// together behind the lc_pid column.
var directionKeywords = []string{"downward", "upward", "west", "east", "north", "south"}

var (
	classificationNamePattern    = regexp.MustCompile(`\[(.*)\]`)
	classificationPercentPattern = regexp.MustCompile(`(.*)%`)
)

// CleanupColumnPrefix shortens the verbose land_covers column prefix to
// lc_.
func CleanupColumnPrefix(t *table.Table) {
	cleanup.ReplaceColumnPrefix(t, string(model.LandCovers), model.LandCovers.Abbreviation())
}

// CamelCase converts a string to camel case, capitalizing the first
// letter after each of the given delimiters and removing the delimiters
// themselves. Without delimiters, words are split on spaces.
func CamelCase(s string, delimiters ...string) string {
	if len(delimiters) == 0 {
		delimiters = []string{" "}
	}
	for _, delimiter := range delimiters {
		var joined strings.Builder
		for _, part := range strings.Split(s, delimiter) {
			if part == "" {
				continue
			}
			r, size := utf8.DecodeRuneInString(part)
			joined.WriteRune(unicode.ToUpper(r))
			joined.WriteString(part[size:])
		}
		s = joined.String()
	}
	return s
}

// ExtractClassificationName extracts the land cover description of a
// single classification. For "60% MUC 02 (b) [Trees, Closely Spaced,
// Deciduous - Broad Leaved]" it returns "Trees, Closely Spaced,
// Deciduous - Broad Leaved".
func ExtractClassificationName(entry string) (string, error) {
	match := classificationNamePattern.FindStringSubmatch(entry)
	if match == nil {
		return "", fmt.Errorf("no bracketed land cover description in %q", entry)
	}
	return match[1], nil
}

// ExtractClassificationPercentage extracts the coverage percentage of a
// single classification. For "60% MUC 02 (b) [Trees, Closely Spaced,
// Deciduous - Broad Leaved]" it returns 60.
func ExtractClassificationPercentage(entry string) (float64, error) {
	match := classificationPercentPattern.FindStringSubmatch(entry)
	if match == nil {
		return 0, fmt.Errorf("no percentage in %q", entry)
	}
	percent, err := strconv.ParseFloat(strings.TrimSpace(match[1]), 64)
	if err != nil {
		return 0, fmt.Errorf("bad percentage in %q: %w", entry, err)
	}
	return percent, nil
}

// ExtractClassifications extracts the land cover descriptions of a
// classification cell, which holds one or more classifications separated
// by semicolons.
func ExtractClassifications(info string) ([]string, error) {
	entries := strings.Split(info, ";")
	names := make([]string, len(entries))
	for i, entry := range entries {
		name, err := ExtractClassificationName(entry)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

// ExtractPercentages extracts the coverage percentages of a
// classification cell.
func ExtractPercentages(info string) ([]float64, error) {
	entries := strings.Split(info, ";")
	percentages := make([]float64, len(entries))
	for i, entry := range entries {
		percent, err := ExtractClassificationPercentage(entry)
		if err != nil {
			return nil, err
		}
		percentages[i] = percent
	}
	return percentages, nil
}

// ExtractClassificationMap extracts the descriptions and percentages of
// a classification cell as a map of description to percentage.
func ExtractClassificationMap(info string) (map[string]float64, error) {
	entries := strings.Split(info, ";")
	classifications := make(map[string]float64, len(entries))
	for _, entry := range entries {
		name, err := ExtractClassificationName(entry)
		if err != nil {
			return nil, err
		}
		percent, err := ExtractClassificationPercentage(entry)
		if err != nil {
			return nil, err
		}
		classifications[name] = percent
	}
	return classifications, nil
}

// classificationColumnName converts a raw land cover description into
// the column name suffix used for its unpacked percentage column.
func classificationColumnName(description string) string {
	return strings.TrimSpace(CamelCase(description, classificationDelimiters...))
}

// directionClassifications collects the distinct camel cased
// descriptions recorded in one directional classification column,
// sorted alphabetically.
func directionClassifications(t *table.Table, column string) ([]string, error) {
	seen := make(map[string]bool)
	for _, cell := range t.Column(column) {
		if cell.IsNull() {
			continue
		}
		names, err := ExtractClassifications(cell.String())
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			seen[classificationColumnName(name)] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// UnpackClassifications expands the packed directional classification
// cells into one percentage column per distinct land cover description
// and direction, named like lc_West_TreesCloselySpaced. New columns
// start at 0 so they stay numeric through the rest of the cleanup, and
// every column holding directional data is grouped behind the lc_pid
// column in alphabetical order. The packed classification columns are
// kept.
func UnpackClassifications(t *table.Table) error {
	for _, column := range classificationColumns {
		if !t.HasColumn(column) {
			return fmt.Errorf("could not unpack classifications: no %q column", column)
		}
	}
	if !t.HasColumn(PIDColumn) {
		return fmt.Errorf("could not unpack classifications: no %q column", PIDColumn)
	}

	for _, column := range classificationColumns {
		names, err := directionClassifications(t, column)
		if err != nil {
			return fmt.Errorf("could not unpack classifications: %w", err)
		}
		base := strings.ReplaceAll(column, "Classifications", "_")
		for _, name := range names {
			t.AddColumn(base+name, table.Float(0))
		}
	}

	var directionCols []string
	for _, name := range t.Columns() {
		lower := strings.ToLower(name)
		for _, direction := range directionKeywords {
			if strings.Contains(lower, direction) {
				directionCols = append(directionCols, name)
				break
			}
		}
	}
	sort.Strings(directionCols)
	order := moveColumns(t.Columns(), directionCols, PIDColumn)
	// order is a permutation of the existing columns, so this cannot
	// fail.
	_ = t.ReorderColumns(order)

	for _, column := range classificationColumns {
		base := strings.ReplaceAll(column, "Classifications", "_")
		for row, cell := range t.Column(column) {
			if cell.IsNull() {
				continue
			}
			classifications, err := ExtractClassificationMap(cell.String())
			if err != nil {
				return fmt.Errorf("could not unpack classifications: %w", err)
			}
			for name, percent := range classifications {
				t.SetCell(base+classificationColumnName(name), row, table.Float(percent))
			}
		}
	}
	return nil
}

// moveColumns rebuilds the column order with the given columns placed
// directly after the reference column, which must exist.
func moveColumns(columns, move []string, after string) []string {
	ref := 0
	for i, name := range columns {
		if name == after {
			ref = i
			break
		}
	}
	moved := make(map[string]bool, len(move))
	for _, name := range move {
		moved[name] = true
	}
	order := make([]string, 0, len(columns))
	for _, name := range columns[:ref+1] {
		if !moved[name] {
			order = append(order, name)
		}
	}
	order = append(order, move...)
	for _, name := range columns[ref+1:] {
		if !moved[name] {
			order = append(order, name)
		}
	}
	return order
}

// PhotoBitFlags summarizes the six directional photo URL columns into
// six new columns: lc_PhotoCount counts the valid photos per row,
// lc_RejectedCount and lc_PendingCount count photos that were rejected
// or are awaiting approval, lc_EmptyCount counts directions without a
// photo record, lc_PhotoBitBinary encodes the presence of a photo per
// direction in up, down, north, south, east, west order (for example
// "110100" marks up, down and south photos), and lc_PhotoBitDecimal
// holds the numeric value of that mask.
func PhotoBitFlags(t *table.Table, up, down, north, south, east, west string) error {
	photoCols := []string{up, down, north, south, east, west}
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
	emptyCount := t.AddColumn(EmptyCountColumn, table.Int(0))
	bitBinary := t.AddColumn(PhotoBitBinaryColumn, table.Null())
	bitDecimal := t.AddColumn(PhotoBitDecimalColumn, table.Int(0))

	for row := 0; row < t.Len(); row++ {
		var photos, rejected, pending, empty int64
		mask := make([]byte, 0, len(sources))
		for _, cells := range sources {
			cell := cells[row]
			if cell.IsNull() {
				mask = append(mask, '0')
				empty++
				continue
			}
			urls := cell.String()
			if strings.Contains(urls, "http") {
				mask = append(mask, '1')
				photos += int64(strings.Count(urls, "http"))
			} else {
				mask = append(mask, '0')
			}
			pending += int64(strings.Count(urls, "pending"))
			rejected += int64(strings.Count(urls, "rejected"))
		}
		// The mask only ever holds binary digits.
		decimal, _ := strconv.ParseInt(string(mask), 2, 64)
		photoCount[row] = table.Int(photos)
		rejectedCount[row] = table.Int(rejected)
		pendingCount[row] = table.Int(pending)
		emptyCount[row] = table.Int(empty)
		bitBinary[row] = table.Str(string(mask))
		bitDecimal[row] = table.Int(decimal)
	}
	return nil
}

// ClassificationBitFlags summarizes the four directional classification
// columns into three new columns: lc_ClassificationCount counts the
// classified directions per row, lc_ClassificationBitBinary encodes the
// presence of a classification per direction in north, south, east,
// west order, and lc_ClassificationBitDecimal holds the numeric value
// of that mask.
func ClassificationBitFlags(t *table.Table, north, south, east, west string) error {
	classificationCols := []string{north, south, east, west}
	sources := make([][]table.Value, len(classificationCols))
	for i, name := range classificationCols {
		if !t.HasColumn(name) {
			return fmt.Errorf("could not flag classifications: no %q column", name)
		}
		sources[i] = t.Column(name)
	}

	count := t.AddColumn(ClassificationCountColumn, table.Int(0))
	bitBinary := t.AddColumn(ClassificationBitBinaryColumn, table.Null())
	bitDecimal := t.AddColumn(ClassificationBitDecimalColumn, table.Int(0))

	for row := 0; row < t.Len(); row++ {
		var classified int64
		mask := make([]byte, 0, len(sources))
		for _, cells := range sources {
			if cells[row].IsNull() {
				mask = append(mask, '0')
				continue
			}
			classified++
			mask = append(mask, '1')
		}
		decimal, _ := strconv.ParseInt(string(mask), 2, 64)
		count[row] = table.Int(classified)
		bitBinary[row] = table.Str(string(mask))
		bitDecimal[row] = table.Int(decimal)
	}
	return nil
}

// CompletionScores scores how complete each row is.
// lc_SubCompletenessScore is the filled fraction of the six photo and
// four classification directions, derived from the flags written by
// PhotoBitFlags and ClassificationBitFlags.
// lc_CumulativeCompletenessScore is the non-null fraction of all
// columns present before the two score columns, rounded to two decimal
// places.
func CompletionScores(t *table.Table) error {
	for _, required := range []string{PhotoBitBinaryColumn, ClassificationBitBinaryColumn} {
		if !t.HasColumn(required) {
			return fmt.Errorf("could not score completeness: no %q column", required)
		}
	}

	columns := len(t.Columns())
	photoBits := t.Column(PhotoBitBinaryColumn)
	classificationBits := t.Column(ClassificationBitBinaryColumn)

	sub := make([]table.Value, t.Len())
	cumulative := make([]table.Value, t.Len())
	for row := 0; row < t.Len(); row++ {
		mask := photoBits[row].String() + classificationBits[row].String()
		sub[row] = table.Float(float64(strings.Count(mask, "1")) / float64(len(mask)))
		cumulative[row] = table.Float(round2(float64(t.NonNullCount(row)) / float64(columns)))
	}
	copy(t.AddColumn(SubCompletenessColumn, table.Null()), sub)
	copy(t.AddColumn(CumulativeCompletenessColumn, table.Null()), cumulative)
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyCleanup runs the full cleanup procedure for raw land cover data
// and returns the cleaned copy. It removes homogenous columns, renames
// the latitude and longitude columns, shortens the column prefix,
// unpacks the packed classification cells, rounds numeric columns and
// standardizes null values.
func ApplyCleanup(t *table.Table) (*table.Table, error) {
	cleaned := t.Clone()
	cleanup.RemoveHomogenousColumns(cleaned)
	if err := cleanup.RenameLatLonColumns(cleaned); err != nil {
		return nil, fmt.Errorf("could not clean land cover data: %w", err)
	}
	CleanupColumnPrefix(cleaned)
	if err := UnpackClassifications(cleaned); err != nil {
		return nil, fmt.Errorf("could not clean land cover data: %w", err)
	}
	cleanup.RoundColumns(cleaned)
	cleanup.StandardizeNullValues(cleaned, table.Null())
	return cleaned, nil
}

// AddFlags adds the full set of interpretation flags to cleaned land
// cover data: photo summaries, classification summaries and
// completeness scores.
func AddFlags(t *table.Table) error {
	err := PhotoBitFlags(t, UpwardPhotoColumn, DownwardPhotoColumn, NorthPhotoColumn, SouthPhotoColumn, EastPhotoColumn, WestPhotoColumn)
	if err != nil {
		return err
	}
	err = ClassificationBitFlags(t, NorthClassificationsColumn, SouthClassificationsColumn, EastClassificationsColumn, WestClassificationsColumn)
	if err != nil {
		return err
	}
	return CompletionScores(t)
}

// QAFilterOptions selects which quality checks QAFilter applies. The
// zero value keeps every row.
type QAFilterOptions struct {
	// HasClassification keeps only rows with at least one direction
	// classified.
	HasClassification bool
	// HasPhoto keeps only rows with at least one valid photo.
	HasPhoto bool
	// HasAllClassifications keeps only rows with all four directions
	// classified.
	HasAllClassifications bool
	// HasAllPhotos keeps only rows with valid photos in all six
	// directions.
	HasAllPhotos bool
}

// Bit masks with every direction present.
const (
	allClassificationsMask = 1<<4 - 1
	allPhotosMask          = 1<<6 - 1
)

// QAFilter returns the rows of flagged land cover data that pass the
// requested quality checks.
func QAFilter(t *table.Table, opts QAFilterOptions) (*table.Table, error) {
	type check struct {
		column string
		keep   func(table.Value) bool
	}
	var checks []check
	if opts.HasClassification {
		checks = append(checks, check{ClassificationBitDecimalColumn, func(v table.Value) bool { return v.Int() > 0 }})
	}
	if opts.HasPhoto {
		checks = append(checks, check{PhotoBitDecimalColumn, func(v table.Value) bool { return v.Int() > 0 }})
	}
	if opts.HasAllClassifications {
		checks = append(checks, check{ClassificationBitDecimalColumn, func(v table.Value) bool { return v.Int() == allClassificationsMask }})
	}
	if opts.HasAllPhotos {
		checks = append(checks, check{PhotoBitDecimalColumn, func(v table.Value) bool { return v.Int() == allPhotosMask }})
	}
	for _, c := range checks {
		if !t.HasColumn(c.column) {
			return nil, fmt.Errorf("could not filter land cover data: no %q column", c.column)
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
