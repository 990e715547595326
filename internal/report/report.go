package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/IGES-Geospatial/globe-observer-go/internal/cleanup"
	"github.com/IGES-Geospatial/globe-observer-go/internal/lc"
	"github.com/IGES-Geospatial/globe-observer-go/internal/mhm"
	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

// Styles for the summary output.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// barWidth is the length of the longest bar in a chart.
const barWidth = 40

// Photo subject bits in mhm_PhotoBitDecimal.
const (
	watersourceBit = 4
	larvaeBit      = 2
	abdomenBit     = 1
)

// Direction labels in the order the photo and classification bit masks
// encode them.
var (
	photoDirections          = []string{"Up", "Down", "North", "South", "East", "West"}
	classificationDirections = []string{"North", "South", "East", "West"}
)

// MosquitoSummary renders a textual overview of flagged mosquito
// habitat mapper data: the larvae count distribution, how often each
// photo subject appears, how many entries carry photos at all, and
// histograms of both completeness scores.
func MosquitoSummary(t *table.Table) (string, error) {
	required := []string{
		mhm.LarvaeCountColumn,
		mhm.PhotoBitDecimalColumn,
		mhm.SubCompletenessColumn,
		mhm.CumulativeCompletenessColumn,
	}
	if err := requireColumns(t, "mosquito habitat mapper", required); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Mosquito Habitat Mapper"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d entries", t.Len())))
	b.WriteString("\n\n")

	decimals := t.Column(mhm.PhotoBitDecimalColumn)
	sections := []string{
		renderChart("Larvae Counts", intDistribution(t.Column(mhm.LarvaeCountColumn))),
		renderChart("Photo Subjects", photoSubjects(decimals)),
		renderChart("Photo Coverage", photoCoverage(decimals)),
		renderChart("Sub Completeness", scoreHistogram(t.Column(mhm.SubCompletenessColumn))),
		renderChart("Cumulative Completeness", scoreHistogram(t.Column(mhm.CumulativeCompletenessColumn))),
	}
	b.WriteString(strings.Join(sections, "\n"))
	return b.String(), nil
}

// LandCoverSummary renders a textual overview of flagged land cover
// data: the photo count distribution, which directions carry photos
// and classifications, totals of valid, rejected and empty photo
// records, and histograms of both completeness scores.
func LandCoverSummary(t *table.Table) (string, error) {
	required := []string{
		lc.PhotoCountColumn,
		lc.RejectedCountColumn,
		lc.EmptyCountColumn,
		lc.PhotoBitBinaryColumn,
		lc.ClassificationBitBinaryColumn,
		lc.SubCompletenessColumn,
		lc.CumulativeCompletenessColumn,
	}
	if err := requireColumns(t, "land cover", required); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Land Cover"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d entries", t.Len())))
	b.WriteString("\n\n")

	records := []chartRow{
		{label: "Valid", count: columnTotal(t.Column(lc.PhotoCountColumn))},
		{label: "Rejected", count: columnTotal(t.Column(lc.RejectedCountColumn))},
		{label: "Empty", count: columnTotal(t.Column(lc.EmptyCountColumn))},
	}
	sections := []string{
		renderChart("Photos per Entry", intDistribution(t.Column(lc.PhotoCountColumn))),
		renderChart("Photos by Direction", maskFrequencies(t.Column(lc.PhotoBitBinaryColumn), photoDirections)),
		renderChart("Classifications by Direction", maskFrequencies(t.Column(lc.ClassificationBitBinaryColumn), classificationDirections)),
		renderChart("Photo Records", records),
		renderChart("Sub Completeness", scoreHistogram(t.Column(lc.SubCompletenessColumn))),
		renderChart("Cumulative Completeness", scoreHistogram(t.Column(lc.CumulativeCompletenessColumn))),
	}
	b.WriteString(strings.Join(sections, "\n"))
	return b.String(), nil
}

func requireColumns(t *table.Table, protocol string, columns []string) error {
	for _, name := range columns {
		if !t.HasColumn(name) {
			return fmt.Errorf("could not summarize %s data: no %q column", protocol, name)
		}
	}
	return nil
}

// chartRow is one labelled bar of a chart.
type chartRow struct {
	label string
	count int
}

func renderChart(heading string, rows []chartRow) string {
	labelWidth, maxCount := 0, 0
	for _, row := range rows {
		if len(row.label) > labelWidth {
			labelWidth = len(row.label)
		}
		if row.count > maxCount {
			maxCount = row.count
		}
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(heading))
	b.WriteString("\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "  %-*s %6d", labelWidth, row.label, row.count)
		if bar := renderBar(row.count, maxCount); bar != "" {
			b.WriteString("  ")
			b.WriteString(bar)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderBar scales a count against the chart maximum. Counts above zero
// always get at least one mark.
func renderBar(count, maxCount int) string {
	if count <= 0 || maxCount <= 0 {
		return ""
	}
	width := count * barWidth / maxCount
	if width < 1 {
		width = 1
	}
	return barStyle.Render(strings.Repeat("#", width))
}

// intDistribution counts how often each integer value appears. Null
// cells land in the -9999 bucket.
func intDistribution(cells []table.Value) []chartRow {
	counts := make(map[int64]int)
	for _, cell := range cells {
		value := int64(cleanup.NullSentinel)
		if !cell.IsNull() {
			value = cell.Int()
		}
		counts[value]++
	}

	values := make([]int64, 0, len(counts))
	for value := range counts {
		values = append(values, value)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	rows := make([]chartRow, len(values))
	for i, value := range values {
		rows[i] = chartRow{label: strconv.FormatInt(value, 10), count: counts[value]}
	}
	return rows
}

// photoSubjects counts how many entries carry a photo of each subject.
func photoSubjects(decimals []table.Value) []chartRow {
	subjects := []struct {
		label string
		bit   int64
	}{
		{"Watersource", watersourceBit},
		{"Larvae", larvaeBit},
		{"Abdomen", abdomenBit},
	}

	rows := make([]chartRow, len(subjects))
	for i, subject := range subjects {
		rows[i] = chartRow{label: subject.label}
	}
	for _, cell := range decimals {
		for i, subject := range subjects {
			if cell.Int()&subject.bit != 0 {
				rows[i].count++
			}
		}
	}
	return rows
}

// photoCoverage splits entries into those with at least one photo and
// those without any.
func photoCoverage(decimals []table.Value) []chartRow {
	rows := []chartRow{{label: "With photos"}, {label: "Without photos"}}
	for _, cell := range decimals {
		if cell.Int() > 0 {
			rows[0].count++
		} else {
			rows[1].count++
		}
	}
	return rows
}

// maskFrequencies counts set positions across bit masks such as
// "110100", labelled per position.
func maskFrequencies(cells []table.Value, labels []string) []chartRow {
	rows := make([]chartRow, len(labels))
	for i, label := range labels {
		rows[i] = chartRow{label: label}
	}
	for _, cell := range cells {
		mask := cell.String()
		for i := 0; i < len(mask) && i < len(labels); i++ {
			if mask[i] == '1' {
				rows[i].count++
			}
		}
	}
	return rows
}

// scoreHistogram buckets completeness scores into ten equal intervals
// over [0, 1].
func scoreHistogram(cells []table.Value) []chartRow {
	var buckets [10]int
	for _, cell := range cells {
		score, ok := cell.AsFloat()
		if !ok {
			continue
		}
		bucket := int(score * 10)
		if bucket < 0 {
			bucket = 0
		}
		// A score of exactly 1 belongs in the top bucket.
		if bucket > 9 {
			bucket = 9
		}
		buckets[bucket]++
	}

	rows := make([]chartRow, len(buckets))
	for i, count := range buckets {
		rows[i] = chartRow{
			label: fmt.Sprintf("%.1f - %.1f", float64(i)/10, float64(i+1)/10),
			count: count,
		}
	}
	return rows
}

func columnTotal(cells []table.Value) int {
	total := 0
	for _, cell := range cells {
		if !cell.IsNull() {
			total += int(cell.Int())
		}
	}
	return total
}
