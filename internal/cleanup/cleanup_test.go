package cleanup

import (
	"testing"

	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

func TestRemoveHomogenousColumns(t *testing.T) {
	tbl := table.New("col_1", "col_2")
	tbl.AppendRow(map[string]table.Value{"col_1": table.Int(3), "col_2": table.Int(0)})
	tbl.AppendRow(map[string]table.Value{"col_1": table.Int(2), "col_2": table.Int(0)})
	tbl.AppendRow(map[string]table.Value{"col_1": table.Int(1), "col_2": table.Int(0)})

	RemoveHomogenousColumns(tbl)

	if tbl.HasColumn("col_2") {
		t.Error("col_2 holds one value and should have been dropped")
	}
	if !tbl.HasColumn("col_1") {
		t.Error("col_1 should have been kept")
	}
}

func TestRemoveHomogenousColumns_AllNull(t *testing.T) {
	tbl := table.New("empty", "mixed")
	tbl.AppendRow(map[string]table.Value{"mixed": table.Str("a")})
	tbl.AppendRow(map[string]table.Value{"mixed": table.Null()})

	RemoveHomogenousColumns(tbl)

	if tbl.HasColumn("empty") {
		t.Error("all-null column should have been dropped")
	}
	if !tbl.HasColumn("mixed") {
		t.Error("column with a value and a null should have been kept")
	}
}

// The protocol may be given in its official underscored form or
// without underscores; both must strip the same prefix.
func TestReplaceColumnPrefix(t *testing.T) {
	for _, protocol := range []string{"land_covers", "landcovers"} {
		t.Run(protocol, func(t *testing.T) {
			tbl := table.New("landcoversTest1", "landcoversTest2")
			tbl.AppendRow(map[string]table.Value{
				"landcoversTest1": table.Int(1),
				"landcoversTest2": table.Int(1),
			})

			ReplaceColumnPrefix(tbl, protocol, "lc")

			if tbl.HasColumn("landcoversTest1") || tbl.HasColumn("landcoversTest2") {
				t.Error("old column names should be gone")
			}
			if !tbl.HasColumn("lc_Test1") || !tbl.HasColumn("lc_Test2") {
				t.Errorf("want lc_Test1 and lc_Test2, got %v", tbl.Columns())
			}
		})
	}
}

func TestRenameLatLonColumns(t *testing.T) {
	tbl := table.New("latitude", "longitude", "testMeasurementLatitude", "testMeasurementLongitude")
	tbl.AppendRow(map[string]table.Value{
		"latitude":                 table.Int(1),
		"longitude":                table.Int(2),
		"testMeasurementLatitude":  table.Int(3),
		"testMeasurementLongitude": table.Int(4),
	})

	if err := RenameLatLonColumns(tbl); err != nil {
		t.Fatalf("RenameLatLonColumns failed: %v", err)
	}

	tests := []struct {
		column   string
		expected int64
	}{
		{"Latitude", 3},
		{"Longitude", 4},
		{"MGRSLatitude", 1},
		{"MGRSLongitude", 2},
	}
	for _, tt := range tests {
		if got := tbl.Cell(tt.column, 0).Int(); got != tt.expected {
			t.Errorf("%s = %d, want %d", tt.column, got, tt.expected)
		}
	}
}

func TestRenameLatLonColumns_MissingMeasurementColumns(t *testing.T) {
	tbl := table.New("latitude", "longitude")
	tbl.AppendRow(map[string]table.Value{"latitude": table.Int(1), "longitude": table.Int(2)})

	if err := RenameLatLonColumns(tbl); err == nil {
		t.Error("expected error when measurement coordinate columns are missing")
	}
}

func TestRoundColumns(t *testing.T) {
	tbl := table.New("Latitude", "longitude", "number", "text")
	tbl.AppendRow(map[string]table.Value{
		"Latitude":  table.Float(1.123456),
		"longitude": table.Float(2.123),
		"number":    table.Float(3.212),
		"text":      table.Str("text"),
	})

	RoundColumns(tbl)

	if got := tbl.Cell("Latitude", 0); got.Kind() != table.KindFloat || got.Float() != 1.12346 {
		t.Errorf("Latitude = %v, want 1.12346", got.String())
	}
	if got := tbl.Cell("longitude", 0); got.Kind() != table.KindFloat || got.Float() != 2.123 {
		t.Errorf("longitude = %v, want 2.123", got.String())
	}
	if got := tbl.Cell("number", 0); got.Kind() != table.KindInt || got.Int() != 3 {
		t.Errorf("number = %v, want int 3", got.String())
	}
	if got := tbl.Cell("text", 0); got.String() != "text" {
		t.Errorf("text = %q, want unchanged", got.String())
	}
}

func TestRoundColumns_NullsBecomeSentinel(t *testing.T) {
	tbl := table.New("Latitude", "elevation")
	tbl.AppendRow(map[string]table.Value{"Latitude": table.Null(), "elevation": table.Null()})
	tbl.AppendRow(map[string]table.Value{"Latitude": table.Float(1.5), "elevation": table.Float(20.7)})

	RoundColumns(tbl)

	if got := tbl.Cell("Latitude", 0); got.Float() != NullSentinel {
		t.Errorf("null Latitude = %v, want %d", got.String(), NullSentinel)
	}
	if got := tbl.Cell("elevation", 0); got.Kind() != table.KindInt || got.Int() != NullSentinel {
		t.Errorf("null elevation = %v, want int %d", got.String(), NullSentinel)
	}
	if got := tbl.Cell("elevation", 1); got.Kind() != table.KindInt || got.Int() != 20 {
		t.Errorf("elevation = %v, want truncated int 20", got.String())
	}
}

// The "." replacement keeps replaced cells distinguishable from real
// nulls; actual pipelines pass table.Null().
func TestStandardizeNullValues(t *testing.T) {
	tbl := table.New("data")
	inputs := []table.Value{
		table.Str(""), table.Str("nan"), table.Str("null"), table.Str("NaN"),
		table.Null(), table.Str("test"), table.Int(5), table.Null(),
	}
	for _, v := range inputs {
		tbl.AppendRow(map[string]table.Value{"data": v})
	}

	StandardizeNullValues(tbl, table.Str("."))

	desired := []string{".", ".", ".", ".", ".", "test", "5", "."}
	for i, want := range desired {
		if got := tbl.Cell("data", i).String(); got != want {
			t.Errorf("data[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestFindColumn(t *testing.T) {
	tbl := table.New("alpha", "betaKeyword", "gammaKeyword")
	tbl.AppendRow(map[string]table.Value{})

	got, err := FindColumn(tbl, "Keyword")
	if err != nil {
		t.Fatalf("FindColumn failed: %v", err)
	}
	if got != "betaKeyword" {
		t.Errorf("FindColumn = %q, want first match betaKeyword", got)
	}

	if _, err := FindColumn(tbl, "missing"); err == nil {
		t.Error("expected error for absent keyword")
	}
}
