package table

import (
	"math"
	"testing"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), ""},
		{"text", Str("ovitrap"), "ovitrap"},
		{"int", Int(-9999), "-9999"},
		{"float", Float(19.11093), "19.11093"},
		{"whole float", Float(60.0), "60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_AsFloat(t *testing.T) {
	tests := []struct {
		name   string
		v      Value
		want   float64
		wantOK bool
	}{
		{"int", Int(25), 25, true},
		{"float", Float(2.5), 2.5, true},
		{"numeric text", Str("200"), 200, true},
		{"scientific text", Str("1e+27"), 1e27, true},
		{"plain text", Str("more than 100"), 0, false},
		{"null", Null(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.AsFloat()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("AsFloat() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestValue_FloatOfNullIsNaN(t *testing.T) {
	if !math.IsNaN(Null().Float()) {
		t.Error("Float() of null should be NaN")
	}
}

func TestTable_AppendRowAndCell(t *testing.T) {
	tbl := New("name", "count")
	tbl.AppendRow(map[string]Value{"name": Str("pond"), "count": Int(3)})
	tbl.AppendRow(map[string]Value{"name": Str("ditch")})

	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
	if got := tbl.Cell("name", 1).String(); got != "ditch" {
		t.Errorf("Cell(name, 1) = %q, want %q", got, "ditch")
	}
	if !tbl.Cell("count", 1).IsNull() {
		t.Error("missing map entries should append null cells")
	}
	if !tbl.Cell("absent", 0).IsNull() {
		t.Error("Cell on a missing column should be null")
	}
}

func TestTable_UniqueCount(t *testing.T) {
	tbl := New("a")
	if err := tbl.SetColumn("a", []Value{Str("x"), Str("x"), Null(), Null(), Str("y")}); err != nil {
		t.Fatal(err)
	}

	// "x", "y" and a single collapsed null.
	if got := tbl.UniqueCount("a"); got != 3 {
		t.Errorf("UniqueCount = %d, want 3", got)
	}

	allNull := New("b")
	if err := allNull.SetColumn("b", []Value{Null(), Null()}); err != nil {
		t.Fatal(err)
	}
	if got := allNull.UniqueCount("b"); got != 1 {
		t.Errorf("UniqueCount of all-null column = %d, want 1", got)
	}
}

func TestTable_FilterRows(t *testing.T) {
	tbl := New("n")
	if err := tbl.SetColumn("n", []Value{Int(1), Int(2), Int(3), Int(4)}); err != nil {
		t.Fatal(err)
	}

	even := tbl.FilterRows(func(row int) bool {
		return tbl.Cell("n", row).Int()%2 == 0
	})

	if even.Len() != 2 {
		t.Fatalf("filtered Len() = %d, want 2", even.Len())
	}
	if even.Cell("n", 0).Int() != 2 || even.Cell("n", 1).Int() != 4 {
		t.Error("filter should keep rows in order")
	}

	// The filtered copy must not share storage with the source.
	even.SetCell("n", 0, Int(99))
	if tbl.Cell("n", 1).Int() != 2 {
		t.Error("writing to a filtered table changed the source")
	}
}

func TestTable_ReorderColumns(t *testing.T) {
	tbl := New("a", "b", "c")
	tbl.AppendRow(map[string]Value{"a": Int(1), "b": Int(2), "c": Int(3)})

	if err := tbl.ReorderColumns([]string{"c", "a", "b"}); err != nil {
		t.Fatal(err)
	}
	cols := tbl.Columns()
	if cols[0] != "c" || cols[1] != "a" || cols[2] != "b" {
		t.Errorf("Columns() = %v, want [c a b]", cols)
	}
	if tbl.Cell("c", 0).Int() != 3 {
		t.Error("reorder must keep cells attached to their column")
	}

	if err := tbl.ReorderColumns([]string{"a", "b"}); err == nil {
		t.Error("reorder with missing columns should fail")
	}
}

func TestTable_RenameAndDrop(t *testing.T) {
	tbl := New("latitude", "longitude", "extra")
	tbl.AppendRow(map[string]Value{
		"latitude":  Float(1.5),
		"longitude": Float(2.5),
		"extra":     Str("x"),
	})

	tbl.RenameColumns(map[string]string{"latitude": "MGRSLatitude", "missing": "nope"})
	if !tbl.HasColumn("MGRSLatitude") || tbl.HasColumn("latitude") {
		t.Error("RenameColumns did not apply")
	}

	tbl.DropColumn("extra")
	if tbl.HasColumn("extra") {
		t.Error("DropColumn did not remove the column")
	}
	if got := len(tbl.Columns()); got != 2 {
		t.Errorf("column count = %d, want 2", got)
	}
}

func TestTable_NonNullCount(t *testing.T) {
	tbl := New("a", "b", "c")
	tbl.AppendRow(map[string]Value{"a": Str("x"), "c": Int(1)})
	tbl.AppendRow(map[string]Value{})

	if got := tbl.NonNullCount(0); got != 2 {
		t.Errorf("NonNullCount(0) = %d, want 2", got)
	}
	if got := tbl.NonNullCount(1); got != 0 {
		t.Errorf("NonNullCount(1) = %d, want 0", got)
	}
}

func TestTable_GroupKey(t *testing.T) {
	tbl := New("a", "b")
	tbl.AppendRow(map[string]Value{"a": Str("x"), "b": Int(1)})
	tbl.AppendRow(map[string]Value{"a": Str("x"), "b": Int(1)})
	tbl.AppendRow(map[string]Value{"a": Str("x"), "b": Int(2)})

	if tbl.GroupKey([]string{"a", "b"}, 0) != tbl.GroupKey([]string{"a", "b"}, 1) {
		t.Error("identical rows should share a group key")
	}
	if tbl.GroupKey([]string{"a", "b"}, 0) == tbl.GroupKey([]string{"a", "b"}, 2) {
		t.Error("differing rows should not share a group key")
	}
}
