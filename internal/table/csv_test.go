package table

import (
	"strings"
	"testing"
)

func TestReadCSV_TypeInference(t *testing.T) {
	input := strings.Join([]string{
		"id,score,label,mixed,empty",
		"1,0.5,pond,10,",
		"2,1,ditch,more than 100,",
		"3,-9999,lake,25-50,",
	}, "\n") + "\n"

	tbl, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		column string
		want   Kind
	}{
		{"id", KindInt},
		{"score", KindFloat},
		{"label", KindString},
		{"mixed", KindString},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			if got := tbl.Cell(tt.column, 0).Kind(); got != tt.want {
				t.Errorf("kind = %v, want %v", got, tt.want)
			}
		})
	}

	if !tbl.Cell("empty", 0).IsNull() {
		t.Error("empty cells should be null")
	}
	if got := tbl.Cell("mixed", 0).String(); got != "10" {
		t.Errorf("mixed column should keep text form, got %q", got)
	}
	if got := tbl.Cell("score", 2).Float(); got != -9999 {
		t.Errorf("score[2] = %v, want -9999", got)
	}
}

func TestReadCSV_EmptyCellsStayNullInNumericColumns(t *testing.T) {
	input := "count\n5\n\n7\n"
	tbl, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if !tbl.Cell("count", 1).IsNull() {
		t.Error("empty numeric cell should be null")
	}
	if tbl.Cell("count", 2).Int() != 7 {
		t.Error("inference should survive interleaved empties")
	}
}

func TestReadCSV_NoHeader(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("reading empty input should fail")
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl := New("name", "lat", "note")
	tbl.AppendRow(map[string]Value{
		"name": Str("site;one"),
		"lat":  Float(19.11093),
		"note": Null(),
	})
	tbl.AppendRow(map[string]Value{
		"name": Str(`say "hi"`),
		"lat":  Float(-3.5),
		"note": Str("ok"),
	})

	var buf strings.Builder
	if err := tbl.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}

	back, err := ReadCSV(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if back.Len() != 2 {
		t.Fatalf("round trip Len() = %d, want 2", back.Len())
	}
	if got := back.Cell("name", 0).String(); got != "site;one" {
		t.Errorf("name[0] = %q, want %q", got, "site;one")
	}
	if got := back.Cell("lat", 0).Float(); got != 19.11093 {
		t.Errorf("lat[0] = %v, want 19.11093", got)
	}
	if !back.Cell("note", 0).IsNull() {
		t.Error("null cell should stay null through a round trip")
	}
}
