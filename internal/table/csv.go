package table

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
)

// ErrEmptyCSV is returned when the input has no header row.
var ErrEmptyCSV = errors.New("csv input has no header row")

// ReadCSV reads a dataset with a header row.
//
// Column types are inferred the way a dataframe load would: a column whose
// non-empty cells all parse as integers becomes an Int column, one whose
// cells all parse as floats becomes a Float column, and anything else
// stays text. Empty cells are null regardless of column type.
func ReadCSV(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyCSV
	}

	header := records[0]
	body := records[1:]
	t := New(header...)
	for i := range header {
		kind := inferColumnKind(body, i)
		cells := make([]Value, len(body))
		for row, record := range body {
			cells[row] = inferValue(record[i], kind)
		}
		t.data[i] = cells
	}
	t.rows = len(body)
	return t, nil
}

// inferColumnKind scans one column of raw records and picks the narrowest
// kind that fits every non-empty cell.
func inferColumnKind(records [][]string, col int) Kind {
	kind := KindInt
	sawValue := false
	for _, record := range records {
		raw := record[col]
		if raw == "" {
			continue
		}
		sawValue = true
		if kind == KindInt {
			if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
				continue
			}
			kind = KindFloat
		}
		if kind == KindFloat {
			if _, err := strconv.ParseFloat(raw, 64); err == nil {
				continue
			}
			kind = KindString
		}
		if kind == KindString {
			break
		}
	}
	if !sawValue {
		return KindString
	}
	return kind
}

// ReadCSVFile reads a dataset from a file path.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV writes the table with a header row. Null cells are written as
// empty strings; no row index column is emitted.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.cols); err != nil {
		return err
	}
	record := make([]string, len(t.cols))
	for row := 0; row < t.rows; row++ {
		for i := range t.cols {
			record[i] = t.data[i][row].String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the table to a file path, truncating any existing
// file.
func (t *Table) WriteCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
