package table

import (
	"math"
	"strconv"
)

// Kind identifies what a Value holds.
type Kind uint8

const (
	// KindNull marks a missing observation.
	KindNull Kind = iota
	// KindString holds free-form text.
	KindString
	// KindInt holds a 64-bit integer.
	KindInt
	// KindFloat holds a 64-bit float.
	KindFloat
)

// Value is a single table cell. The zero value is null.
//
// Values are immutable; transforms that change a cell replace it with a
// newly constructed Value.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Str returns a string Value.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Kind reports what the Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the Value is missing.
func (v Value) IsNull() bool { return v.kind == KindNull }

// String renders the Value the way it appears in a CSV cell: null as the
// empty string, integers in base 10, and floats in the shortest 'f' form
// that round-trips (so 60.0 renders as "60" and 19.11093 as "19.11093").
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return ""
	}
}

// Int returns the Value as an int64, truncating floats. Non-numeric
// Values return 0.
func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return int64(v.f)
	default:
		return 0
	}
}

// Float returns the Value as a float64. Non-numeric Values return NaN.
func (v Value) Float() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	default:
		return math.NaN()
	}
}

// AsFloat returns the numeric form of the Value, parsing string cells if
// needed. The second return is false when the Value has no numeric form.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsNumeric reports whether the Value is an Int or Float.
func (v Value) IsNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// Equal reports whether two Values hold the same kind and content. All
// null Values compare equal to each other, mirroring how distinct counts
// collapse missing data.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	default:
		return true
	}
}

// key is a comparable identity used for distinct counts and group keys.
func (v Value) key() string {
	switch v.kind {
	case KindString:
		return "s:" + v.str
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return ""
	}
}

// inferValue parses a raw CSV cell according to the column kind chosen by
// type inference.
func inferValue(raw string, kind Kind) Value {
	if raw == "" {
		return Null()
	}
	switch kind {
	case KindInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Str(raw)
		}
		return Int(i)
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Str(raw)
		}
		return Float(f)
	default:
		return Str(raw)
	}
}
