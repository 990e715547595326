package model

import "time"

// Date layouts used by GLOBE measurement fields. Measurement timestamps
// carry a time of day; plain measurement dates do not.
const (
	MeasuredDateTimeLayout = "2006-01-02 15:04:05"
	MeasuredDateLayout     = "2006-01-02"
)

// ParseMeasuredDate parses a GLOBE date string, trying the timestamped
// layout first and falling back to the date-only layout. The second
// return value reports whether the string was parseable.
func ParseMeasuredDate(s string) (time.Time, bool) {
	for _, layout := range []string{MeasuredDateTimeLayout, MeasuredDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
