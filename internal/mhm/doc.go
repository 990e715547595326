// Package mhm cleans, flags and filters mosquito habitat mapper
// observations.
//
// # Cleanup
//
// [ApplyCleanup] takes a raw download and returns a cleaned copy:
//
//	cleaned, err := mhm.ApplyCleanup(raw)
//	if err != nil {
//		return err
//	}
//
// # Larvae counts
//
// Larvae counts arrive from the API as strings. [LarvaeToNum] converts
// them to integers and has to account for four kinds of entries:
//
//   - regular counts, converted as-is
//   - extraneously large counts (above 100, as it is hard to count more
//     than that amount accurately), capped at 101 with the magnitude
//     recorded in the LarvaeCountMagnitude flag
//   - ranges such as "25-50", which keep their lower bound and set the
//     LarvaeCountIsRangeFlag flag
//   - null values, set to -9999
//
// The magnitude flag holds the order of magnitude (0 to 4) by which a
// count exceeds the maximum reliable count of 100:
//
//	0: count of 100 or less
//	1: count between 101 and 999
//	2: count between 1000 and 9999
//	3: count between 10000 and 99999
//	4: count of 100000 or more
//
// A few counts are so large they arrive in scientific notation
// ("1e+27"); a preprocessing step sets those to 100000, which lands in
// the maximum magnitude bucket.
//
// # Flags
//
// [AddFlags] adds the interpretation flags to cleaned data: genus
// presence ([HasGenusFlag]) and disease interest ([InfectiousGenusFlag]),
// water source presence ([HasWaterSourceFlag]) and kind
// ([IsContainerFlag]), photo summaries ([PhotoBitFlags]) and
// completeness scores ([CompletionScoreFlag]).
//
// # Quality filtering
//
// [QAFilter] keeps the rows that pass the requested checks:
//
//	filtered, err := mhm.QAFilter(flagged, mhm.QAFilterOptions{
//		HasGenus:  true,
//		HasPhotos: true,
//	})
package mhm
