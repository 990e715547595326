// Package lc cleans, flags and filters land cover observations.
//
// # Cleanup
//
// [ApplyCleanup] takes a raw download and returns a cleaned copy:
//
//	cleaned, err := lc.ApplyCleanup(raw)
//	if err != nil {
//		return err
//	}
//
// # Unpacking the classification data
//
// The classification data for each direction is condensed into a single
// cell holding entries separated by semicolons, such as "60% MUC 02 (b)
// [Trees, Closely Spaced, Deciduous - Broad Leaved]".
// [UnpackClassifications] parses the descriptions and percentages into
// one column per distinct land cover description and direction, in four
// steps:
//
//  1. Collect the distinct camel cased descriptions (such as
//     HerbaceousGrasslandTallGrass) recorded in each of the four
//     directional classification columns.
//  2. Create a column per direction and description, named like
//     lc_West_TreesCloselySpaced. The columns start at 0 rather than
//     null so they stay numeric through the rest of the cleanup.
//  3. Group every column whose name mentions a direction behind the
//     lc_pid column, sorted alphabetically, to keep the directional
//     data together.
//  4. Fill each classification column with its percentage, row by row.
//
// The packed classification columns are kept alongside the unpacked
// ones. A fully unpacked dataset holds around 250 columns.
//
// # Flags
//
// [AddFlags] adds the interpretation flags to cleaned data: photo
// summaries ([PhotoBitFlags]), classification summaries
// ([ClassificationBitFlags]) and completeness scores
// ([CompletionScores]).
//
// # Quality filtering
//
// [QAFilter] keeps the rows that pass the requested checks:
//
//	filtered, err := lc.QAFilter(flagged, lc.QAFilterOptions{
//		HasAllPhotos: true,
//	})
package lc
