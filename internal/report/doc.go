// Package report renders textual summaries of flagged observation
// tables.
//
// A terminal workflow cannot assume a display environment, so instead
// of plots the diagnostics render as lipgloss styled headings over
// ASCII bar charts. This lets a download be inspected on the spot
// without writing a CSV first.
//
// # Mosquito Habitat Mapper
//
// [MosquitoSummary] reports the larvae count distribution, how often
// each photo subject appears, how many entries carry photos at all,
// and histograms of both completeness scores.
//
// # Land Cover
//
// [LandCoverSummary] reports the photo count distribution, which
// directions carry photos and classifications, totals of valid,
// rejected and empty photo records, and histograms of both
// completeness scores.
//
// Both expect tables that have been through the protocol's AddFlags.
package report
