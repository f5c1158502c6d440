// Package listing turns package identifiers into display-ready records.
//
// # Pipeline
//
// Identifiers come from a search, the local inventory, a manifest file, or
// the command line. [Normalizer.Normalize] looks up index metadata and
// download counts for each one and returns a [Record] per identifier, in
// input order. [Presenter.Display] optionally sorts the records and writes
// one block per record.
//
// # Missing Releases
//
// A pinned identifier whose release is not on the index (common for
// locally built or yanked versions) does not fail the run. The record is
// built from the latest release instead, marked [StatusLatestFallback], and
// its Version explains what happened.
//
// # Download Counts
//
// Counts are cosmetic. When the statistics service is unavailable the
// record carries 0 downloads and a warning is logged.
package listing
