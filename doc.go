// Package claimledger reconciles per-account transaction ledgers against the
// balances reported by the source system, and normalizes them into gap-free
// daily time series.
//
// The core is a two-stage batch pipeline:
//   - Balance Reconstruction: each account's transactions are replayed in
//     chronological order through a small state machine keyed on the
//     transaction indicator, producing a running balance and a principal
//     balance per row. The reconstructed values are checked against the
//     reported ones within a fixed tolerance.
//   - Calendar Expansion: each account's rows are expanded to cover every
//     calendar day of its claim window, with the latest known transaction
//     state forward-filled into the synthetic gap days.
//
// Between the two stages, reported balances found in disagreement are
// overwritten by the reconstructed ones (report-and-repair: discrepancies are
// corrected, never fatal, and surfaced on the run report). Accounts are
// independent and the pipeline processes them concurrently.
//
// The package also handles the source system's exchange formats: the
// pipe-delimited transaction master export and its spreadsheet variant.
// This package serves as the foundational logic for the `clm` command-line
// tool.
package claimledger
