package claimledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options configures a pipeline run.
type Options struct {
	// Workers bounds the number of accounts processed concurrently.
	// Zero or one means sequential.
	Workers int

	// RequireRecords makes an empty input a hard error instead of an empty
	// result.
	RequireRecords bool

	// Logger receives per-account progress and correction events.
	// The zero value logs nothing.
	Logger zerolog.Logger
}

// Report is the observability side of a run: what was corrected, what failed,
// and the before/after row counts the source system operators care about.
type Report struct {
	RunID      uuid.UUID
	Accounts   int
	InputRows  int
	OutputRows int
	Mismatches []Mismatch
	Errors     []*AccountError
}

// Corrected reports whether at least one account had its reported balances
// overwritten with reconstructed values.
func (r *Report) Corrected() bool { return len(r.Mismatches) > 0 }

// Result is the outcome of a run: the expanded daily table plus its report.
// When some accounts failed, Records still holds every healthy account.
type Result struct {
	Records []Record
	Report  *Report
}

// group is one account's records in their input order.
type group struct {
	account string
	records []Record
}

// groupByAccount splits records per account, keeping accounts in order of
// first appearance and records in input order within each account.
func groupByAccount(records []Record) []group {
	index := make(map[string]int)
	var groups []group
	for _, r := range records {
		i, ok := index[r.Account]
		if !ok {
			i = len(groups)
			index[r.Account] = i
			groups = append(groups, group{account: r.Account})
		}
		groups[i].records = append(groups[i].records, r)
	}
	return groups
}

// processAccount runs the three per-account stages in sequence:
// reconstruction, reconciliation, calendar expansion.
func processAccount(g group) ([]Record, []Mismatch, error) {
	// A broken claim window makes the whole account meaningless, reject it
	// before replaying any balance.
	for _, r := range g.records {
		if r.ClaimEnd.Before(r.ClaimStart) {
			return nil, nil, fmt.Errorf("%w: %s before %s", ErrInvertedClaimWindow, r.ClaimEnd, r.ClaimStart)
		}
	}

	// The fold is strictly chronological; ties keep their input order.
	records := make([]Record, len(g.records))
	copy(records, g.records)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	rec, err := Reconstruct(records)
	if err != nil {
		return nil, nil, err
	}
	reconciled, mismatches := Reconcile(g.account, rec)

	expanded, err := Expand(reconciled)
	if err != nil {
		return nil, nil, err
	}
	return expanded, mismatches, nil
}

// Run executes the full pipeline over a parsed batch: per-account balance
// reconstruction, reconciliation of reported values, and calendar expansion.
//
// Accounts are independent and processed concurrently up to opts.Workers; the
// output is deterministic regardless: accounts appear in order of first
// appearance in the input, date-ascending within each account. A failing
// account never aborts the others; its error is recorded on the report and
// joined into the returned error.
func Run(records []Record, opts Options) (*Result, error) {
	report := &Report{RunID: uuid.New(), InputRows: len(records)}

	if len(records) == 0 {
		if opts.RequireRecords {
			return nil, ErrEmptyInput
		}
		return &Result{Report: report}, nil
	}

	groups := groupByAccount(records)
	report.Accounts = len(groups)
	opts.Logger.Info().
		Stringer("run_id", report.RunID).
		Int("rows", len(records)).
		Int("accounts", len(groups)).
		Msg("starting reconciliation run")

	// Each worker owns a distinct index in these slices, the only join point
	// is the WaitGroup.
	expanded := make([][]Record, len(groups))
	mismatched := make([][]Mismatch, len(groups))
	failures := make([]*AccountError, len(groups))

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, g := range groups {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, g group) {
			defer wg.Done()
			defer func() { <-sem }()
			rows, mm, err := processAccount(g)
			if err != nil {
				failures[i] = &AccountError{Account: g.account, Err: err}
				return
			}
			expanded[i], mismatched[i] = rows, mm
		}(i, g)
	}
	wg.Wait()

	var errs error
	result := &Result{Report: report}
	for i, g := range groups {
		if failures[i] != nil {
			report.Errors = append(report.Errors, failures[i])
			errs = errors.Join(errs, failures[i])
			opts.Logger.Error().Str("account", g.account).Err(failures[i].Err).Msg("account rejected")
			continue
		}
		result.Records = append(result.Records, expanded[i]...)
		report.Mismatches = append(report.Mismatches, mismatched[i]...)
		if n := len(mismatched[i]); n > 0 {
			opts.Logger.Warn().Str("account", g.account).Int("mismatches", n).
				Msg("reported balances corrected to reconstructed values")
		}
	}
	report.OutputRows = len(result.Records)

	opts.Logger.Info().
		Stringer("run_id", report.RunID).
		Int("rows_out", report.OutputRows).
		Int("mismatches", len(report.Mismatches)).
		Int("failed_accounts", len(report.Errors)).
		Msg("run complete")
	return result, errs
}
