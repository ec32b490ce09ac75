package claimledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tolerance under which a balance check is considered clean. Amounts coming
// from upstream systems carry negligible rounding noise around the 8th
// decimal, anything larger is a genuine discrepancy.
var tolerance = decimal.New(1, -8)

// CheckKind identifies which reconstructed balance a check compares against.
type CheckKind string

const (
	RunningCheck   CheckKind = "running"
	PrincipalCheck CheckKind = "principal"
)

// BalanceLine is a Record annotated with the balances reconstructed from the
// transaction history, and the checks against the reported values.
//
// A check is null when the source row carried no reported value to compare
// against; such rows always count as mismatched, since the reconstructed
// value cannot be confirmed.
type BalanceLine struct {
	Record
	RunningBalance   decimal.Decimal
	PrincipalBalance decimal.Decimal
	RunningDelta     decimal.NullDecimal // reported outstanding − running balance
	PrincipalDelta   decimal.NullDecimal // reported principal due − principal balance
}

// Reconstruction is the annotated output of replaying one account's history.
type Reconstruction struct {
	Lines []BalanceLine

	// Row indices (within Lines) whose check is non-zero.
	RunningMismatches   []int
	PrincipalMismatches []int
}

// Clean reports whether every check came out zero.
func (r *Reconstruction) Clean() bool {
	return len(r.RunningMismatches) == 0 && len(r.PrincipalMismatches) == 0
}

// nextRunning folds the previous running balance through one record.
func nextRunning(prev decimal.Decimal, r Record) (decimal.Decimal, error) {
	switch r.Indicator {
	case IndicatorOpening:
		return r.amount(), nil
	case IndicatorPayment, IndicatorLate:
		return prev, nil
	case IndicatorDebit, IndicatorCarry:
		return prev.Add(r.amount()), nil
	case IndicatorCredit:
		return prev.Sub(r.amount()), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownIndicator, string(r.Indicator))
	}
}

// nextPrincipal folds the previous principal balance through one record.
func nextPrincipal(prev decimal.Decimal, r Record) (decimal.Decimal, error) {
	switch r.Indicator {
	case IndicatorOpening:
		if !r.PrincipalDue.Valid {
			return decimal.Zero, nil
		}
		return r.PrincipalDue.Decimal, nil
	case IndicatorPayment:
		return prev.Sub(r.amount()), nil
	case IndicatorDebit, IndicatorCredit, IndicatorLate:
		return prev, nil
	case IndicatorCarry:
		return prev.Add(r.amount()), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownIndicator, string(r.Indicator))
	}
}

// snap rounds a check down to exactly zero when it is within tolerance.
func snap(d decimal.Decimal) decimal.Decimal {
	if d.Abs().LessThanOrEqual(tolerance) {
		return decimal.Zero
	}
	return d
}

// Reconstruct replays one account's transaction history in order, starting
// from a zero balance, and annotates every record with the reconstructed
// running and principal balances and their checks against the reported values.
//
// The input must already be sorted by transaction date (ties in original
// input order); the fold is strictly left-to-right with no lookahead.
func Reconstruct(records []Record) (*Reconstruction, error) {
	rec := &Reconstruction{Lines: make([]BalanceLine, 0, len(records))}

	running, principal := decimal.Zero, decimal.Zero
	for i, r := range records {
		var err error
		running, err = nextRunning(running, r)
		if err != nil {
			return nil, fmt.Errorf("row %d on %s: %w", i, r.Date, err)
		}
		principal, err = nextPrincipal(principal, r)
		if err != nil {
			return nil, fmt.Errorf("row %d on %s: %w", i, r.Date, err)
		}

		line := BalanceLine{Record: r, RunningBalance: running, PrincipalBalance: principal}

		if r.Outstanding.Valid {
			line.RunningDelta = D(snap(r.Outstanding.Decimal.Sub(running)))
		}
		if !line.RunningDelta.Valid || !line.RunningDelta.Decimal.IsZero() {
			rec.RunningMismatches = append(rec.RunningMismatches, i)
		}

		if r.PrincipalDue.Valid {
			line.PrincipalDelta = D(snap(r.PrincipalDue.Decimal.Sub(principal)))
		}
		if !line.PrincipalDelta.Valid || !line.PrincipalDelta.Decimal.IsZero() {
			rec.PrincipalMismatches = append(rec.PrincipalMismatches, i)
		}

		rec.Lines = append(rec.Lines, line)
	}
	return rec, nil
}
