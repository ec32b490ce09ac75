package claimledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Indicator is the single-letter code classifying a ledger entry's effect on
// the account balances.
type Indicator string

// Indicator values used by the source system.
const (
	IndicatorNone    Indicator = ""  // synthetic gap rows carry no indicator until forward-filled
	IndicatorOpening Indicator = "O" // opening balance
	IndicatorPayment Indicator = "P" // payment received
	IndicatorDebit   Indicator = "D" // debit adjustment
	IndicatorCredit  Indicator = "C" // credit adjustment
	IndicatorCarry   Indicator = "B" // balance carried forward
	IndicatorLate    Indicator = "L" // late marker, no balance effect
)

// ParseIndicator validates a raw indicator value from an upstream file.
func ParseIndicator(s string) (Indicator, error) {
	switch in := Indicator(s); in {
	case IndicatorOpening, IndicatorPayment, IndicatorDebit, IndicatorCredit, IndicatorCarry, IndicatorLate:
		return in, nil
	default:
		return IndicatorNone, fmt.Errorf("%w: %q", ErrUnknownIndicator, s)
	}
}

// Record is one ledger entry as reported by the source system.
//
// The three amount fields are nullable: rows parsed from a file carry valid
// values, while synthetic rows emitted by calendar expansion start null and
// are forward-filled afterwards.
type Record struct {
	ClaimStart Date   // start of the account's claim window
	ClaimEnd   Date   // end of the account's claim window
	IFSC       string // routing identifier, opaque
	Account    string // account number, the grouping key
	Date       Date   // transaction date
	Type       string // transaction type, opaque, passed through
	Indicator  Indicator

	Amount       decimal.NullDecimal // transaction amount
	Outstanding  decimal.NullDecimal // reported running balance
	PrincipalDue decimal.NullDecimal // reported principal balance
}

// Window returns the claim window of the record.
func (r Record) Window() Range { return Range{From: r.ClaimStart, To: r.ClaimEnd} }

// amount returns the transaction amount, treating a missing value as zero.
func (r Record) amount() decimal.Decimal {
	if !r.Amount.Valid {
		return decimal.Zero
	}
	return r.Amount.Decimal
}

// D wraps a decimal into a valid NullDecimal.
func D(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// DF is a convenience wrapper building a valid NullDecimal from a float.
func DF(f float64) decimal.NullDecimal { return D(decimal.NewFromFloat(f)) }

// fillColumn replaces, in row order, a missing value with the most recent
// preceding non-missing value of the same column. Rows before the first
// non-missing value are left untouched.
func fillColumn[T any](rows []Record, get func(*Record) (T, bool), set func(*Record, T)) {
	var last T
	var seen bool
	for i := range rows {
		if v, ok := get(&rows[i]); ok {
			last, seen = v, true
			continue
		}
		if seen {
			set(&rows[i], last)
		}
	}
}

// forwardFill fills the transaction columns of a single account group:
// type, indicator, amount, outstanding and principal due. Claim window,
// account, IFSC and transaction date are identity columns and never filled.
func forwardFill(rows []Record) {
	fillColumn(rows,
		func(r *Record) (string, bool) { return r.Type, r.Type != "" },
		func(r *Record, v string) { r.Type = v })
	fillColumn(rows,
		func(r *Record) (Indicator, bool) { return r.Indicator, r.Indicator != IndicatorNone },
		func(r *Record, v Indicator) { r.Indicator = v })
	fillColumn(rows,
		func(r *Record) (decimal.Decimal, bool) { return r.Amount.Decimal, r.Amount.Valid },
		func(r *Record, v decimal.Decimal) { r.Amount = D(v) })
	fillColumn(rows,
		func(r *Record) (decimal.Decimal, bool) { return r.Outstanding.Decimal, r.Outstanding.Valid },
		func(r *Record, v decimal.Decimal) { r.Outstanding = D(v) })
	fillColumn(rows,
		func(r *Record) (decimal.Decimal, bool) { return r.PrincipalDue.Decimal, r.PrincipalDue.Valid },
		func(r *Record, v decimal.Decimal) { r.PrincipalDue = D(v) })
}
