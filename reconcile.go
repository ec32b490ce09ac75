package claimledger

import "github.com/shopspring/decimal"

// Mismatch is one row whose reported balance disagrees with the value
// reconstructed from the transaction history. Mismatches are never fatal;
// they are corrected silently and surfaced for observability only.
type Mismatch struct {
	Account       string
	Row           int // index within the account's date-ordered rows
	Kind          CheckKind
	Reported      decimal.NullDecimal // null when the source carried no value
	Reconstructed decimal.Decimal
}

// Delta returns reported − reconstructed, or false when there was no
// reported value.
func (m Mismatch) Delta() (decimal.Decimal, bool) {
	if !m.Reported.Valid {
		return decimal.Zero, false
	}
	return m.Reported.Decimal.Sub(m.Reconstructed), true
}

// Reconcile applies the repair policy to one account's reconstruction.
//
// When any check failed, the reconstructed balances become authoritative:
// reported outstanding and principal due are overwritten on every row of the
// batch, not just the mismatched ones. When all checks are clean the records
// pass through unchanged. Either way the derived columns are dropped and the
// returned records have the same shape as the input.
func Reconcile(account string, rec *Reconstruction) ([]Record, []Mismatch) {
	records := make([]Record, len(rec.Lines))
	for i, line := range rec.Lines {
		records[i] = line.Record
	}

	var mismatches []Mismatch
	for _, i := range rec.RunningMismatches {
		mismatches = append(mismatches, Mismatch{
			Account:       account,
			Row:           i,
			Kind:          RunningCheck,
			Reported:      rec.Lines[i].Outstanding,
			Reconstructed: rec.Lines[i].RunningBalance,
		})
	}
	for _, i := range rec.PrincipalMismatches {
		mismatches = append(mismatches, Mismatch{
			Account:       account,
			Row:           i,
			Kind:          PrincipalCheck,
			Reported:      rec.Lines[i].PrincipalDue,
			Reconstructed: rec.Lines[i].PrincipalBalance,
		})
	}

	if len(mismatches) > 0 {
		for i := range records {
			records[i].Outstanding = D(rec.Lines[i].RunningBalance)
			records[i].PrincipalDue = D(rec.Lines[i].PrincipalBalance)
		}
	}
	return records, mismatches
}
