package claimledger

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// EncodeRecords writes records to w in the pipe-delimited transaction master
// format, with a header row. Dates are written ISO-8601; null amounts become
// empty cells.
func EncodeRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(formatRow(rec)); err != nil {
			return fmt.Errorf("cannot write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatRow renders one Record in canonical column order.
func formatRow(rec Record) []string {
	return []string{
		rec.ClaimStart.String(),
		rec.ClaimEnd.String(),
		rec.IFSC,
		rec.Account,
		rec.Date.String(),
		rec.Type,
		string(rec.Indicator),
		formatAmount(rec.Amount),
		formatAmount(rec.Outstanding),
		formatAmount(rec.PrincipalDue),
	}
}

func formatAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
