package claimledger

import "fmt"

// Expand normalizes one account's date-ordered records into a gap-free daily
// series covering the account's claim window.
//
// The window is the union of the group's claim dates: [min(claim start),
// max(claim end)]. Every calendar day in the window yields at least one row:
// days with transactions emit them as-is (claim dates normalized to the group
// window), days without emit exactly one synthetic row whose transaction
// columns are then forward-filled from the nearest preceding day. Rows before
// the first real row keep their columns null. Transactions dated outside the
// claim window do not appear in the output.
func Expand(records []Record) ([]Record, error) {
	if len(records) == 0 {
		return nil, nil
	}

	window := Range{From: records[0].ClaimStart, To: records[0].ClaimEnd}
	for _, r := range records[1:] {
		if r.ClaimStart.Before(window.From) {
			window.From = r.ClaimStart
		}
		if r.ClaimEnd.After(window.To) {
			window.To = r.ClaimEnd
		}
	}
	if window.To.Before(window.From) {
		return nil, fmt.Errorf("%w: %s before %s", ErrInvertedClaimWindow, window.To, window.From)
	}

	// Index rows by day. The input is date-ordered so per-day slices keep the
	// original relative order of same-day transactions.
	byDay := make(map[Date][]Record, len(records))
	for _, r := range records {
		byDay[r.Date] = append(byDay[r.Date], r)
	}

	account, ifsc := records[0].Account, records[0].IFSC

	expanded := make([]Record, 0, window.Len())
	for day := range window.Days() {
		if rows, ok := byDay[day]; ok {
			for _, r := range rows {
				r.ClaimStart, r.ClaimEnd = window.From, window.To
				expanded = append(expanded, r)
			}
			continue
		}
		expanded = append(expanded, Record{
			ClaimStart: window.From,
			ClaimEnd:   window.To,
			IFSC:       ifsc,
			Account:    account,
			Date:       day,
		})
	}

	forwardFill(expanded)
	return expanded, nil
}
