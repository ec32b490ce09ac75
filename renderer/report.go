package renderer

import (
	"github.com/aifis/claimledger"
)

// reportView is the flattened shape handed to the report templates.
type reportView struct {
	RunID      string
	Accounts   int
	InputRows  int
	OutputRows int
	Corrected  bool
	Mismatches []mismatchView
	Errors     []string
}

type mismatchView struct {
	Account       string
	Row           int
	Kind          string
	Reported      string
	Reconstructed string
	Delta         string
}

// Report renders a run report to a markdown string.
func Report(r *claimledger.Report) string {
	view := reportView{
		RunID:      r.RunID.String(),
		Accounts:   r.Accounts,
		InputRows:  r.InputRows,
		OutputRows: r.OutputRows,
		Corrected:  r.Corrected(),
	}
	for _, m := range r.Mismatches {
		mv := mismatchView{
			Account:       m.Account,
			Row:           m.Row,
			Kind:          string(m.Kind),
			Reported:      "-",
			Reconstructed: formatAmount(m.Reconstructed),
			Delta:         "-",
		}
		if m.Reported.Valid {
			mv.Reported = formatAmount(m.Reported.Decimal)
		}
		if delta, ok := m.Delta(); ok {
			mv.Delta = formatAmount(delta)
		}
		view.Mismatches = append(view.Mismatches, mv)
	}
	for _, e := range r.Errors {
		view.Errors = append(view.Errors, e.Error())
	}

	partials := map[string]string{
		"report_summary":    "report_summary.md",
		"report_mismatches": "report_mismatches.md",
		"report_errors":     "report_errors.md",
	}
	return renderTemplate("report", "report.md", partials, view)
}
