package claimledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// ledgerRow builds a full record for pipeline tests. Claim window is fixed to
// January 1-5 2024 unless the test overrides it.
func ledgerRow(account, date string, in Indicator, amount, outstanding, principal float64) Record {
	return Record{
		ClaimStart:   MustParseDate("01-01-2024"),
		ClaimEnd:     MustParseDate("05-01-2024"),
		IFSC:         "BANK0001",
		Account:      account,
		Date:         MustParseDate(date),
		Type:         "EMI",
		Indicator:    in,
		Amount:       DF(amount),
		Outstanding:  DF(outstanding),
		PrincipalDue: DF(principal),
	}
}

func TestRunTwoAccounts(t *testing.T) {
	// Two interleaved accounts: grouping must keep them independent and the
	// output must list A1's days before A2's.
	records := []Record{
		ledgerRow("A1", "01-01-2024", IndicatorOpening, 500, 500, 500),
		ledgerRow("A2", "01-01-2024", IndicatorOpening, 900, 900, 900),
		ledgerRow("A1", "03-01-2024", IndicatorDebit, 50, 550, 500),
	}

	result, err := Run(records, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := len(result.Records); got != 10 {
		t.Fatalf("want 10 output rows (2 accounts over 5 days), got %d", got)
	}
	for i := 0; i < 5; i++ {
		if result.Records[i].Account != "A1" {
			t.Errorf("row %d account = %q, want A1 first", i, result.Records[i].Account)
		}
		if result.Records[5+i].Account != "A2" {
			t.Errorf("row %d account = %q, want A2 second", 5+i, result.Records[5+i].Account)
		}
	}

	// No cross-account leakage: A2 has a single opening, its filled days must
	// carry 900, never A1's values.
	for _, r := range result.Records[5:] {
		if !r.Outstanding.Decimal.Equal(decimal.NewFromInt(900)) {
			t.Errorf("A2 on %v outstanding = %s, want 900", r.Date, r.Outstanding.Decimal)
		}
	}

	report := result.Report
	if report.Accounts != 2 || report.InputRows != 3 || report.OutputRows != 10 {
		t.Errorf("report counts = %+v", report)
	}
	if report.Corrected() {
		t.Errorf("clean input must not be corrected: %v", report.Mismatches)
	}
}

func TestRunOutOfOrderDates(t *testing.T) {
	// Transactions arrive date-shuffled; the replay must still fold them in
	// chronological order.
	records := []Record{
		ledgerRow("A1", "03-01-2024", IndicatorDebit, 50, 550, 500),
		ledgerRow("A1", "01-01-2024", IndicatorOpening, 500, 500, 500),
	}
	result, err := Run(records, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Report.Corrected() {
		t.Errorf("chronological replay must be clean, got %v", result.Report.Mismatches)
	}
	if got := result.Records[0].Date; got != MustParseDate("01-01-2024") {
		t.Errorf("first output row on %v, want 2024-01-01", got)
	}
}

func TestRunDeterministic(t *testing.T) {
	records := []Record{
		ledgerRow("A1", "01-01-2024", IndicatorOpening, 500, 500, 500),
		ledgerRow("A2", "01-01-2024", IndicatorOpening, 900, 900, 900),
		ledgerRow("A3", "01-01-2024", IndicatorOpening, 100, 100, 100),
	}
	first, err := Run(records, Options{Workers: 8})
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		again, err := Run(records, Options{Workers: 8})
		if err != nil {
			t.Fatal(err)
		}
		if len(again.Records) != len(first.Records) {
			t.Fatalf("row count changed between runs")
		}
		for i := range again.Records {
			if again.Records[i].Account != first.Records[i].Account ||
				again.Records[i].Date != first.Records[i].Date {
				t.Fatalf("row %d differs between runs", i)
			}
		}
	}
}

func TestRunPartialFailure(t *testing.T) {
	// A1 carries an unknown indicator; A2 is healthy. The run returns A2's
	// rows and reports A1's failure, both on the error and the report.
	bad := ledgerRow("A1", "01-01-2024", IndicatorOpening, 500, 500, 500)
	bad.Indicator = Indicator("X")
	records := []Record{
		bad,
		ledgerRow("A2", "01-01-2024", IndicatorOpening, 900, 900, 900),
	}

	result, err := Run(records, Options{})
	if !errors.Is(err, ErrUnknownIndicator) {
		t.Fatalf("want ErrUnknownIndicator, got %v", err)
	}
	var accErr *AccountError
	if !errors.As(err, &accErr) || accErr.Account != "A1" {
		t.Errorf("error must identify the failing account: %v", err)
	}
	if len(result.Report.Errors) != 1 {
		t.Errorf("report errors = %v", result.Report.Errors)
	}
	if got := len(result.Records); got != 5 {
		t.Errorf("want A2's 5 rows despite A1 failing, got %d", got)
	}
	for _, r := range result.Records {
		if r.Account != "A2" {
			t.Errorf("unexpected account %q in output", r.Account)
		}
	}
}

func TestRunInvertedWindowRejectsAccount(t *testing.T) {
	bad := ledgerRow("A1", "02-01-2024", IndicatorOpening, 500, 500, 500)
	bad.ClaimStart, bad.ClaimEnd = MustParseDate("05-01-2024"), MustParseDate("01-01-2024")

	result, err := Run([]Record{bad}, Options{})
	if !errors.Is(err, ErrInvertedClaimWindow) {
		t.Fatalf("want ErrInvertedClaimWindow, got %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("rejected account must contribute no rows")
	}
}

func TestRunCorrection(t *testing.T) {
	records := []Record{
		ledgerRow("A1", "01-01-2024", IndicatorOpening, 500, 500, 500),
		ledgerRow("A1", "02-01-2024", IndicatorDebit, 50, 999, 500), // reported 999, replay says 550
	}
	result, err := Run(records, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Report.Corrected() {
		t.Fatal("want a correction")
	}
	// Every output day carries reconstructed balances after the repair.
	for _, r := range result.Records {
		want := decimal.NewFromInt(550)
		if r.Date == MustParseDate("01-01-2024") {
			want = decimal.NewFromInt(500)
		}
		if !r.Outstanding.Decimal.Equal(want) {
			t.Errorf("on %v outstanding = %s, want %s", r.Date, r.Outstanding.Decimal, want)
		}
	}
}

func TestRunEmpty(t *testing.T) {
	result, err := Run(nil, Options{})
	if err != nil {
		t.Fatalf("empty input is not an error by default: %v", err)
	}
	if len(result.Records) != 0 || result.Report.Accounts != 0 {
		t.Errorf("empty input must yield an empty result")
	}

	if _, err := Run(nil, Options{RequireRecords: true}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("want ErrEmptyInput in strict mode, got %v", err)
	}
}
