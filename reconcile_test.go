package claimledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestReconcileClean(t *testing.T) {
	records := []Record{
		row(IndicatorOpening, DF(500), DF(500), DF(500)),
		row(IndicatorDebit, DF(50), DF(550), DF(500)),
	}
	rec, err := Reconstruct(records)
	if err != nil {
		t.Fatal(err)
	}
	out, mismatches := Reconcile("A1", rec)
	if len(mismatches) != 0 {
		t.Fatalf("want no mismatches, got %v", mismatches)
	}
	for i := range out {
		if !out[i].Outstanding.Decimal.Equal(records[i].Outstanding.Decimal) {
			t.Errorf("row %d: clean batch must pass through unchanged", i)
		}
	}
}

func TestReconcileOverwritesWholeBatch(t *testing.T) {
	// Only row 1 disagrees, yet the repair overwrites every row of the batch
	// with the reconstructed balances.
	records := []Record{
		row(IndicatorOpening, DF(500), DF(500), DF(500)),
		row(IndicatorDebit, DF(50), DF(999), DF(500)), // reported 999, replay says 550
		row(IndicatorCredit, DF(30), DF(520), DF(500)),
	}
	rec, err := Reconstruct(records)
	if err != nil {
		t.Fatal(err)
	}
	out, mismatches := Reconcile("A1", rec)

	if len(mismatches) != 1 {
		t.Fatalf("want 1 mismatch, got %d", len(mismatches))
	}
	m := mismatches[0]
	if m.Account != "A1" || m.Row != 1 || m.Kind != RunningCheck {
		t.Errorf("mismatch = %+v", m)
	}
	if delta, ok := m.Delta(); !ok || !delta.Equal(decimal.NewFromInt(449)) {
		t.Errorf("delta = %s (%v), want 449", delta, ok)
	}

	want := []int64{500, 550, 520}
	for i, w := range want {
		if !out[i].Outstanding.Decimal.Equal(decimal.NewFromInt(w)) {
			t.Errorf("row %d outstanding = %s, want %d", i, out[i].Outstanding.Decimal, w)
		}
		if !out[i].PrincipalDue.Decimal.Equal(decimal.NewFromInt(500)) {
			t.Errorf("row %d principal due = %s, want 500", i, out[i].PrincipalDue.Decimal)
		}
	}
}

func TestReconcileIdempotent(t *testing.T) {
	// A repaired batch replays clean: running Reconstruct+Reconcile a second
	// time must change nothing and report nothing.
	records := []Record{
		row(IndicatorOpening, DF(500), DF(123), DF(500)),
		row(IndicatorCarry, DF(20), DF(600), decimal.NullDecimal{}),
	}
	rec, err := Reconstruct(records)
	if err != nil {
		t.Fatal(err)
	}
	first, mismatches := Reconcile("A1", rec)
	if len(mismatches) == 0 {
		t.Fatal("fixture must mismatch on the first pass")
	}

	rec2, err := Reconstruct(first)
	if err != nil {
		t.Fatal(err)
	}
	second, mismatches2 := Reconcile("A1", rec2)
	if len(mismatches2) != 0 {
		t.Fatalf("second pass must be clean, got %v", mismatches2)
	}
	for i := range second {
		if !second[i].Outstanding.Decimal.Equal(first[i].Outstanding.Decimal) ||
			!second[i].PrincipalDue.Decimal.Equal(first[i].PrincipalDue.Decimal) {
			t.Errorf("row %d changed on second pass", i)
		}
	}
}

func TestMismatchDeltaNull(t *testing.T) {
	m := Mismatch{Reconstructed: decimal.NewFromInt(10)}
	if _, ok := m.Delta(); ok {
		t.Errorf("null reported value must not yield a delta")
	}
}
