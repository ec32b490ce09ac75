package claimledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestExpand(t *testing.T) {
	// A 5-day window with a single opening on day 3: days 1-2 stay null,
	// days 3-5 carry the opening forward.
	records := []Record{{
		ClaimStart:   MustParseDate("01-01-2024"),
		ClaimEnd:     MustParseDate("05-01-2024"),
		IFSC:         "BANK0001",
		Account:      "A1",
		Date:         MustParseDate("03-01-2024"),
		Type:         "EMI",
		Indicator:    IndicatorOpening,
		Amount:       DF(100),
		Outstanding:  DF(100),
		PrincipalDue: DF(100),
	}}

	out, err := Expand(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 5 {
		t.Fatalf("want 5 rows, got %d", len(out))
	}

	for i, r := range out {
		want := MustParseDate("01-01-2024").Add(i)
		if r.Date != want {
			t.Errorf("row %d date = %v, want %v", i, r.Date, want)
		}
		if r.Account != "A1" || r.IFSC != "BANK0001" {
			t.Errorf("row %d identity = %q/%q", i, r.Account, r.IFSC)
		}
		if r.ClaimStart != MustParseDate("01-01-2024") || r.ClaimEnd != MustParseDate("05-01-2024") {
			t.Errorf("row %d claim window = %v..%v", i, r.ClaimStart, r.ClaimEnd)
		}
	}

	for _, i := range []int{0, 1} {
		if out[i].Amount.Valid || out[i].Indicator != IndicatorNone || out[i].Type != "" {
			t.Errorf("row %d before the first transaction must stay null, got %+v", i, out[i])
		}
	}
	for _, i := range []int{2, 3, 4} {
		if !out[i].Amount.Valid || !out[i].Amount.Decimal.Equal(decimal.NewFromInt(100)) {
			t.Errorf("row %d amount = %v, want 100", i, out[i].Amount)
		}
		if out[i].Indicator != IndicatorOpening || out[i].Type != "EMI" {
			t.Errorf("row %d not filled: %+v", i, out[i])
		}
	}
}

func TestExpandWindowUnion(t *testing.T) {
	// Rows disagreeing on the claim window expand over the union and come out
	// normalized to it.
	records := []Record{
		{
			ClaimStart: MustParseDate("02-01-2024"), ClaimEnd: MustParseDate("04-01-2024"),
			Account: "A1", Date: MustParseDate("02-01-2024"), Indicator: IndicatorOpening, Amount: DF(10),
		},
		{
			ClaimStart: MustParseDate("01-01-2024"), ClaimEnd: MustParseDate("06-01-2024"),
			Account: "A1", Date: MustParseDate("05-01-2024"), Indicator: IndicatorDebit, Amount: DF(1),
		},
	}
	out, err := Expand(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 6 {
		t.Fatalf("want 6 rows over the union window, got %d", len(out))
	}
	for i, r := range out {
		if r.ClaimStart != MustParseDate("01-01-2024") || r.ClaimEnd != MustParseDate("06-01-2024") {
			t.Errorf("row %d window not normalized: %v..%v", i, r.ClaimStart, r.ClaimEnd)
		}
	}
}

func TestExpandSameDayOrder(t *testing.T) {
	// Two transactions on the same day keep their input order.
	day := MustParseDate("01-01-2024")
	records := []Record{
		{ClaimStart: day, ClaimEnd: day, Account: "A1", Date: day, Type: "first", Indicator: IndicatorOpening, Amount: DF(1)},
		{ClaimStart: day, ClaimEnd: day, Account: "A1", Date: day, Type: "second", Indicator: IndicatorDebit, Amount: DF(2)},
	}
	out, err := Expand(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 rows, got %d", len(out))
	}
	if out[0].Type != "first" || out[1].Type != "second" {
		t.Errorf("same-day order lost: %q, %q", out[0].Type, out[1].Type)
	}
}

func TestExpandInvertedWindow(t *testing.T) {
	records := []Record{{
		ClaimStart: MustParseDate("05-01-2024"),
		ClaimEnd:   MustParseDate("01-01-2024"),
		Account:    "A1",
		Date:       MustParseDate("02-01-2024"),
		Indicator:  IndicatorOpening,
	}}
	_, err := Expand(records)
	if !errors.Is(err, ErrInvertedClaimWindow) {
		t.Fatalf("want ErrInvertedClaimWindow, got %v", err)
	}
}

func TestExpandEmpty(t *testing.T) {
	out, err := Expand(nil)
	if err != nil || out != nil {
		t.Errorf("Expand(nil) = %v, %v", out, err)
	}
}
