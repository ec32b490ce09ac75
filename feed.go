package claimledger

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Feed pulls the balances an account is currently reported at from the
// source system's JSON API. The exact response shape varies per deployment,
// so the values are located with configurable jsonpath expressions instead of
// a fixed struct.
type Feed struct {
	// URL is the endpoint template; "{account}" is replaced by the account number.
	URL string
	// OutstandingPath and PrincipalPath locate the two reported balances in
	// the response, e.g. "$.balances.outstanding".
	OutstandingPath string
	PrincipalPath   string

	client *http.Client
}

// NewFeed creates a Feed backed by a client whose responses are cached on
// disk for the day.
func NewFeed(url, outstandingPath, principalPath string) *Feed {
	return &Feed{
		URL:             url,
		OutstandingPath: outstandingPath,
		PrincipalPath:   principalPath,
		client:          daily(),
	}
}

// Snapshot is the pair of balances the source system reports for an account
// right now.
type Snapshot struct {
	Account      string
	Outstanding  decimal.Decimal
	PrincipalDue decimal.Decimal
}

// Fetch retrieves the reported balance snapshot for one account.
func (f *Feed) Fetch(account string) (Snapshot, error) {
	addr := strings.ReplaceAll(f.URL, "{account}", account)

	var jobj any
	if err := jwget(f.client, addr, &jobj); err != nil {
		return Snapshot{}, fmt.Errorf("error in wget %q: %w", account, err)
	}

	outstanding, err := f.extract(jobj, f.OutstandingPath)
	if err != nil {
		return Snapshot{}, fmt.Errorf("account %q outstanding: %w", account, err)
	}
	principal, err := f.extract(jobj, f.PrincipalPath)
	if err != nil {
		return Snapshot{}, fmt.Errorf("account %q principal due: %w", account, err)
	}
	return Snapshot{Account: account, Outstanding: outstanding, PrincipalDue: principal}, nil
}

// extract evaluates one jsonpath expression into a decimal amount.
func (f *Feed) extract(jobj any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("value %q at %q is not an amount: %w", v, path, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("value at %q is not an amount: %v", path, jval)
	}
}

// Verify compares a snapshot against the last expanded row of an account and
// returns the mismatches, if any. Reconstructed values are taken from the
// ledger side, the snapshot is the reported side.
func (s Snapshot) Verify(last Record) []Mismatch {
	var mismatches []Mismatch
	if last.Outstanding.Valid {
		if !snap(s.Outstanding.Sub(last.Outstanding.Decimal)).IsZero() {
			mismatches = append(mismatches, Mismatch{
				Account:       s.Account,
				Kind:          RunningCheck,
				Reported:      D(s.Outstanding),
				Reconstructed: last.Outstanding.Decimal,
			})
		}
	}
	if last.PrincipalDue.Valid {
		if !snap(s.PrincipalDue.Sub(last.PrincipalDue.Decimal)).IsZero() {
			mismatches = append(mismatches, Mismatch{
				Account:       s.Account,
				Kind:          PrincipalCheck,
				Reported:      D(s.PrincipalDue),
				Reconstructed: last.PrincipalDue.Decimal,
			})
		}
	}
	return mismatches
}
