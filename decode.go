package claimledger

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// This file reads the source system's pipe-delimited transaction master
// export into typed Records. The export is headerless with a fixed column
// order; files produced by EncodeRecords carry a header row, which is
// recognized and skipped so outputs can be re-ingested.

// header is the canonical column order of the transaction master format.
var header = []string{
	"CLAIM_START_DATE",
	"CLAIM_END_DATE",
	"IFSC_CODE",
	"ACCOUNT_NUMBER",
	"TRANSACTION_DATE",
	"TRANSACTION_TYPE",
	"TRANSACTION_INDICATOR",
	"TRANSACTION_AMOUNT",
	"OUTSTANDING_AMT",
	"EFFECTIVE_PRINCP_DUE_AMT",
}

// Delimiter is the field separator of the text export format.
const Delimiter = '|'

// DecodeRecords reads a pipe-delimited transaction master export from r.
//
// Records are returned in file order; the pipeline relies on that order to
// break same-day ties.
func DecodeRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = len(header)

	var records []Record
	line := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read transaction master: %w", err)
		}
		line++
		if line == 1 && fields[0] == header[0] {
			// A header row means this file is one of our own outputs.
			continue
		}
		rec, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseRow converts one raw row in canonical column order into a Record.
func parseRow(fields []string) (Record, error) {
	if len(fields) != len(header) {
		return Record{}, fmt.Errorf("want %d columns, got %d", len(header), len(fields))
	}

	var rec Record
	var err error
	if rec.ClaimStart, err = ParseDate(fields[0]); err != nil {
		return Record{}, fmt.Errorf("claim start date: %w", err)
	}
	if rec.ClaimEnd, err = ParseDate(fields[1]); err != nil {
		return Record{}, fmt.Errorf("claim end date: %w", err)
	}
	rec.IFSC = fields[2]
	rec.Account = fields[3]
	if rec.Date, err = ParseDate(fields[4]); err != nil {
		return Record{}, fmt.Errorf("transaction date: %w", err)
	}
	rec.Type = fields[5]
	if fields[6] != "" {
		if rec.Indicator, err = ParseIndicator(fields[6]); err != nil {
			return Record{}, err
		}
	}
	if rec.Amount, err = parseAmount(fields[7]); err != nil {
		return Record{}, fmt.Errorf("transaction amount: %w", err)
	}
	if rec.Outstanding, err = parseAmount(fields[8]); err != nil {
		return Record{}, fmt.Errorf("outstanding amount: %w", err)
	}
	if rec.PrincipalDue, err = parseAmount(fields[9]); err != nil {
		return Record{}, fmt.Errorf("principal due amount: %w", err)
	}
	return rec, nil
}

// parseAmount parses a decimal cell, mapping an empty cell to null.
func parseAmount(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return D(d), nil
}
