package claimledger

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet support for the transaction master. The source system hands the
// same tabular data either pipe-delimited or as a workbook; only the first
// sheet is meaningful. Unlike the text export, workbooks carry a header row.

// DecodeWorkbook reads records from the first sheet of an xlsx workbook.
func DecodeWorkbook(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}

	var records []Record
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == header[0] {
			continue
		}
		// GetRows trims trailing empty cells, restore the full width.
		for len(row) < len(header) {
			row = append(row, "")
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", sheets[0], i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// EncodeWorkbook writes records as an xlsx workbook with a single sheet and a
// header row.
func EncodeWorkbook(w io.Writer, records []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, rec := range records {
		if err := setRow(f, sheet, i+2, formatRow(rec)); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("cannot write row %d: %w", row, err)
	}
	return nil
}
