// Package cmd implements the CLI application to reconcile and expand
// transaction master files.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aifis/claimledger"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// Commands lists every subcommand the tool registers, in display order.
var Commands = []subcommands.Command{
	&runCmd{},
	&checkCmd{},
	&convertCmd{},
	&fetchCmd{},
	&assistCmd{},
	&topicCmd{},
}

// readRecords loads a transaction master file, picking the codec from the
// file extension (.xlsx/.xls for workbooks, anything else is pipe-delimited).
func readRecords(filename string) ([]claimledger.Record, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file %q: %w", filename, err)
	}
	defer f.Close()

	if isWorkbook(filename) {
		return claimledger.DecodeWorkbook(f)
	}
	return claimledger.DecodeRecords(f)
}

// writeRecords writes records to filename, picking the codec from the file
// extension like readRecords does.
func writeRecords(filename string, records []claimledger.Record) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create output file %q: %w", filename, err)
	}
	defer f.Close()

	if isWorkbook(filename) {
		return claimledger.EncodeWorkbook(f, records)
	}
	return claimledger.EncodeRecords(f, records)
}

func isWorkbook(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}
