// Package ingest turns external raw sources, a quote API response or an
// uploaded tabular file, into rows for normalization.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/etfgraph/etfgraph/normalize"
)

// ReadCSV parses tabular text into header-keyed rows. The first record is
// the header; short records leave the missing trailing columns empty.
func ReadCSV(r io.Reader) ([]normalize.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []normalize.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := make(normalize.Row, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadCSVFile is ReadCSV over a file on disk.
func ReadCSVFile(path string) ([]normalize.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}
