package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadCSV reads a CSV table whose first row names the fields. Short rows
// leave the missing fields out; extra cells are dropped.
func ReadCSV(r io.Reader) (*Dataset, error) {
	return readDelimited(r, ',')
}

func readDelimited(r io.Reader, comma rune) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = comma != '\t'
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(recs) == 0 {
		return nil, errors.New("csv: empty input")
	}
	header := make([]string, len(recs[0]))
	for i, h := range recs[0] {
		header[i] = strings.TrimSpace(h)
		if header[i] == "" {
			header[i] = fmt.Sprintf("col%d", i+1)
		}
	}
	d := &Dataset{Fields: header}
	for _, row := range recs[1:] {
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		rec := Record{}
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			rec[header[i]] = Typed(cell)
		}
		d.Records = append(d.Records, rec)
	}
	if len(d.Records) == 0 {
		return nil, errors.New("csv: no data rows")
	}
	return d, nil
}
