// Package table parses lines whose first row holds the field titles.
package table

import (
	"parsefile/internal/fieldsplit"
	"parsefile/internal/record"
)

// Parse splits lines on sep, takes the first row as titles and maps every
// following row onto them. No lines, or only the title line, yields no
// records.
func Parse(lines []string, sep string) ([]record.Record, error) {
	_, recs, err := ParseTitled(lines, sep, false)
	return recs, err
}

// ParseStrict is Parse but fails on repeated titles.
func ParseStrict(lines []string, sep string) ([]record.Record, error) {
	_, recs, err := ParseTitled(lines, sep, true)
	return recs, err
}

// ParseTitled returns the title row along with the records, splitting each
// line once. With strict set, a repeated title is an error even when there
// are no data rows.
func ParseTitled(lines []string, sep string, strict bool) ([]string, []record.Record, error) {
	rows, err := fieldsplit.Split(lines, sep)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return []string{}, []record.Record{}, nil
	}
	titles, rows := rows[0], rows[1:]

	if strict && len(rows) == 0 {
		if err := record.CheckTitles(titles); err != nil {
			return nil, nil, err
		}
	}

	out := make([]record.Record, len(rows))
	for i, row := range rows {
		if !strict {
			out[i] = record.FromValues(titles, row)
			continue
		}
		if out[i], err = record.FromValuesStrict(titles, row); err != nil {
			return nil, nil, err
		}
	}
	return titles, out, nil
}
