// Package pipeline runs one parse job: read a file, split it per mode and
// hand the result to an output writer.
package pipeline

import (
	"fmt"
	"strings"

	"parsefile/internal/fieldsplit"
	"parsefile/internal/output"
	"parsefile/internal/record"
	"parsefile/internal/table"
	"parsefile/internal/textfile"
)

type Mode string

const (
	Lines   Mode = "lines"
	Fields  Mode = "fields"
	Records Mode = "records"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Lines, Fields, Records:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (use lines, fields or records)", s)
}

type Job struct {
	Path      string
	Mode      Mode
	Separator string
	// StrictTitles rejects repeated titles instead of letting the last win.
	StrictTitles bool
}

// Defaults are the three files the loader reads when given nothing else.
func Defaults(sep string) []Job {
	return []Job{
		{Path: "items.txt", Mode: Lines, Separator: sep},
		{Path: "items.csv", Mode: Fields, Separator: sep},
		{Path: "items-with-titles.csv", Mode: Records, Separator: sep},
	}
}

type Result struct {
	Job     Job
	Lines   []string
	Rows    [][]string
	Titles  []string
	Records []record.Record
}

// Run loads and parses one job. Nothing is returned on failure.
func Run(job Job) (*Result, error) {
	// Reject a bad separator before touching the file.
	if job.Mode != Lines {
		if err := fieldsplit.Check(job.Separator); err != nil {
			return nil, fmt.Errorf("%s: %w", job.Path, err)
		}
	}

	lines, err := textfile.ReadLines(job.Path)
	if err != nil {
		return nil, err
	}
	res := &Result{Job: job, Lines: lines}

	switch job.Mode {
	case Lines:
	case Fields:
		res.Rows, err = fieldsplit.Split(lines, job.Separator)
	case Records:
		res.Titles, res.Records, err = table.ParseTitled(lines, job.Separator, job.StrictTitles)
	default:
		err = fmt.Errorf("unknown mode %q", job.Mode)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", job.Path, err)
	}
	return res, nil
}

// Write renders the part of the result that matches the job mode.
func (r *Result) Write(w *output.Writer) error {
	switch r.Job.Mode {
	case Fields:
		return w.Rows(r.Rows)
	case Records:
		return w.Records(r.Titles, r.Records)
	}
	return w.Lines(r.Lines)
}

// Count is the number of output units: lines, rows or records.
func (r *Result) Count() int {
	switch r.Job.Mode {
	case Fields:
		return len(r.Rows)
	case Records:
		return len(r.Records)
	}
	return len(r.Lines)
}
