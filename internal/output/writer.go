// Package output renders parsed lines, field rows and records.
package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"parsefile/internal/record"
)

type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
	CSV  Format = "csv"
)

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, YAML, CSV:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (use text, json, yaml or csv)", s)
}

type Options struct {
	Format Format
	Comma  rune // CSV only; defaults to ','
}

type Writer struct {
	format Format
	buf    *bufio.Writer
	cw     *csv.Writer
	ye     *yaml.Encoder
}

func New(w io.Writer, opt Options) *Writer {
	bw := bufio.NewWriterSize(w, 1<<20)
	out := &Writer{format: opt.Format, buf: bw}
	if out.format == "" {
		out.format = Text
	}
	switch out.format {
	case CSV:
		out.cw = csv.NewWriter(bw)
		if opt.Comma != 0 {
			out.cw.Comma = opt.Comma
		}
	case YAML:
		out.ye = yaml.NewEncoder(bw)
		out.ye.SetIndent(2)
	}
	return out
}

// Lines writes one line per entry. CSV gets one single-field record per line.
func (w *Writer) Lines(lines []string) error {
	switch w.format {
	case JSON:
		return w.json(lines)
	case YAML:
		return w.ye.Encode(lines)
	case CSV:
		for _, l := range lines {
			if err := w.cw.Write([]string{l}); err != nil {
				return err
			}
		}
		return nil
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w.buf, l); err != nil {
			return err
		}
	}
	return nil
}

// Rows writes split lines; text output quotes each field.
func (w *Writer) Rows(rows [][]string) error {
	switch w.format {
	case JSON:
		return w.json(rows)
	case YAML:
		return w.ye.Encode(rows)
	case CSV:
		return w.csvRows(rows)
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w.buf, "%q\n", r); err != nil {
			return err
		}
	}
	return nil
}

// Records writes records under titles. CSV emits titles as the header row and
// leaves missing values empty.
func (w *Writer) Records(titles []string, recs []record.Record) error {
	switch w.format {
	case JSON:
		return w.json(recs)
	case YAML:
		return w.ye.Encode(recs)
	case CSV:
		if len(titles) > 0 {
			if err := w.cw.Write(dedupe(titles)); err != nil {
				return err
			}
		}
		for _, r := range recs {
			if err := w.cw.Write(r.Values()); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range recs {
		if _, err := fmt.Fprintln(w.buf, r.String()); err != nil {
			return err
		}
	}
	return nil
}

// Flush finishes the output. The Writer must not be used afterwards.
func (w *Writer) Flush() error {
	switch {
	case w.cw != nil:
		w.cw.Flush()
		if err := w.cw.Error(); err != nil {
			return err
		}
	case w.ye != nil:
		if err := w.ye.Close(); err != nil {
			return err
		}
	}
	return w.buf.Flush()
}

func (w *Writer) json(v any) error {
	b, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.buf.Write(b); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

func (w *Writer) csvRows(rows [][]string) error {
	for _, r := range rows {
		if err := w.cw.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// dedupe keeps the first occurrence of each title, matching record key order.
func dedupe(titles []string) []string {
	seen := make(map[string]struct{}, len(titles))
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
