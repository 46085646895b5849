package iox

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Stdio is the path that selects stdout in CreateAuto.
const Stdio = "-"

func isGzip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}

// OpenAuto opens path for reading, gunzipping it when it ends in .gz.
func OpenAuto(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if isGzip(path) {
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &rc{Reader: gr, closers: []io.Closer{gr, f}}, nil
	}
	return f, nil
}

// ReadAll loads the whole (possibly gzipped) file in one pass.
func ReadAll(path string) ([]byte, error) {
	in, err := OpenAuto(path)
	if err != nil {
		return nil, err
	}
	b, err := io.ReadAll(in)
	if cerr := in.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateAuto creates path for writing, gzipping when it ends in .gz.
// An empty path or "-" writes to stdout; closing it leaves stdout open.
func CreateAuto(path string) (io.WriteCloser, error) {
	if path == "" || path == Stdio {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if isGzip(path) {
		gw := gzip.NewWriter(f)
		return &wc{Writer: gw, closers: []io.Closer{gw, f}}, nil
	}
	return f, nil
}

type rc struct {
	io.Reader
	closers []io.Closer
}

func (r *rc) Close() error {
	return closeAll(r.closers)
}

type wc struct {
	io.Writer
	closers []io.Closer
}

func (w *wc) Close() error {
	return closeAll(w.closers)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// closeAll closes in order and keeps the first error.
func closeAll(cs []io.Closer) error {
	var err error
	for i := range cs {
		if e := cs[i].Close(); err == nil && e != nil {
			err = e
		}
	}
	return err
}
