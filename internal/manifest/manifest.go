// Package manifest loads a list of parse jobs from a YAML or JSON file.
//
//	- path: items.txt
//	  mode: lines
//	- glob: "exports/**/*.csv"
//	  mode: records
//	  separator: ","
//
// Relative paths and globs resolve against the manifest's directory. Entries
// without a separator use the caller's default.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"parsefile/internal/pipeline"
)

type Entry struct {
	Path      string  `json:"path" yaml:"path"`
	Glob      string  `json:"glob" yaml:"glob"`
	Mode      string  `json:"mode" yaml:"mode"`
	Separator *string `json:"separator" yaml:"separator"`
	Strict    bool    `json:"strict_titles" yaml:"strict_titles"`
}

type Defaults struct {
	Mode      pipeline.Mode
	Separator string
	// Strict turns on strict titles for every entry.
	Strict    bool
}

// Load reads the manifest at path and expands it into jobs.
func Load(path string, def Defaults) ([]pipeline.Job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &entries); err != nil {
			return nil, fmt.Errorf("manifest %s: %w", path, err)
		}
	case ".json":
		if err := sonic.Unmarshal(b, &entries); err != nil {
			return nil, fmt.Errorf("manifest %s: %w", path, err)
		}
	default:
		return nil, errors.New("unsupported manifest format (use .json or .yaml/.yml)")
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("manifest %s: no entries", path)
	}
	return Expand(entries, filepath.Dir(path), def)
}

// Expand turns entries into jobs in manifest order; glob matches are sorted.
func Expand(entries []Entry, baseDir string, def Defaults) ([]pipeline.Job, error) {
	jobs := make([]pipeline.Job, 0, len(entries))
	for i, e := range entries {
		mode := def.Mode
		if e.Mode != "" {
			m, err := pipeline.ParseMode(e.Mode)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i+1, err)
			}
			mode = m
		}
		sep := def.Separator
		if e.Separator != nil {
			sep = *e.Separator
		}

		var paths []string
		switch {
		case e.Path != "" && e.Glob != "":
			return nil, fmt.Errorf("entry %d: set path or glob, not both", i+1)
		case e.Path != "":
			paths = []string{resolve(baseDir, e.Path)}
		case e.Glob != "":
			matches, err := glob(baseDir, e.Glob)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i+1, err)
			}
			paths = matches
		default:
			return nil, fmt.Errorf("entry %d: path or glob is required", i+1)
		}

		for _, p := range paths {
			jobs = append(jobs, pipeline.Job{Path: p, Mode: mode, Separator: sep, StrictTitles: e.Strict || def.Strict})
		}
	}
	return jobs, nil
}

func resolve(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

func glob(baseDir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("bad glob %q", pattern)
	}
	var (
		matches []string
		err     error
	)
	if filepath.IsAbs(pattern) {
		matches, err = doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	} else {
		matches, err = doublestar.Glob(os.DirFS(baseDir), filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		for i := range matches {
			matches[i] = filepath.Join(baseDir, filepath.FromSlash(matches[i]))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %q matched no files", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}
