// Package record zips a title row with a value row.
//
// A Record keeps its keys in title order. A title that has no value in the
// row is still a key, but its value is missing: Get reports ok == false and
// the encoders render it as null.
package record

import (
	"fmt"
)

type Record struct {
	keys   []string
	values map[string]string
}

// FromValues maps the i-th title to the i-th value. Values beyond the last
// title are dropped. When a title repeats, the key keeps its first position
// and takes the value of the last occurrence.
func FromValues(titles, values []string) Record {
	r := Record{
		keys:   make([]string, 0, len(titles)),
		values: make(map[string]string, len(titles)),
	}
	seen := make(map[string]struct{}, len(titles))
	for i, t := range titles {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			r.keys = append(r.keys, t)
		}
		if i < len(values) {
			r.values[t] = values[i]
		} else {
			delete(r.values, t)
		}
	}
	return r
}

// DuplicateTitleError is returned by FromValuesStrict.
type DuplicateTitleError struct {
	Title string
	First int
	Again int
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("duplicate title %q at columns %d and %d", e.Title, e.First+1, e.Again+1)
}

// CheckTitles fails on the first title that appears twice.
func CheckTitles(titles []string) error {
	pos := make(map[string]int, len(titles))
	for i, t := range titles {
		if j, ok := pos[t]; ok {
			return &DuplicateTitleError{Title: t, First: j, Again: i}
		}
		pos[t] = i
	}
	return nil
}

// FromValuesStrict is FromValues that rejects repeated titles.
func FromValuesStrict(titles, values []string) (Record, error) {
	if err := CheckTitles(titles); err != nil {
		return Record{}, err
	}
	return FromValues(titles, values), nil
}

// Len is the number of distinct titles.
func (r Record) Len() int { return len(r.keys) }

// Keys returns the titles in order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the value for title; ok is false for unknown titles and for
// titles whose value is missing.
func (r Record) Get(title string) (string, bool) {
	v, ok := r.values[title]
	return v, ok
}

// Has reports whether title is a key, whether or not it has a value.
func (r Record) Has(title string) bool {
	for _, k := range r.keys {
		if k == title {
			return true
		}
	}
	return false
}

// Missing lists the keys without a value, in order.
func (r Record) Missing() []string {
	var out []string
	for _, k := range r.keys {
		if _, ok := r.values[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// Map copies the present values into a plain map.
func (r Record) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Values returns one entry per key; missing values are "".
func (r Record) Values() []string {
	out := make([]string, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.values[k]
	}
	return out
}

func (r Record) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", r.values)
	}
	return string(b)
}
