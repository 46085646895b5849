// Package fieldsplit splits lines into separator-delimited fields.
// The separator is matched literally; quoting is not interpreted.
package fieldsplit

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultSeparator is used when the caller has no preference.
const DefaultSeparator = ";"

var ErrEmptySeparator = errors.New("separator must not be empty")

// ConfigError reports an invalid parse option.
type ConfigError struct {
	Option string
	Value  string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Option, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Check validates sep without splitting anything.
func Check(sep string) error {
	if sep == "" {
		return &ConfigError{Option: "separator", Value: sep, Err: ErrEmptySeparator}
	}
	return nil
}

// Line splits one line on every occurrence of sep.
// An empty line yields a single empty field.
func Line(line, sep string) ([]string, error) {
	if err := Check(sep); err != nil {
		return nil, err
	}
	return strings.Split(line, sep), nil
}

// Split splits every line on sep, preserving line and field order.
func Split(lines []string, sep string) ([][]string, error) {
	if err := Check(sep); err != nil {
		return nil, err
	}
	rows := make([][]string, len(lines))
	for i, l := range lines {
		rows[i] = strings.Split(l, sep)
	}
	return rows, nil
}
