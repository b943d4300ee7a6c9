// Package errs holds the error taxonomy shared by the chart engine.
//
// A ConfigError means the chart cannot render with its current
// configuration. A DataMismatchError means one datum could not be placed;
// callers omit the datum, log a warning and carry on.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroScale indicates a coordinate scale factor of zero.
	ErrZeroScale = errors.New("scale factor must be non-zero")
	// ErrNoPlotArea indicates reserved space leaves no room to plot.
	ErrNoPlotArea = errors.New("no plot area left after reserving space")
	// ErrInvertedDomain indicates a continuous domain with min > max.
	ErrInvertedDomain = errors.New("domain min is greater than max")
	// ErrHelixSpan indicates a helix angle span of one turn or less.
	ErrHelixSpan = errors.New("helix angle span must exceed one full turn")
	// ErrEmptyDomain indicates a scale with no values to derive a domain from.
	ErrEmptyDomain = errors.New("empty domain")
	// ErrUnsupported indicates an unknown type or option value.
	ErrUnsupported = errors.New("unsupported")
	// ErrUnknownCategory indicates a value outside an ordinal domain.
	ErrUnknownCategory = errors.New("value not in category set")
	// ErrMissingField indicates a record without the bound field.
	ErrMissingField = errors.New("field missing from record")
	// ErrNotNumeric indicates a non-numeric value on a continuous scale.
	ErrNotNumeric = errors.New("value is not numeric")
)

// ConfigError is a fatal configuration problem in one component.
type ConfigError struct {
	Component string // "scale", "coord", "layout", "legend", "axis", "tooltip", "config"
	Err       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s configuration: %v", e.Component, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config wraps err as a ConfigError for component. Extra args format err
// when it carries verbs.
func Config(component string, err error, detail ...any) *ConfigError {
	if len(detail) > 0 {
		err = fmt.Errorf("%w: %s", err, fmt.Sprint(detail...))
	}
	return &ConfigError{Component: component, Err: err}
}

// DataMismatchError reports a datum that cannot be mapped.
type DataMismatchError struct {
	Field string
	Value any
	Err   error
}

func (e *DataMismatchError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %q value %v: %v", e.Field, e.Value, e.Err)
}

func (e *DataMismatchError) Unwrap() error {
	return e.Err
}

// Mismatch returns a DataMismatchError.
func Mismatch(field string, value any, err error) *DataMismatchError {
	return &DataMismatchError{Field: field, Value: value, Err: err}
}

// IsConfig reports whether err is, or wraps, a ConfigError.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsMismatch reports whether err is, or wraps, a DataMismatchError.
func IsMismatch(err error) bool {
	var me *DataMismatchError
	return errors.As(err, &me)
}
