package cvss

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMetricValue is matched by every InvalidMetricValueError.
	ErrInvalidMetricValue = errors.New("invalid metric value")

	// ErrInvalidVector reports a malformed vector string.
	ErrInvalidVector = errors.New("invalid cvss vector")
)

// InvalidMetricValueError reports a category outside its dimension's
// enumeration.
type InvalidMetricValueError struct {
	Metric string // metric key, e.g. "AV"
	Value  string
}

func (e *InvalidMetricValueError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: metric %s is not set", ErrInvalidMetricValue, e.Metric)
	}
	return fmt.Sprintf("%s: %q is not a valid value for %s", ErrInvalidMetricValue, e.Value, e.Metric)
}

// Is reports whether target is ErrInvalidMetricValue.
func (e *InvalidMetricValueError) Is(target error) bool {
	return target == ErrInvalidMetricValue
}
