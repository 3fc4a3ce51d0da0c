package cvss

import (
	"fmt"
	"strings"
)

// VectorPrefix is written at the start of every formatted vector.
const VectorPrefix = "CVSS:3.1"

// Vector formats m as a CVSS v3.1 vector string, e.g.
// "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H". Unset or invalid metrics
// are written as "?".
func (m Metrics) Vector() string {
	var b strings.Builder
	b.WriteString(VectorPrefix)
	for _, d := range dimensions {
		code, ok := d.CodeFor(m.Get(d.Key))
		if !ok {
			code = "?"
		}
		fmt.Fprintf(&b, "/%s:%s", d.Key, code)
	}
	return b.String()
}

// ParseVector parses a base metric vector. The "CVSS:3.0/" or "CVSS:3.1/"
// prefix is optional; the eight base metrics must each appear exactly once,
// in any order.
func ParseVector(s string) (Metrics, error) {
	var m Metrics

	s = strings.TrimSpace(s)
	if s == "" {
		return m, fmt.Errorf("%w: empty vector", ErrInvalidVector)
	}

	parts := strings.Split(s, "/")
	if strings.HasPrefix(parts[0], "CVSS:") {
		switch parts[0] {
		case "CVSS:3.0", "CVSS:3.1":
		default:
			return m, fmt.Errorf("%w: unsupported version %q", ErrInvalidVector, parts[0])
		}
		parts = parts[1:]
	}

	seen := make(map[string]bool, len(dimensions))
	for _, part := range parts {
		key, code, ok := strings.Cut(part, ":")
		if !ok || key == "" || code == "" {
			return m, fmt.Errorf("%w: malformed component %q", ErrInvalidVector, part)
		}
		d, ok := DimensionFor(key)
		if !ok {
			return m, fmt.Errorf("%w: unknown metric %q", ErrInvalidVector, key)
		}
		if seen[key] {
			return m, fmt.Errorf("%w: metric %s given more than once", ErrInvalidVector, key)
		}
		seen[key] = true

		category, ok := d.Lookup(code)
		if !ok {
			return m, fmt.Errorf("%w: %w", ErrInvalidVector, &InvalidMetricValueError{Metric: key, Value: code})
		}
		if err := m.Set(key, category); err != nil {
			return m, fmt.Errorf("%w: %w", ErrInvalidVector, err)
		}
	}

	if missing := m.Missing(); len(missing) > 0 {
		return m, fmt.Errorf("%w: missing metrics %s", ErrInvalidVector, strings.Join(missing, ", "))
	}
	return m, nil
}
