package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is an ordered sequence of strings stored in a JSON column.
// The canonical on-disk shape is a JSON array of strings. Legacy rows written
// by earlier versions of the system may instead hold a JSON string or a bare
// comma-separated string; Scan migrates those shapes on read.
type StringList []string

// Value serializes the list as a JSON array. A nil list is stored as an
// empty array rather than NULL so reads round-trip without a nil check.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan accepts the canonical JSON array plus the legacy shapes described
// above. NULL scans to an empty list.
func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("stringlist: cannot scan %T", src)
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		*l = StringList{}
		return nil
	}

	// Canonical shape: JSON array of strings.
	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("stringlist: invalid array: %w", err)
		}
		*l = items
		return nil
	}

	// Legacy shape: a JSON-encoded string, possibly comma separated inside.
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("stringlist: invalid string: %w", err)
		}
		*l = splitTrimmed(s)
		return nil
	}

	// Legacy shape: bare comma-separated text.
	*l = splitTrimmed(trimmed)
	return nil
}

func splitTrimmed(s string) StringList {
	if strings.TrimSpace(s) == "" {
		return StringList{}
	}
	parts := strings.Split(s, ",")
	out := make(StringList, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
