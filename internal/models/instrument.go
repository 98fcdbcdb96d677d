package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// NotSpecified is the display placeholder for an empty instrument set.
const NotSpecified = "Not specified"

// InstrumentList is the canonical representation of an instrument set.
// Legacy rows store instruments as a Postgres text[], a JSON-encoded array
// or a plain comma-separated string; every representation is folded into
// this type at the scan boundary so domain code never branches on shape.
type InstrumentList []string

// Scan implements sql.Scanner accepting text[], JSON array and CSV shapes.
func (l *InstrumentList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}

	var raw string
	switch v := src.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("unsupported instruments source type %T", src)
	}

	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		*l = nil
		return nil
	case strings.HasPrefix(trimmed, "{"):
		var arr pq.StringArray
		if err := arr.Scan(src); err != nil {
			return fmt.Errorf("scan instruments array: %w", err)
		}
		*l = normalize(arr)
		return nil
	case strings.HasPrefix(trimmed, "["):
		var arr []string
		if err := json.Unmarshal([]byte(trimmed), &arr); err != nil {
			// Malformed JSON collapses to empty, matching the tolerant
			// behaviour of the legacy intake rows.
			*l = nil
			return nil
		}
		*l = normalize(arr)
		return nil
	default:
		*l = ParseInstruments(trimmed)
		return nil
	}
}

// Value implements driver.Valuer writing the canonical text[] shape.
func (l InstrumentList) Value() (driver.Value, error) {
	return pq.StringArray(l).Value()
}

// ParseInstruments splits a comma-separated instrument string into the
// canonical list, trimming each token. Empty input yields an empty list.
func ParseInstruments(raw string) InstrumentList {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return normalize(strings.Split(raw, ","))
}

// Normalize trims tokens and drops empties. Idempotent.
func (l InstrumentList) Normalize() InstrumentList {
	return normalize(l)
}

// Join renders the list as a comma-joined display string.
func (l InstrumentList) Join() string {
	return strings.Join(l, ", ")
}

// Display renders the list for table display, substituting a placeholder
// when no instrument is recorded.
func (l InstrumentList) Display() string {
	if len(l) == 0 {
		return NotSpecified
	}
	return l.Join()
}

// Contains reports exact string membership. No case folding, no synonym
// resolution; "Piano" and "piano" are distinct on purpose.
func (l InstrumentList) Contains(instrument string) bool {
	for _, v := range l {
		if v == instrument {
			return true
		}
	}
	return false
}

// Intersects reports whether the two sets share at least one instrument.
func (l InstrumentList) Intersects(other InstrumentList) bool {
	for _, v := range l {
		if other.Contains(v) {
			return true
		}
	}
	return false
}

func normalize(values []string) InstrumentList {
	if len(values) == 0 {
		return nil
	}
	out := make(InstrumentList, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
