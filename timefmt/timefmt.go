// Package timefmt implements the reservation API's wire timestamp format:
// UTC with second precision and a literal Z suffix, never a numeric offset.
package timefmt

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the fixed wire pattern. The trailing Z is a literal, so values
// carrying a real offset do not parse.
const Layout = "2006-01-02T15:04:05Z"

// Format renders an instant in the wire format. The instant is converted to
// UTC first, so the same moment always produces the same string.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Parse decodes a wire timestamp. Anything other than the exact Z-suffixed
// UTC pattern is rejected.
func Parse(s string) (time.Time, error) {
	if !strings.HasSuffix(s, "Z") {
		return time.Time{}, fmt.Errorf("timefmt: %q is not a Z-suffixed UTC timestamp", s)
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timefmt: parse %q: %w", s, err)
	}
	t = t.UTC()
	// time.Parse tolerates fractional seconds and unpadded fields; only
	// values that render back to the same string are canonical.
	if t.Format(Layout) != s {
		return time.Time{}, fmt.Errorf("timefmt: %q is not in canonical form", s)
	}
	return t, nil
}

// Time is a time.Time that marshals to and from the wire format. Zero
// values marshal as JSON null.
type Time struct {
	time.Time
}

// New wraps an instant.
func New(t time.Time) Time {
	return Time{Time: t.UTC()}
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + Format(t.Time) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timefmt: expected string, got %s", s)
	}
	parsed, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
