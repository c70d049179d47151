package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString is a string type that can be unmarshaled from either a string or a number.
// Hand-edited caches are inconsistent about quoting fields such as sample sizes.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler for FlexString
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	return fmt.Errorf("FlexString: cannot unmarshal %s", string(data))
}

// String returns the string value
func (f FlexString) String() string {
	return string(f)
}

// FlexScore is a poll score published either as a number (31.5) or as a
// range string ("30-33"). Value holds the number, or the range midpoint.
type FlexScore struct {
	Value float64
	Range string
}

// UnmarshalJSON implements json.Unmarshaler for FlexScore
func (s *FlexScore) UnmarshalJSON(data []byte) error {
	*s = FlexScore{}
	if string(data) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		s.Value = n
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("FlexScore: cannot unmarshal %s", string(data))
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return nil
	}
	if v, ok := parseDecimal(str); ok {
		s.Value = v
		return nil
	}

	s.Range = str
	if lo, hi, ok := s.Bounds(); ok {
		s.Value = (lo + hi) / 2
	}
	return nil
}

// MarshalJSON keeps the published form: ranges stay strings
func (s FlexScore) MarshalJSON() ([]byte, error) {
	if s.Range != "" {
		return json.Marshal(s.Range)
	}
	return json.Marshal(s.Value)
}

// IsRange reports whether the score was published as a range
func (s FlexScore) IsRange() bool {
	return s.Range != ""
}

// Bounds parses a "lo-hi" range. ok is false for plain numbers and unparseable strings.
func (s FlexScore) Bounds() (lo, hi float64, ok bool) {
	if s.Range == "" {
		return 0, 0, false
	}
	r := strings.ReplaceAll(s.Range, "–", "-")
	r = strings.TrimSuffix(strings.TrimSpace(r), "%")
	parts := strings.SplitN(r, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, okLo := parseDecimal(parts[0])
	hi, okHi := parseDecimal(parts[1])
	if !okLo || !okHi {
		return 0, 0, false
	}
	return lo, hi, true
}

// parseDecimal accepts both "12.5" and the French "12,5"
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
